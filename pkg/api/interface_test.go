package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumber(t *testing.T) {
	tests := []struct {
		in    string
		want  int64
		valid bool
	}{
		{`245`, 245, true},
		{`"245"`, 245, true},
		{`" 12.9 "`, 12, true},
		{`"1234567890123"`, 1234567890123, true},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"abc"`, 0, false},
		{`"NaN"`, 0, false},
		{`"Inf"`, 0, false},
		{`"-Inf"`, 0, false},
		{`"1e30"`, 0, false},
		{`1e30`, 0, false},
		{`"1e400"`, 0, false},
		{`"-5"`, 0, false},
	}
	for _, tt := range tests {
		var n flexNumber
		require.NoError(t, json.Unmarshal([]byte(tt.in), &n), tt.in)
		assert.Equal(t, flexNumber{Value: tt.want, Valid: tt.valid}, n, tt.in)
	}
}

func TestOutOfRangeNumbersAreAbsent(t *testing.T) {
	var songs []rawSong
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"x","song":"s","duration":"NaN","play_count":"1e30"}]`), &songs))

	r := songs[0].toSearchResult()
	assert.Equal(t, 0, r.DurationSeconds)
	assert.Nil(t, r.PlayCount)
}
