package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI отвечает заранее заданными телами по пути запроса.
func fakeAPI(t *testing.T, routes map[string]string, lastQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastQuery != nil {
			*lastQuery = r.URL.Query().Get("query")
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

const searchBody = `[
	{"id":"abc","song":"Shape of You","primary_artists":"Ed Sheeran","album":"Divide","duration":"233","year":"2017","language":"english","image":"https://img/1.jpg","play_count":"1234567","label":"Atlantic"},
	{"id":"def","song":"Tom &amp; Jerry","primary_artists":"Someone","album":"X","duration":125,"year":2001,"language":"hindi","image":"","play_count":""}
]`

func TestSearch(t *testing.T) {
	var query string
	server := fakeAPI(t, map[string]string{"/result/": searchBody}, &query)
	defer server.Close()

	c := NewClient(server.URL+"/", nil)
	results, err := c.Search(context.Background(), "shape of you & more")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "shape of you & more", query)

	first := results[0]
	assert.Equal(t, "abc", first.ID)
	assert.Equal(t, "Shape of You", first.Title)
	assert.Equal(t, 233, first.DurationSeconds)
	assert.Equal(t, "2017", first.Year)
	require.NotNil(t, first.PlayCount)
	assert.Equal(t, int64(1234567), *first.PlayCount)
	assert.Equal(t, "Atlantic", first.Label)

	second := results[1]
	assert.Equal(t, "Tom & Jerry", second.Title)
	assert.Equal(t, 125, second.DurationSeconds)
	assert.Equal(t, "2001", second.Year)
	assert.Empty(t, second.ImageURL)
	assert.Nil(t, second.PlayCount)
}

func TestSearchNonArray(t *testing.T) {
	server := fakeAPI(t, map[string]string{"/result/": `{"error":"nothing"}`}, nil)
	defer server.Close()

	results, err := NewClient(server.URL, nil).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLookupError(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		server := fakeAPI(t, map[string]string{}, nil)
		defer server.Close()

		_, err := NewClient(server.URL, nil).Search(context.Background(), "x")
		var lookupErr *LookupError
		require.True(t, errors.As(err, &lookupErr))
		assert.Equal(t, "search", lookupErr.Op)
	})

	t.Run("invalid json", func(t *testing.T) {
		server := fakeAPI(t, map[string]string{"/result/": `[{"id":`}, nil)
		defer server.Close()

		_, err := NewClient(server.URL, nil).Search(context.Background(), "x")
		var lookupErr *LookupError
		assert.True(t, errors.As(err, &lookupErr))
	})
}

func TestGetDetail(t *testing.T) {
	var query string
	server := fakeAPI(t, map[string]string{
		"/song/": `[{"id":"abc","song":"Shape of You","primary_artists":"Ed Sheeran","duration":"233","media_url":"https://cdn/abc.mp3"},{"id":"other"}]`,
	}, &query)
	defer server.Close()

	detail, err := NewClient(server.URL, nil).GetDetail(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", query)
	assert.Equal(t, "abc", detail.ID)
	assert.Equal(t, "https://cdn/abc.mp3", detail.MediaURL)

	media, err := detail.Media()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/abc.mp3", media)
}

func TestGetDetailNotFound(t *testing.T) {
	for name, body := range map[string]string{
		"empty array": `[]`,
		"object":      `{"message":"no song"}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := fakeAPI(t, map[string]string{"/song/": body}, nil)
			defer server.Close()

			_, err := NewClient(server.URL, nil).GetDetail(context.Background(), "zzz")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMediaUnavailable(t *testing.T) {
	_, err := SongDetail{}.Media()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetLyrics(t *testing.T) {
	tests := []struct {
		name   string
		routes map[string]string
		status LyricsStatus
		text   string
	}{
		{"found", map[string]string{"/lyrics/": `{"success":true,"data":{"lyrics":"la la la"}}`}, LyricsFound, "la la la"},
		{"unsuccessful", map[string]string{"/lyrics/": `{"success":false}`}, LyricsMissing, ""},
		{"empty lyrics", map[string]string{"/lyrics/": `{"success":true,"data":{"lyrics":"  "}}`}, LyricsMissing, ""},
		{"malformed", map[string]string{"/lyrics/": `not json`}, LyricsFailed, ""},
		{"server error", map[string]string{}, LyricsFailed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := fakeAPI(t, tt.routes, nil)
			defer server.Close()

			res := NewClient(server.URL, nil).GetLyrics(context.Background(), "abc")
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.text, res.Text)
			assert.Equal(t, tt.status == LyricsFound, res.Available())
			if tt.status == LyricsFailed {
				assert.Error(t, res.Err)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}
