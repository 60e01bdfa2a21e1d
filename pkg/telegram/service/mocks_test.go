package service

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Clean1ines/airsongs/pkg/api"
)

type MockSongSource struct {
	mock.Mock
}

func (m *MockSongSource) Search(ctx context.Context, query string) ([]api.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.SearchResult), args.Error(1)
}

func (m *MockSongSource) GetDetail(ctx context.Context, songID string) (api.SongDetail, error) {
	args := m.Called(ctx, songID)
	return args.Get(0).(api.SongDetail), args.Error(1)
}

func (m *MockSongSource) GetLyrics(ctx context.Context, songID string) api.LyricsResult {
	args := m.Called(ctx, songID)
	return args.Get(0).(api.LyricsResult)
}

var errSendFailed = errors.New("telegram: bad request")

// recorder запоминает отправленные действия; fail позволяет уронить отдельные отправки.
type recorder struct {
	mu      sync.Mutex
	actions []Action
	fail    func(Action) bool
}

func (r *recorder) Emit(_ context.Context, a Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil && r.fail(a) {
		return errSendFailed
	}
	r.actions = append(r.actions, a)
	return nil
}

func (r *recorder) acks() []AckCallback {
	var out []AckCallback
	for _, a := range r.actions {
		if ack, ok := a.(AckCallback); ok {
			out = append(out, ack)
		}
	}
	return out
}

func (r *recorder) count(match func(Action) bool) int {
	n := 0
	for _, a := range r.actions {
		if match(a) {
			n++
		}
	}
	return n
}

func isCard(a Action) bool {
	switch v := a.(type) {
	case SendPhoto:
		return true
	case SendText:
		return v.Keyboard != nil
	}
	return false
}

func isAudio(a Action) bool {
	_, ok := a.(SendAudio)
	return ok
}
