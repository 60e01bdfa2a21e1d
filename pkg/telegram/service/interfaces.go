package service

import (
	"context"

	"github.com/Clean1ines/airsongs/pkg/api"
)

// SongSource – три запроса к API песен, которые использует диспетчер.
type SongSource interface {
	Search(ctx context.Context, query string) ([]api.SearchResult, error)
	GetDetail(ctx context.Context, songID string) (api.SongDetail, error)
	GetLyrics(ctx context.Context, songID string) api.LyricsResult
}

// Outbox исполняет исходящие действия в рамках одного чата (и одного callback).
type Outbox interface {
	Emit(ctx context.Context, a Action) error
}

// OutboxFunc позволяет использовать функцию как Outbox.
type OutboxFunc func(ctx context.Context, a Action) error

func (f OutboxFunc) Emit(ctx context.Context, a Action) error { return f(ctx, a) }
