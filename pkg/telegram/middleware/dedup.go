package middleware

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/telegram"
)

// SeenMarker is implemented by storage.SeenStore.
type SeenMarker interface {
	MarkSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type dedup struct {
	store  SeenMarker
	ttl    time.Duration
	next   telegram.UpdateSink
	logger *logging.Logger
}

// Dedup drops updates whose update_id was already seen within ttl.
// If the store is unavailable the update is passed through.
func Dedup(store SeenMarker, ttl time.Duration, logger *logging.Logger, next telegram.UpdateSink) telegram.UpdateSink {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &dedup{store: store, ttl: ttl, next: next, logger: logger}
}

func (d *dedup) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	first, err := d.store.MarkSeen(ctx, updateKey(update.UpdateID), d.ttl)
	if err != nil {
		d.logger.Warnf("dedup store unavailable, passing update %d: %v", update.UpdateID, err)
		return d.next.HandleUpdate(ctx, update)
	}
	if !first {
		d.logger.Infof("duplicate update %d dropped", update.UpdateID)
		return nil
	}
	return d.next.HandleUpdate(ctx, update)
}

func updateKey(id int) string {
	return fmt.Sprintf("update:%d", id)
}
