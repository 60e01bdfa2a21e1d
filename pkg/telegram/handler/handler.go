package handler

import (
	"context"
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/telegram"
	"github.com/Clean1ines/airsongs/pkg/telegram/service"
)

// Dispatcher is the part of service.Dispatcher the handler drives.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev service.Event, out service.Outbox)
	HandleCallbackData(ctx context.Context, data string, out service.Outbox)
}

// OutboxFactory binds outbound actions to a chat and, for button presses, a callback query.
type OutboxFactory interface {
	Outbox(chatID int64, callbackID string) service.Outbox
}

// UpdateHandler turns Telegram updates into dispatcher events.
type UpdateHandler struct {
	dispatcher Dispatcher
	outboxes   OutboxFactory
	logger     *logging.Logger
}

func NewUpdateHandler(d Dispatcher, outboxes OutboxFactory, logger *logging.Logger) *UpdateHandler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &UpdateHandler{dispatcher: d, outboxes: outboxes, logger: logger}
}

// HandleUpdate implements telegram.UpdateSink. Unsupported updates are ignored.
func (h *UpdateHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	default:
		h.logger.Debugf("skipping update %d", update.UpdateID)
	}
	return nil
}

// WebhookHandler decodes an update and hands it to sink before answering.
// Processing runs on a context that outlives the request.
func WebhookHandler(sink telegram.UpdateSink, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		if err := sink.HandleUpdate(context.WithoutCancel(r.Context()), update); err != nil {
			logger.Errorf("update %d: %v", update.UpdateID, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}
}
