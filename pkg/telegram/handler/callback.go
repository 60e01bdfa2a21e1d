package handler

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *UpdateHandler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	out := h.outboxes.Outbox(callbackChatID(cb), cb.ID)
	h.dispatcher.HandleCallbackData(ctx, cb.Data, out)
}

// callbackChatID returns the chat of the message carrying the button.
// Inline-mode messages have none, so replies go to the sender.
func callbackChatID(cb *tgbotapi.CallbackQuery) int64 {
	if cb.Message != nil && cb.Message.Chat != nil {
		return cb.Message.Chat.ID
	}
	if cb.From != nil {
		return cb.From.ID
	}
	return 0
}
