package handler

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Clean1ines/airsongs/pkg/telegram/service"
)

func (h *UpdateHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	ev := service.ClassifyText(msg.Text)
	if ev == nil {
		return
	}
	h.dispatcher.Dispatch(ctx, ev, h.outboxes.Outbox(msg.Chat.ID, ""))
}
