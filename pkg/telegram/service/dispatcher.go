package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Clean1ines/airsongs/pkg/logging"
)

// MaxResults – сколько результатов поиска показывается пользователю.
const MaxResults = 5

// Dispatcher превращает входящее событие в последовательность исходящих действий.
// Состояния между событиями не хранит, поэтому безопасен для конкурентных вызовов.
type Dispatcher struct {
	songs  SongSource
	logger *logging.Logger
}

// NewDispatcher создает диспетчер поверх клиента API песен.
func NewDispatcher(songs SongSource, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{songs: songs, logger: logger}
}

// Dispatch обрабатывает одно событие до конца. Ошибки не возвращаются:
// пользователь получает не больше одного сообщения об ошибке.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event, out Outbox) {
	log := d.logger.With("event_id", uuid.NewString())
	switch e := ev.(type) {
	case Command:
		d.handleCommand(ctx, log, e, out)
	case SearchQuery:
		d.handleSearch(ctx, log, e, out)
	case ButtonPress:
		d.handleButton(ctx, log, e, out)
	default:
		log.Debugf("Пропущено событие %T", ev)
	}
}

// HandleCallbackData разбирает callback data и обрабатывает нажатие.
// На некорректные данные отвечает одним AckCallback без обращения к API.
func (d *Dispatcher) HandleCallbackData(ctx context.Context, data string, out Outbox) {
	press, err := DecodeButton(data)
	if err != nil {
		d.logger.Warnf("Некорректный callback: %v", err)
		if err := out.Emit(ctx, AckCallback{Text: AckUnknownAction}); err != nil {
			d.logger.Errorf("Ошибка ответа на callback: %v", err)
		}
		return
	}
	d.Dispatch(ctx, press, out)
}

func (d *Dispatcher) handleCommand(ctx context.Context, log *logging.Logger, cmd Command, out Outbox) {
	var text string
	switch cmd.Name {
	case "start":
		text = welcomeText
	case "help":
		text = helpText
	default:
		log.Debugf("Команда /%s игнорируется", cmd.Name)
		return
	}
	if err := out.Emit(ctx, SendText{Text: text}); err != nil {
		log.Errorf("Ошибка отправки ответа на /%s: %v", cmd.Name, err)
	}
}

// indicate отправляет статус чата. Сбой статуса не прерывает обработку.
func indicate(ctx context.Context, log *logging.Logger, out Outbox, a Action) {
	if err := out.Emit(ctx, a); err != nil {
		log.Warnf("Не удалось отправить статус %T: %v", a, err)
	}
}
