// pkg/telegram/bot.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/telegram/service"
)

// PollTimeout – таймаут длинного поллинга в секундах.
const PollTimeout = 60

// API – методы tgbotapi.BotAPI, которые использует бот.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// UpdateSink принимает обновления Telegram независимо от способа доставки.
type UpdateSink interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// UpdateSinkFunc позволяет использовать функцию как UpdateSink.
type UpdateSinkFunc func(ctx context.Context, update tgbotapi.Update) error

func (f UpdateSinkFunc) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	return f(ctx, update)
}

var errNoCallback = errors.New("нет callback для ответа")

// Bot представляет Telegram-бота и исполняет исходящие действия диспетчера.
type Bot struct {
	api    API
	logger *logging.Logger
}

// NewBot создает нового Telegram-бота. Токен всегда передаётся снаружи.
func NewBot(token string, debug bool, logger *logging.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = debug
	logger.Infof("Авторизован как @%s", api.Self.UserName)
	return NewBotWithAPI(api, logger), nil
}

// NewBotWithAPI создает бота поверх готового клиента API.
func NewBotWithAPI(api API, logger *logging.Logger) *Bot {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bot{api: api, logger: logger}
}

// Outbox возвращает Outbox, привязанный к чату и (для нажатий кнопок) к callback.
func (b *Bot) Outbox(chatID int64, callbackID string) service.Outbox {
	return service.OutboxFunc(func(ctx context.Context, a service.Action) error {
		return b.execute(chatID, callbackID, a)
	})
}

func (b *Bot) execute(chatID int64, callbackID string, a service.Action) error {
	switch v := a.(type) {
	case service.SendText:
		msg := tgbotapi.NewMessage(chatID, v.Text)
		msg.ParseMode = v.ParseMode
		if len(v.Keyboard) > 0 {
			msg.ReplyMarkup = inlineKeyboard(v.Keyboard)
		}
		_, err := b.api.Send(msg)
		return err
	case service.SendPhoto:
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(v.URL))
		photo.Caption = v.Caption
		photo.ParseMode = v.ParseMode
		if len(v.Keyboard) > 0 {
			photo.ReplyMarkup = inlineKeyboard(v.Keyboard)
		}
		_, err := b.api.Send(photo)
		return err
	case service.SendAudio:
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(v.URL))
		audio.Title = v.Title
		audio.Performer = v.Performer
		audio.Duration = v.DurationSeconds
		_, err := b.api.Send(audio)
		return err
	case service.AckCallback:
		if callbackID == "" {
			return errNoCallback
		}
		_, err := b.api.Request(tgbotapi.NewCallback(callbackID, v.Text))
		return err
	case service.TypingIndicator:
		_, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
		return err
	case service.UploadAudioIndicator:
		_, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadVoice))
		return err
	default:
		return fmt.Errorf("неизвестное действие %T", a)
	}
}

func inlineKeyboard(kb service.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// SetWebhook регистрирует адрес вебхука в Telegram.
func (b *Bot) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("webhook url: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	b.logger.Infof("Вебхук установлен: %s", url)
	return nil
}

// DeleteWebhook снимает вебхук, иначе getUpdates не работает.
func (b *Bot) DeleteWebhook() error {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

// Poll получает обновления длинным поллингом и обрабатывает каждое в своей горутине.
// Возвращается после отмены ctx, дождавшись уже начатых обработок.
func (b *Bot) Poll(ctx context.Context, sink UpdateSink) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = PollTimeout
	updates := b.api.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			wg.Add(1)
			go func(update tgbotapi.Update) {
				defer wg.Done()
				// начатая обработка не прерывается при остановке
				if err := sink.HandleUpdate(context.WithoutCancel(ctx), update); err != nil {
					b.logger.Errorf("Ошибка обработки обновления %d: %v", update.UpdateID, err)
				}
			}(update)
		}
	}
}
