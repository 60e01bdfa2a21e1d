package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Event – входящее событие: Command, SearchQuery или ButtonPress.
type Event interface {
	event()
}

// Command – сообщение, начинающееся с "/".
type Command struct {
	Name string
	Args string
}

// SearchQuery – любой другой непустой текст.
type SearchQuery struct {
	Text string
}

// ButtonPress – нажатие inline-кнопки под карточкой песни.
type ButtonPress struct {
	Action ButtonAction
	SongID string
}

func (Command) event()     {}
func (SearchQuery) event() {}
func (ButtonPress) event() {}

// ButtonAction – действие, закодированное в callback data.
type ButtonAction string

const (
	ActionStream   ButtonAction = "stream"
	ActionDownload ButtonAction = "download"
	ActionLyrics   ButtonAction = "lyrics"
	ActionInfo     ButtonAction = "info"
)

const buttonSeparator = "_"

// ErrMalformedButton – callback data не в формате "<action>_<songId>".
var ErrMalformedButton = errors.New("malformed button payload")

// EncodeButton собирает callback data для кнопки.
func EncodeButton(action ButtonAction, songID string) string {
	return string(action) + buttonSeparator + songID
}

// DecodeButton разбирает callback data по первому "_".
// Неизвестное действие ошибкой не считается: его обрабатывает диспетчер.
func DecodeButton(data string) (ButtonPress, error) {
	action, songID, found := strings.Cut(data, buttonSeparator)
	if !found || action == "" || songID == "" {
		return ButtonPress{}, fmt.Errorf("%w: %q", ErrMalformedButton, data)
	}
	return ButtonPress{Action: ButtonAction(action), SongID: songID}, nil
}

// ClassifyText превращает текст сообщения в Command или SearchQuery.
// Для пустого текста возвращает nil.
func ClassifyText(text string) Event {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !strings.HasPrefix(text, "/") {
		return SearchQuery{Text: text}
	}

	body := text[1:]
	name, args := body, ""
	if i := strings.IndexFunc(body, unicode.IsSpace); i >= 0 {
		name, args = body[:i], strings.TrimSpace(body[i:])
	}
	// /start@AirSongsBot
	name, _, _ = strings.Cut(name, "@")
	return Command{Name: strings.ToLower(name), Args: args}
}
