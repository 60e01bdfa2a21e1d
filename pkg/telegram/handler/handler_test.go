package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/telegram"
	"github.com/Clean1ines/airsongs/pkg/telegram/service"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, ev service.Event, out service.Outbox) {
	m.Called(ctx, ev, out)
}

func (m *MockDispatcher) HandleCallbackData(ctx context.Context, data string, out service.Outbox) {
	m.Called(ctx, data, out)
}

type boundOutbox struct {
	chatID     int64
	callbackID string
}

func (boundOutbox) Emit(context.Context, service.Action) error { return nil }

type outboxes struct{}

func (outboxes) Outbox(chatID int64, callbackID string) service.Outbox {
	return boundOutbox{chatID: chatID, callbackID: callbackID}
}

func TestHandleTextMessage(t *testing.T) {
	d := new(MockDispatcher)
	d.On("Dispatch", mock.Anything, service.SearchQuery{Text: "Shape of You"}, boundOutbox{chatID: 7}).Return()
	h := NewUpdateHandler(d, outboxes{}, logging.NewNop())

	err := h.HandleUpdate(context.Background(), tgbotapi.Update{
		UpdateID: 1,
		Message:  &tgbotapi.Message{Text: "Shape of You", Chat: &tgbotapi.Chat{ID: 7}},
	})

	assert.NoError(t, err)
	d.AssertExpectations(t)
}

func TestHandleCommand(t *testing.T) {
	d := new(MockDispatcher)
	d.On("Dispatch", mock.Anything, service.Command{Name: "start"}, boundOutbox{chatID: 7}).Return()
	h := NewUpdateHandler(d, outboxes{}, nil)

	h.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{Text: "/start", Chat: &tgbotapi.Chat{ID: 7}},
	})
	d.AssertExpectations(t)
}

func TestIgnoredUpdates(t *testing.T) {
	d := new(MockDispatcher)
	h := NewUpdateHandler(d, outboxes{}, nil)
	ctx := context.Background()

	// фото без подписи, пустой текст и прочие обновления не доходят до диспетчера
	h.HandleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}}})
	h.HandleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{Text: "   ", Chat: &tgbotapi.Chat{ID: 1}}})
	h.HandleUpdate(ctx, tgbotapi.Update{EditedMessage: &tgbotapi.Message{Text: "x"}})

	d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallback(t *testing.T) {
	d := new(MockDispatcher)
	d.On("HandleCallbackData", mock.Anything, "lyrics_abc", boundOutbox{chatID: 7, callbackID: "cb"}).Return()
	d.On("HandleCallbackData", mock.Anything, "info_abc", boundOutbox{chatID: 99, callbackID: "inline"}).Return()
	h := NewUpdateHandler(d, outboxes{}, nil)
	ctx := context.Background()

	h.HandleUpdate(ctx, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    "lyrics_abc",
		From:    &tgbotapi.User{ID: 99},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}},
	}})
	h.HandleUpdate(ctx, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "inline",
		Data: "info_abc",
		From: &tgbotapi.User{ID: 99},
	}})

	d.AssertExpectations(t)
}

func TestWebhookHandler(t *testing.T) {
	var got []int
	sink := telegram.UpdateSinkFunc(func(ctx context.Context, u tgbotapi.Update) error {
		assert.NoError(t, ctx.Err())
		got = append(got, u.UpdateID)
		return nil
	})
	srv := httptest.NewServer(NewRouter(sink, logging.NewNop()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/webhook", "application/json",
		strings.NewReader(`{"update_id":42,"message":{"message_id":1,"text":"hello","chat":{"id":7,"type":"private"}}}`))
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int{42}, got)

	resp, err = http.Post(srv.URL+"/webhook", "application/json", strings.NewReader(`{not json`))
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, got, 1)

	resp, err = http.Get(srv.URL + "/webhook")
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health")
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookSinkError(t *testing.T) {
	sink := telegram.UpdateSinkFunc(func(context.Context, tgbotapi.Update) error {
		return errors.New("publish failed")
	})
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id":1}`))
	w := httptest.NewRecorder()

	WebhookHandler(sink, logging.NewNop())(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhookContextOutlivesRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sinkErr error
	sink := telegram.UpdateSinkFunc(func(ctx context.Context, _ tgbotapi.Update) error {
		sinkErr = ctx.Err()
		return nil
	})
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id":1}`)).WithContext(ctx)
	w := httptest.NewRecorder()

	WebhookHandler(sink, logging.NewNop())(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, sinkErr)
}
