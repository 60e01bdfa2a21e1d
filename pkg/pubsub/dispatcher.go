// pkg/pubsub/dispatcher.go
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cloud.google.com/go/pubsub"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/api/option"

	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/telegram"
)

// PubSubClient инкапсулирует клиента, топик и подписку для обновлений Telegram.
type PubSubClient struct {
	Client       *pubsub.Client
	Topic        *pubsub.Topic
	Subscription *pubsub.Subscription
	logger       *logging.Logger
}

// InitPubSubClient инициализирует клиента Pub/Sub для проекта.
func InitPubSubClient(ctx context.Context, projectID, topicID, subID string, logger *logging.Logger, opts ...option.ClientOption) (*PubSubClient, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}
	return New(client, topicID, subID, logger), nil
}

// New оборачивает готового клиента.
func New(client *pubsub.Client, topicID, subID string, logger *logging.Logger) *PubSubClient {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PubSubClient{
		Client:       client,
		Topic:        client.Topic(topicID),
		Subscription: client.Subscription(subID),
		logger:       logger,
	}
}

// HandleUpdate публикует обновление в топик. Реализует telegram.UpdateSink
// для вебхука: обработка произойдет в пуле воркеров.
func (p *PubSubClient) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	result := p.Topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"update_id": strconv.Itoa(update.UpdateID)},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish update %d: %w", update.UpdateID, err)
	}
	return nil
}

// StartWorkerPool получает обновления из подписки и передает их в sink,
// обрабатывая не больше workerCount сообщений одновременно.
// Каждое сообщение подтверждается после одной попытки обработки.
func (p *PubSubClient) StartWorkerPool(ctx context.Context, workerCount int, sink telegram.UpdateSink) error {
	p.Subscription.ReceiveSettings.MaxOutstandingMessages = workerCount
	err := p.Subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		defer msg.Ack()

		var update tgbotapi.Update
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			p.logger.Errorf("Ошибка разбора обновления %s: %v", msg.ID, err)
			return
		}
		if err := sink.HandleUpdate(context.WithoutCancel(ctx), update); err != nil {
			p.logger.Errorf("Ошибка обработки обновления %d: %v", update.UpdateID, err)
		}
	})
	if err != nil {
		return fmt.Errorf("receive: %w", err)
	}
	return nil
}

// Close останавливает отправку и закрывает клиента.
func (p *PubSubClient) Close() error {
	p.Topic.Stop()
	return p.Client.Close()
}
