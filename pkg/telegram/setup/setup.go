package setup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"

	"github.com/Clean1ines/airsongs/pkg/api"
	"github.com/Clean1ines/airsongs/pkg/api/client"
	"github.com/Clean1ines/airsongs/pkg/config"
	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/pubsub"
	"github.com/Clean1ines/airsongs/pkg/storage"
	"github.com/Clean1ines/airsongs/pkg/telegram"
	"github.com/Clean1ines/airsongs/pkg/telegram/handler"
	"github.com/Clean1ines/airsongs/pkg/telegram/middleware"
	"github.com/Clean1ines/airsongs/pkg/telegram/service"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App holds every wired dependency of the bot.
type App struct {
	cfg    *config.Config
	logger *logging.Logger

	Bot        *telegram.Bot
	Dispatcher *service.Dispatcher
	// Updates is the dispatch chain: de-duplication (when Redis is configured) then the update handler.
	Updates telegram.UpdateSink

	redis  *redis.Client
	pubsub *pubsub.PubSubClient
}

// New authenticates the bot and wires the rest.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*App, error) {
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.Debug, logger)
	if err != nil {
		return nil, err
	}
	return NewWithBot(ctx, cfg, logger, bot)
}

// NewWithBot wires the application around an existing bot.
func NewWithBot(ctx context.Context, cfg *config.Config, logger *logging.Logger, bot *telegram.Bot) (*App, error) {
	songs := api.NewClient(cfg.APIBaseURL, client.New(cfg.APITimeout))
	d := service.NewDispatcher(songs, logger)

	a := &App{cfg: cfg, logger: logger, Bot: bot, Dispatcher: d}
	a.Updates = handler.NewUpdateHandler(d, bot, logger)

	if cfg.RedisAddress != "" {
		rc, err := storage.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		a.redis = rc
		a.Updates = middleware.Dedup(storage.NewSeenStore(rc), cfg.DedupTTL, logger, a.Updates)
		logger.Infof("update de-duplication enabled, ttl %s", cfg.DedupTTL)
	}

	if cfg.Mode == config.ModePubSub {
		ps, err := pubsub.InitPubSubClient(ctx, cfg.GCPProject, cfg.PubSubTopic, cfg.PubSubSubscription, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.pubsub = ps
	}
	return a, nil
}

// Run receives updates in the configured mode until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	switch a.cfg.Mode {
	case config.ModePolling:
		if err := a.Bot.DeleteWebhook(); err != nil {
			return err
		}
		a.logger.Infof("polling for updates")
		a.Bot.Poll(ctx, a.Updates)
		return nil
	case config.ModeWebhook:
		if err := a.Bot.SetWebhook(a.cfg.WebhookEndpoint()); err != nil {
			return err
		}
		return a.serve(ctx, handler.NewRouter(a.Updates, a.logger))
	case config.ModePubSub:
		if err := a.Bot.SetWebhook(a.cfg.WebhookEndpoint()); err != nil {
			return err
		}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return a.pubsub.StartWorkerPool(gctx, a.cfg.Workers, a.Updates)
		})
		g.Go(func() error {
			return a.serve(gctx, handler.NewRouter(a.pubsub, a.logger))
		})
		return g.Wait()
	default:
		return fmt.Errorf("unknown mode %q", a.cfg.Mode)
	}
}

func (a *App) serve(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      h,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("listening on port %s", a.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases Redis and Pub/Sub connections.
func (a *App) Close() {
	if a.pubsub != nil {
		if err := a.pubsub.Close(); err != nil {
			a.logger.Warnf("pubsub close: %v", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warnf("redis close: %v", err)
		}
	}
}
