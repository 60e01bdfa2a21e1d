// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Clean1ines/airsongs/pkg/config"
	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/telegram/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Конфигурация: YAML-файл, .env и переменные окружения. Без TELEGRAM_BOT_TOKEN бот не стартует.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	// Cloud Logging при заданном GOOGLE_CLOUD_PROJECT, иначе zap.
	logger, err := logging.New(ctx, logging.Options{
		ProjectID: cfg.GCPProject,
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}

	app, err := setup.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Ошибка инициализации бота: %v", err)
	}

	logger.Infof("Бот запущен, режим %s", cfg.Mode)
	runErr := app.Run(ctx)
	app.Close()
	if runErr != nil {
		logger.Errorf("Бот остановлен с ошибкой: %v", runErr)
		logger.Close()
		os.Exit(1)
	}
	logger.Infof("Бот остановлен")
	logger.Close()
}
