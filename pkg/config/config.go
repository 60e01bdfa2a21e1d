// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Режимы доставки обновлений Telegram.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
	ModePubSub  = "pubsub"
)

const DefaultAPIBaseURL = "https://airsongsapi.vercel.app"

// Config содержит все параметры запуска бота.
type Config struct {
	TelegramToken string        `yaml:"telegram_token"`
	Debug         bool          `yaml:"debug"`
	APIBaseURL    string        `yaml:"api_base_url"`
	APITimeout    time.Duration `yaml:"api_timeout"`

	Mode       string `yaml:"mode"`
	WebhookURL string `yaml:"webhook_url"`
	Port       string `yaml:"port"`

	RedisAddress  string        `yaml:"redis_address"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	DedupTTL      time.Duration `yaml:"dedup_ttl"`

	GCPProject         string `yaml:"gcp_project"`
	PubSubTopic        string `yaml:"pubsub_topic"`
	PubSubSubscription string `yaml:"pubsub_subscription"`
	Workers            int    `yaml:"workers"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
// Токен бота по умолчанию не задаётся никогда.
func Default() *Config {
	return &Config{
		APIBaseURL:         DefaultAPIBaseURL,
		Mode:               ModePolling,
		Port:               "8080",
		DedupTTL:           10 * time.Minute,
		PubSubTopic:        "telegram-updates",
		PubSubSubscription: "telegram-updates-sub",
		Workers:            5,
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// Load собирает конфигурацию: значения по умолчанию, YAML-файл из CONFIG_FILE,
// .env и переменные окружения (в порядке возрастания приоритета).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Не удалось прочитать .env: %v", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString("TELEGRAM_BOT_TOKEN", &c.TelegramToken)
	setString("SONG_API_BASE_URL", &c.APIBaseURL)
	setString("MODE", &c.Mode)
	setString("WEBHOOK_URL", &c.WebhookURL)
	setString("PORT", &c.Port)
	setString("REDIS_ADDRESS", &c.RedisAddress)
	setString("REDIS_PASSWORD", &c.RedisPassword)
	setString("GOOGLE_CLOUD_PROJECT", &c.GCPProject)
	setString("PUBSUB_TOPIC", &c.PubSubTopic)
	setString("PUBSUB_SUBSCRIPTION", &c.PubSubSubscription)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)

	var errs []error
	if v := getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("API_TIMEOUT: %w", err))
		}
		c.APITimeout = d
	}
	if v := getenv("DEDUP_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DEDUP_TTL: %w", err))
		}
		c.DedupTTL = d
	}
	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("REDIS_DB: %w", err))
		}
		c.RedisDB = n
	}
	if v := getenv("WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WORKERS: %w", err))
		}
		c.Workers = n
	}
	if v := getenv("BOT_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("BOT_DEBUG: %w", err))
		}
		c.Debug = b
	}
	return errors.Join(errs...)
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки разом.
func (c *Config) Validate() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN не задан"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("SONG_API_BASE_URL не задан"))
	}
	switch c.Mode {
	case ModePolling:
	case ModeWebhook, ModePubSub:
		if c.WebhookURL == "" {
			errs = append(errs, fmt.Errorf("WEBHOOK_URL обязателен в режиме %s", c.Mode))
		}
		if c.Mode == ModePubSub && c.GCPProject == "" {
			errs = append(errs, errors.New("GOOGLE_CLOUD_PROJECT обязателен в режиме pubsub"))
		}
	default:
		errs = append(errs, fmt.Errorf("неизвестный MODE %q", c.Mode))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("WORKERS должен быть больше нуля"))
	}
	if c.DedupTTL <= 0 {
		errs = append(errs, errors.New("DEDUP_TTL должен быть больше нуля"))
	}
	if c.APITimeout < 0 {
		errs = append(errs, errors.New("API_TIMEOUT не может быть отрицательным"))
	}
	return errors.Join(errs...)
}

// WebhookEndpoint возвращает полный адрес, который регистрируется в Telegram.
func (c *Config) WebhookEndpoint() string {
	return strings.TrimRight(c.WebhookURL, "/") + "/webhook"
}
