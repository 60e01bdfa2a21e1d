// pkg/logging/logger.go
package logging

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogID – имя журнала в Cloud Logging.
const LogID = "airsongs"

// Options задаёт параметры логгера.
type Options struct {
	ProjectID string // если задан, записи уходят в Cloud Logging
	Level     string // debug|info|warn|error
	Format    string // json|console, только для zap
}

// Logger пишет записи либо в Google Cloud Logging, либо в zap.
type Logger struct {
	client *logging.Client
	cloud  *logging.Logger
	sugar  *zap.SugaredLogger
	min    logging.Severity
	labels map[string]string
	exit   func(int)
}

// callerSkip пропускает методы Logger (Infof и т.п. и log), чтобы caller указывал на вызывающий код.
const callerSkip = 2

// New создаёт логгер. Без ProjectID используется локальный zap.
func New(ctx context.Context, opts Options) (*Logger, error) {
	level := parseSeverity(opts.Level)
	if opts.ProjectID != "" {
		client, err := logging.NewClient(ctx, opts.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("cloud logging client: %w", err)
		}
		return &Logger{
			client: client,
			cloud:  client.Logger(LogID),
			min:    level,
		}, nil
	}

	zcfg := zap.NewProductionConfig()
	if opts.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	zl, err := zcfg.Build(zap.AddCallerSkip(callerSkip))
	if err != nil {
		return nil, fmt.Errorf("zap logger: %w", err)
	}
	return &Logger{sugar: zl.Sugar(), min: level}, nil
}

// NewNop возвращает логгер, который ничего не пишет.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar(), min: logging.Debug}
}

// With возвращает копию логгера с дополнительной меткой.
func (l *Logger) With(key, value string) *Logger {
	labels := make(map[string]string, len(l.labels)+1)
	for k, v := range l.labels {
		labels[k] = v
	}
	labels[key] = value
	out := *l
	out.labels = labels
	if l.sugar != nil {
		out.sugar = l.sugar.With(key, value)
	}
	return &out
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(logging.Debug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(logging.Info, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(logging.Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(logging.Error, format, args...) }

// Fatalf пишет запись уровня Critical и завершает процесс.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(logging.Critical, format, args...)
	l.Close()
	exit := l.exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

func (l *Logger) log(sev logging.Severity, format string, args ...interface{}) {
	if sev < l.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.cloud != nil {
		l.cloud.Log(logging.Entry{Severity: sev, Payload: msg, Labels: l.labels})
		return
	}
	switch {
	case sev >= logging.Critical:
		l.sugar.Fatal(msg)
	case sev >= logging.Error:
		l.sugar.Error(msg)
	case sev >= logging.Warning:
		l.sugar.Warn(msg)
	case sev >= logging.Info:
		l.sugar.Info(msg)
	default:
		l.sugar.Debug(msg)
	}
}

// Flush отправляет накопленные записи.
func (l *Logger) Flush() error {
	if l.cloud != nil {
		return l.cloud.Flush()
	}
	return l.sugar.Sync()
}

// Close сбрасывает буферы и закрывает клиента Cloud Logging.
func (l *Logger) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	_ = l.sugar.Sync()
	return nil
}

func parseSeverity(level string) logging.Severity {
	switch strings.ToLower(level) {
	case "debug":
		return logging.Debug
	case "warn", "warning":
		return logging.Warning
	case "error":
		return logging.Error
	default:
		return logging.Info
	}
}

func zapLevel(sev logging.Severity) zapcore.Level {
	switch {
	case sev >= logging.Critical:
		return zapcore.FatalLevel
	case sev >= logging.Error:
		return zapcore.ErrorLevel
	case sev >= logging.Warning:
		return zapcore.WarnLevel
	case sev >= logging.Info:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
