package log

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader é reaproveitado quando o cliente já envia um ID
const RequestIDHeader = "X-Request-ID"

type contextKey int

const (
	requestIDKey contextKey = iota
	runIDKey
	ownerIDKey
)

// IsProduction indica APP_ENV=production; nesse caso os logs saem em JSON
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}

// Configure define formato e nível do logger global.
// Níveis inválidos caem para info.
func Configure(level string) {
	logrus.SetOutput(os.Stdout)

	if IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

// WithRequestID grava o ID da requisição no contexto, gerando um novo quando vazio
func WithRequestID(ctx context.Context, requestID string) (context.Context, string) {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, requestID), requestID
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRunID associa o contexto a uma execução de job
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// ForContext retorna uma entrada com request_id, run_id e owner_id presentes no contexto
func ForContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if ctx != nil {
		for key, name := range map[contextKey]string{
			requestIDKey: "request_id",
			runIDKey:     "run_id",
			ownerIDKey:   "owner_id",
		} {
			if v, ok := ctx.Value(key).(string); ok && v != "" {
				fields[name] = v
			}
		}
	}
	return logrus.WithFields(fields)
}
