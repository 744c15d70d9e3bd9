// Package log собирает slog-логгер приложения.
package log

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel переводит строковый уровень из конфигурации в slog.Level.
// Неизвестные значения дают info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger создает логгер в формате json или text, который маскирует
// токены бота и переданные секреты.
func NewLogger(w io.Writer, level, format string, secrets ...string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(NewSecretMaskerHandler(handler, secrets...))
}
