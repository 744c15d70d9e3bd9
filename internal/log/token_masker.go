package log

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

const maskedToken = "***masked-token***"

// токен бота в формате <id>:<secret>, в том числе внутри URL вида /bot<id>:<secret>/
var botTokenRegex = regexp.MustCompile(`\d{5,}:[A-Za-z0-9_-]{30,}`)

// SecretMaskerHandler - обертка для slog.Handler, которая вырезает токены бота
// и явно переданные секреты из сообщений и атрибутов.
type SecretMaskerHandler struct {
	handler slog.Handler
	secrets []string
}

// NewSecretMaskerHandler создает обработчик с маскировкой. Пустые секреты игнорируются.
func NewSecretMaskerHandler(handler slog.Handler, secrets ...string) *SecretMaskerHandler {
	filtered := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			filtered = append(filtered, s)
		}
	}
	return &SecretMaskerHandler{
		handler: handler,
		secrets: filtered,
	}
}

func (h *SecretMaskerHandler) mask(text string) string {
	for _, s := range h.secrets {
		text = strings.ReplaceAll(text, s, maskedToken)
	}
	return botTokenRegex.ReplaceAllString(text, maskedToken)
}

// Enabled реализует интерфейс slog.Handler
func (h *SecretMaskerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler
func (h *SecretMaskerHandler) Handle(ctx context.Context, record slog.Record) error {
	// Новая запись без атрибутов: оригинал может переиспользоваться slog
	r := slog.NewRecord(record.Time, record.Level, h.mask(record.Message), record.PC)

	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler
func (h *SecretMaskerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		masked[i] = h.maskAttr(attr)
	}
	return &SecretMaskerHandler{
		handler: h.handler.WithAttrs(masked),
		secrets: h.secrets,
	}
}

// WithGroup реализует интерфейс slog.Handler
func (h *SecretMaskerHandler) WithGroup(name string) slog.Handler {
	return &SecretMaskerHandler{
		handler: h.handler.WithGroup(name),
		secrets: h.secrets,
	}
}

func (h *SecretMaskerHandler) maskAttr(a slog.Attr) slog.Attr {
	return slog.Attr{Key: a.Key, Value: h.maskValue(a.Value)}
}

// maskValue рекурсивно маскирует строки, ошибки и группы
func (h *SecretMaskerHandler) maskValue(value slog.Value) slog.Value {
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(h.mask(value.String()))
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(h.mask(err.Error()))
		}
		return value
	case slog.KindLogValuer:
		return h.maskValue(value.Resolve())
	case slog.KindGroup:
		group := value.Group()
		masked := make([]slog.Attr, len(group))
		for i, attr := range group {
			masked[i] = h.maskAttr(attr)
		}
		return slog.GroupValue(masked...)
	default:
		return value
	}
}
