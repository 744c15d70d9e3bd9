package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"skin-relay/internal/domain"
	"skin-relay/internal/ports"
	"skin-relay/internal/telegram"
)

// Outcome - итог обработки заявки.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeInvalid
	OutcomeMisconfigured
	OutcomeUpstreamFailed
	OutcomeInternal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeMisconfigured:
		return "misconfigured"
	case OutcomeUpstreamFailed:
		return "upstream_failed"
	default:
		return "internal"
	}
}

// Result - явный результат пересылки вместо исключений.
type Result struct {
	Outcome Outcome
	// Violations заполняется только для OutcomeInvalid.
	Violations []string
	Err        error
}

// Failed сообщает, завершилась ли пересылка ошибкой.
func (r Result) Failed() bool {
	return r.Outcome != OutcomeSent
}

// RelayConfig содержит обязательные параметры пересылки.
type RelayConfig struct {
	BotToken string
	ChatID   string
}

// Configured сообщает, заданы ли оба обязательных параметра.
func (c RelayConfig) Configured() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// RelayService пересылает проверенные заявки в чат модераторов.
// Сервис не хранит состояния между вызовами.
type RelayService struct {
	cfg       RelayConfig
	messenger ports.Messenger
	logger    *slog.Logger
}

// NewRelayService создает новый экземпляр RelayService.
func NewRelayService(cfg RelayConfig, messenger ports.Messenger, logger *slog.Logger) *RelayService {
	return &RelayService{
		cfg:       cfg,
		messenger: messenger,
		logger:    logger,
	}
}

// Process проверяет заявку и, если нарушений нет, пересылает ее.
func (s *RelayService) Process(ctx context.Context, sub *domain.Submission) Result {
	if violations := ValidateSubmission(sub); len(violations) > 0 {
		return Result{
			Outcome:    OutcomeInvalid,
			Violations: violations,
			Err:        fmt.Errorf("%w: %s", domain.ErrValidation, JoinViolations(violations)),
		}
	}
	return s.Relay(ctx, sub)
}

// Relay отправляет заявку одним исходящим вызовом: документом, если приложен файл,
// иначе текстовым сообщением. Заявка должна быть проверена заранее.
func (s *RelayService) Relay(ctx context.Context, sub *domain.Submission) Result {
	if !s.cfg.Configured() {
		s.logger.Error("relay credentials are missing",
			slog.Bool("bot_token_set", s.cfg.BotToken != ""),
			slog.Bool("chat_id_set", s.cfg.ChatID != ""),
		)
		return Result{Outcome: OutcomeMisconfigured, Err: domain.ErrMisconfigured}
	}

	var err error
	if sub.HasFile() {
		err = s.messenger.SendDocument(ctx, ports.Document{
			ChatID:    s.cfg.ChatID,
			FileName:  sub.File.Name,
			Content:   sub.File.Content,
			Caption:   ComposeCaption(sub),
			ParseMode: telegram.ParseModeMarkdownV2,
		})
	} else {
		err = s.messenger.SendMessage(ctx, ports.TextMessage{
			ChatID:    s.cfg.ChatID,
			Text:      ComposeText(sub),
			ParseMode: telegram.ParseModeMarkdownV2,
		})
	}

	switch {
	case err == nil:
		return Result{Outcome: OutcomeSent}
	case errors.Is(err, domain.ErrUpstream):
		attrs := []any{slog.String("error", err.Error())}
		if apiErr, ok := telegram.IsAPIError(err); ok {
			attrs = append(attrs, slog.Int("status", apiErr.StatusCode), slog.String("body", apiErr.Body))
		}
		s.logger.Error("telegram api error", attrs...)
		return Result{Outcome: OutcomeUpstreamFailed, Err: err}
	default:
		s.logger.Error("relay call failed", slog.String("error", err.Error()))
		return Result{Outcome: OutcomeInternal, Err: fmt.Errorf("relay: %w", err)}
	}
}
