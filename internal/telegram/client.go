// Package telegram реализует клиент Telegram Bot API для пересылки заявок.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"skin-relay/internal/domain"
	"skin-relay/internal/ports"
)

// DefaultAPIBaseURL - адрес публичного Bot API.
const DefaultAPIBaseURL = "https://api.telegram.org"

// maxLoggedBody ограничивает объем тела ответа, попадающего в ошибку и логи.
const maxLoggedBody = 4096

// APIError описывает неуспешный ответ Bot API.
type APIError struct {
	StatusCode int
	Body       string
	Response   tgbotapi.APIResponse
}

func (e *APIError) Error() string {
	if e.Response.Description != "" {
		return fmt.Sprintf("bot api returned %d: %s", e.StatusCode, e.Response.Description)
	}
	return fmt.Sprintf("bot api returned %d: %s", e.StatusCode, e.Body)
}

// Unwrap позволяет сопоставлять ошибку с domain.ErrUpstream.
func (e *APIError) Unwrap() error {
	return domain.ErrUpstream
}

// BotClient - клиент методов sendMessage и sendDocument.
type BotClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.Messenger = (*BotClient)(nil)

// NewBotClient создает новый экземпляр BotClient.
func NewBotClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *BotClient {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &BotClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMessage отправляет текст в формате JSON.
func (c *BotClient) SendMessage(ctx context.Context, msg ports.TextMessage) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    msg.ChatID,
		Text:      msg.Text,
		ParseMode: msg.ParseMode,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "sendMessage")
}

// SendDocument загружает файл через multipart/form-data. Тело формы пишется
// в pipe по мере отправки и не буферизуется целиком.
func (c *BotClient) SendDocument(ctx context.Context, doc ports.Document) error {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeDocumentForm(w, doc))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendDocument"), pr)
	if err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, "sendDocument")
}

// writeDocumentForm пишет поля sendDocument и закрывает writer.
func writeDocumentForm(w *multipart.Writer, doc ports.Document) error {
	if err := w.WriteField("chat_id", doc.ChatID); err != nil {
		return fmt.Errorf("failed to write chat_id: %w", err)
	}

	fw, err := w.CreateFormFile("document", doc.FileName)
	if err != nil {
		return fmt.Errorf("failed to create form file for %s: %w", doc.FileName, err)
	}
	if _, err = io.Copy(fw, doc.Content); err != nil {
		return fmt.Errorf("failed to copy file content for %s: %w", doc.FileName, err)
	}

	if err := w.WriteField("caption", doc.Caption); err != nil {
		return fmt.Errorf("failed to write caption: %w", err)
	}
	if doc.ParseMode != "" {
		if err := w.WriteField("parse_mode", doc.ParseMode); err != nil {
			return fmt.Errorf("failed to write parse_mode: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return nil
}

func (c *BotClient) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// do выполняет запрос и разбирает конверт ответа Bot API.
func (c *BotClient) do(req *http.Request, method string) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp tgbotapi.APIResponse
	decodeErr := json.Unmarshal(body, &apiResp)

	if resp.StatusCode != http.StatusOK || decodeErr != nil || !apiResp.Ok {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Response:   apiResp,
		}
	}

	c.logger.Debug("bot api call succeeded",
		slog.String("method", method),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// IsAPIError сообщает, является ли err ответом Bot API, и возвращает его.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
