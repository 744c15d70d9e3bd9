package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"skin-relay/internal/domain"
)

// APIClient - клиент для взаимодействия с API сервера приема скинов.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Submitter = (*APIClient)(nil)

// NewAPIClient создает новый экземпляр APIClient.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ResponseError - сервер ответил статусом не из диапазона 2xx.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Message)
}

type errorResponse struct {
	Error string `json:"error"`
}

type statsResponse struct {
	Repositories []domain.RepoStats `json:"repositories"`
}

// Submit отправляет заявку multipart-запросом на /api/submit-skin.
func (c *APIClient) Submit(ctx context.Context, p Payload) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fields := []struct{ key, value string }{
		{"name", p.Name},
		{"email", p.Email},
		{"telegram", p.Telegram},
	}
	if p.File == nil {
		fields = append(fields, struct{ key, value string }{"skinLink", p.Link})
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", f.key, err)
		}
	}

	if p.File != nil {
		fw, err := w.CreateFormFile("skinFile", p.File.Name)
		if err != nil {
			return fmt.Errorf("failed to create form file for %s: %w", p.File.Name, err)
		}
		if _, err = io.Copy(fw, p.File.Content); err != nil {
			return fmt.Errorf("failed to copy file content for %s: %w", p.File.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit-skin", &b)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Skins запрашивает каталог скинов сообщества, опционально с фильтром.
func (c *APIClient) Skins(ctx context.Context, query string) ([]domain.Skin, error) {
	endpoint := c.baseURL + "/api/skins"
	if query != "" {
		endpoint += "?q=" + url.QueryEscape(query)
	}

	var skins []domain.Skin
	if err := c.getJSON(ctx, endpoint, &skins); err != nil {
		return nil, err
	}
	return skins, nil
}

// Stats запрашивает счетчики репозиториев.
func (c *APIClient) Stats(ctx context.Context) ([]domain.RepoStats, error) {
	var result statsResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/stats", &result); err != nil {
		return nil, err
	}
	return result.Repositories, nil
}

func (c *APIClient) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatus превращает ответ не из 2xx в *ResponseError с полем error сервера.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
	return &ResponseError{StatusCode: resp.StatusCode, Message: body.Error}
}
