package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-relay/internal/domain"
	"skin-relay/internal/ports"
)

const testToken = "123456:TEST_TOKEN"

func newTestClient(baseURL string) *BotClient {
	return NewBotClient(baseURL, testToken, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBotClient_SendMessage(t *testing.T) {
	var got sendMessageRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	err := client.SendMessage(context.Background(), ports.TextMessage{
		ChatID:    "-100500",
		Text:      "hello",
		ParseMode: ParseModeMarkdownV2,
	})
	require.NoError(t, err)

	assert.Equal(t, "-100500", got.ChatID)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "MarkdownV2", got.ParseMode)
}

func TestBotClient_SendDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/sendDocument", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "42", r.FormValue("chat_id"))
		assert.Equal(t, "caption text", r.FormValue("caption"))
		assert.Equal(t, "MarkdownV2", r.FormValue("parse_mode"))

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "skin.zip", header.Filename)
		assert.Equal(t, "archive-bytes", string(content))

		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":2}}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	err := client.SendDocument(context.Background(), ports.Document{
		ChatID:    "42",
		FileName:  "skin.zip",
		Content:   strings.NewReader("archive-bytes"),
		Caption:   "caption text",
		ParseMode: ParseModeMarkdownV2,
	})
	require.NoError(t, err)
}

func TestBotClient_SendDocumentStreamsBody(t *testing.T) {
	archive := strings.Repeat("x", 3<<20)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// длина тела заранее неизвестна: форма пишется по мере отправки
		assert.Equal(t, int64(-1), r.ContentLength)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, _, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Len(t, content, len(archive))

		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).SendDocument(context.Background(), ports.Document{
		ChatID:   "42",
		FileName: "big.zip",
		Content:  strings.NewReader(archive),
	})
	require.NoError(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestBotClient_SendDocumentContentError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).SendDocument(context.Background(), ports.Document{
		ChatID:   "42",
		FileName: "skin.zip",
		Content:  failingReader{},
	})
	require.Error(t, err)
}

func TestBotClient_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	err := client.SendMessage(context.Background(), ports.TextMessage{ChatID: "1", Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 400, apiErr.Response.ErrorCode)
	assert.Contains(t, apiErr.Error(), "chat not found")
}

func TestBotClient_NotJSONResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	err := client.SendMessage(context.Background(), ports.TextMessage{ChatID: "1", Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestBotClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := newTestClient(ts.URL)
	err := client.SendMessage(context.Background(), ports.TextMessage{ChatID: "1", Text: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

func TestEscapeMarkdownV2(t *testing.T) {
	special := "_*[]()~`>#+=|{}.!-"
	escaped := EscapeMarkdownV2(special)
	for _, r := range special {
		assert.Contains(t, escaped, `\`+string(r))
	}
	assert.Len(t, escaped, 2*len(special))

	assert.Equal(t, `jane\_doe`, EscapeMarkdownV2("jane_doe"))
	assert.Equal(t, `https://example\.com/skin\.zip`, EscapeMarkdownV2("https://example.com/skin.zip"))
	assert.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
	assert.Equal(t, `a\b`, EscapeMarkdownV2(`a\b`))
}

func TestEscapeMarkdownV2_Twice(t *testing.T) {
	once := EscapeMarkdownV2("a.b")
	twice := EscapeMarkdownV2(once)
	assert.Equal(t, `a\.b`, once)
	assert.Equal(t, `a\\.b`, twice)
}
