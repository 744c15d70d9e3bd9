package log

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "8462697481:AAEJSXuTcb2F1Js2sWiK0TVWvxbHL9xX05Q"

func newTestLogger(buf *bytes.Buffer, secrets ...string) *slog.Logger {
	return slog.New(NewSecretMaskerHandler(slog.NewJSONHandler(buf, nil), secrets...))
}

func TestSecretMaskerHandler_Message(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "token inside bot api url",
			input:    `Post "https://api.telegram.org/bot` + testToken + `/sendMessage": context deadline exceeded`,
			expected: `https://api.telegram.org/bot***masked-token***/sendMessage`,
		},
		{
			name:     "plain message",
			input:    "submission relayed",
			expected: "submission relayed",
		},
		{
			name:     "two tokens",
			input:    "old " + testToken + " new 123456789:AAABCdEfGhIjKlMnOpQrStUvWxYz1234567",
			expected: "old ***masked-token*** new ***masked-token***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			newTestLogger(&buf).Info(tt.input)

			assert.Contains(t, buf.String(), tt.expected)
			assert.NotContains(t, buf.String(), testToken)
		})
	}
}

func TestSecretMaskerHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf).With(slog.String("token", testToken))

	logger.Info("relay failed",
		slog.Any("error", fmt.Errorf("send: %w", errors.New("bot"+testToken+" unreachable"))),
		slog.Group("upstream", slog.String("url", "https://api.telegram.org/bot"+testToken+"/sendDocument")),
	)

	out := buf.String()
	assert.NotContains(t, out, testToken)
	assert.Contains(t, out, maskedToken)
	assert.Contains(t, out, `"upstream"`)
}

func TestSecretMaskerHandler_ExplicitSecrets(t *testing.T) {
	var buf bytes.Buffer
	// короткий токен не совпадает с шаблоном, но передан явно
	logger := newTestLogger(&buf, "short-secret", "")

	logger.Info("config loaded", slog.String("bot_token", "short-secret"))

	assert.NotContains(t, buf.String(), "short-secret")
	assert.Contains(t, buf.String(), maskedToken)
}

func TestSecretMaskerHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf).WithGroup("telegram")

	logger.Warn("response", slog.String("body", testToken))

	out := buf.String()
	assert.Contains(t, out, `"telegram":{"body":"***masked-token***"}`)
}

func TestNewLogger(t *testing.T) {
	t.Run("json with level filter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "warn", "json")

		logger.Info("hidden")
		logger.Warn("visible", slog.String("url", "/bot"+testToken+"/x"))

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"msg":"visible"`)
		assert.NotContains(t, out, testToken)
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, "debug", "text").Debug("hello")
		require.NotEmpty(t, buf.String())
		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
