package services

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"skin-relay/internal/ports"
)

// mockMessenger - мок-реализация ports.Messenger.
type mockMessenger struct {
	mock.Mock
}

func (m *mockMessenger) SendMessage(ctx context.Context, msg ports.TextMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessenger) SendDocument(ctx context.Context, doc ports.Document) error {
	// Вычитываем содержимое, как это сделал бы настоящий клиент.
	if doc.Content != nil {
		_, _ = io.Copy(io.Discard, doc.Content)
	}
	args := m.Called(ctx, doc)
	return args.Error(0)
}
