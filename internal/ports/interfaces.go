package ports

import (
	"context"
	"io"

	"skin-relay/internal/domain"
)

// TextMessage - исходящее текстовое сообщение для бота.
type TextMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

// Document - исходящий файл с подписью для бота.
type Document struct {
	ChatID    string
	FileName  string
	Content   io.Reader
	Caption   string
	ParseMode string
}

// Messenger определяет интерфейс отправки заявок во внешний мессенджер.
type Messenger interface {
	// SendMessage отправляет текстовое сообщение.
	SendMessage(ctx context.Context, msg TextMessage) error
	// SendDocument отправляет файл с подписью.
	SendDocument(ctx context.Context, doc Document) error
}

// CommunitySource определяет интерфейс получения публичных данных сообщества.
type CommunitySource interface {
	FetchSkins(ctx context.Context) ([]domain.Skin, error)
	FetchRepoStats(ctx context.Context, repo string) (domain.RepoStats, error)
}

// Exporter выводит данные сообщества пользователю.
type Exporter interface {
	ExportSkins(skins []domain.Skin) error
	ExportStats(stats []domain.RepoStats) error
}
