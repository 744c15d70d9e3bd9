package services

import (
	"strings"

	"skin-relay/internal/domain"
	"skin-relay/internal/telegram"
)

const submissionHeader = "🎨 *New Skin Submission*\n\n"

// writeContacts добавляет экранированные контактные поля заявки.
func writeContacts(b *strings.Builder, s *domain.Submission) {
	b.WriteString(submissionHeader)
	b.WriteString("👤 *Name:* " + telegram.EscapeMarkdownV2(s.Name) + "\n")
	b.WriteString("📧 *Email:* " + telegram.EscapeMarkdownV2(s.Email) + "\n")
	b.WriteString("💬 *Telegram:* @" + telegram.EscapeMarkdownV2(s.Telegram) + "\n")
}

// ComposeCaption собирает подпись к документу.
func ComposeCaption(s *domain.Submission) string {
	var b strings.Builder
	writeContacts(&b, s)
	b.WriteString("📁 *File:* " + telegram.EscapeMarkdownV2(s.File.Name))
	return b.String()
}

// ComposeText собирает текстовое сообщение со ссылкой.
func ComposeText(s *domain.Submission) string {
	var b strings.Builder
	writeContacts(&b, s)
	if s.HasLink() {
		b.WriteString("🔗 *Download Link:* " + telegram.EscapeMarkdownV2(s.Link))
	} else {
		b.WriteString("❌ No file or link provided")
	}
	return b.String()
}
