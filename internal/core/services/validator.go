package services

import (
	"strings"

	"skin-relay/internal/domain"
)

// Сообщения серверной проверки. Возвращаются клиенту через запятую.
const (
	MsgNameRequired      = "Name is required"
	MsgNameLength        = "Name must be 2-50 characters"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Invalid email address"
	MsgTelegramRequired  = "Telegram username is required"
	MsgTelegramInvalid   = "Invalid Telegram username"
	MsgLinkOrFile        = "Please provide a download link or upload a file"
	MsgLinkInvalid       = "Invalid download link URL"
	MsgFileTooLarge      = "File size must be less than 20MB"
	MsgFileTypeForbidden = "Invalid file type. Allowed: .zip, .rar, .7z"
)

// ValidateSubmission проверяет все поля заявки и возвращает полный список нарушений
// в порядке: имя, email, Telegram, ссылка или файл. Пустой список означает успех.
func ValidateSubmission(s *domain.Submission) []string {
	var violations []string

	switch n := domain.NameLength(s.Name); {
	case s.Name == "":
		violations = append(violations, MsgNameRequired)
	case n < domain.MinNameLength || n > domain.MaxNameLength:
		violations = append(violations, MsgNameLength)
	}

	switch {
	case s.Email == "":
		violations = append(violations, MsgEmailRequired)
	case !domain.IsValidEmail(s.Email):
		violations = append(violations, MsgEmailInvalid)
	}

	switch {
	case s.Telegram == "":
		violations = append(violations, MsgTelegramRequired)
	case !domain.IsValidTelegramHandle(s.Telegram):
		violations = append(violations, MsgTelegramInvalid)
	}

	// Ссылка и файл не исключают друг друга: требуется хотя бы одно из двух.
	if !s.HasFile() && !s.HasLink() {
		violations = append(violations, MsgLinkOrFile)
	}

	if s.HasLink() && !domain.IsValidLink(s.Link) {
		violations = append(violations, MsgLinkInvalid)
	}

	if s.HasFile() {
		if !domain.IsAllowedSize(s.File.Size) {
			violations = append(violations, MsgFileTooLarge)
		}
		if !domain.HasAllowedExtension(s.File.Name) {
			violations = append(violations, MsgFileTypeForbidden)
		}
	}

	return violations
}

// JoinViolations склеивает нарушения в одну строку ответа.
func JoinViolations(violations []string) string {
	return strings.Join(violations, ", ")
}
