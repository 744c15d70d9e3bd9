package domain

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ограничения полей заявки.
const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MaxEmailLength    = 100
	MinTelegramLength = 5
	MaxTelegramLength = 32

	// MaxFileSize - максимальный размер архива (20 MiB включительно).
	MaxFileSize int64 = 20 * 1024 * 1024
)

// AllowedExtensions - допустимые расширения архивов. Один набор для клиента и сервера.
var AllowedExtensions = []string{".zip", ".rar", ".7z"}

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telegramRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// NormalizeTelegram обрезает пробелы и убирает один ведущий '@'.
func NormalizeTelegram(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "@")
}

// NameLength возвращает длину имени в символах.
func NameLength(name string) int {
	return utf8.RuneCountInString(name)
}

// IsValidEmail проверяет форму local@domain.tld и ограничение длины.
func IsValidEmail(email string) bool {
	return utf8.RuneCountInString(email) <= MaxEmailLength && emailRegex.MatchString(email)
}

// EmailPatternMatches проверяет только форму адреса без учета длины.
func EmailPatternMatches(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidTelegram проверяет введенное имя пользователя Telegram: один ведущий '@'
// допускается и отбрасывается.
func IsValidTelegram(username string) bool {
	return IsValidTelegramHandle(strings.TrimPrefix(username, "@"))
}

// IsValidTelegramHandle проверяет уже нормализованное имя (без '@'): длина и формат.
// Оставшийся '@' делает имя недопустимым.
func IsValidTelegramHandle(handle string) bool {
	return len(handle) >= MinTelegramLength &&
		len(handle) <= MaxTelegramLength &&
		telegramRegex.MatchString(handle)
}

// TelegramPatternMatches проверяет только формат имени без учета длины.
func TelegramPatternMatches(username string) bool {
	return telegramRegex.MatchString(username)
}

// ParseLink разбирает абсолютный URL. Возвращает ErrMalformedLink, если строка
// не является абсолютным URL, и ErrLinkScheme, если схема не http/https.
func ParseLink(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || !u.IsAbs() {
		return nil, ErrMalformedLink
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, ErrLinkScheme
	}
	if u.Host == "" {
		return nil, ErrMalformedLink
	}
	return u, nil
}

// IsValidLink сообщает, является ли строка корректной http(s) ссылкой.
func IsValidLink(raw string) bool {
	_, err := ParseLink(raw)
	return err == nil
}

// HasAllowedExtension проверяет расширение файла без учета регистра.
func HasAllowedExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// IsAllowedSize проверяет, что размер файла не превышает MaxFileSize.
func IsAllowedSize(size int64) bool {
	return size <= MaxFileSize
}
