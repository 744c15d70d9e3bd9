package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// ParseModeMarkdownV2 - режим разметки исходящих сообщений.
const ParseModeMarkdownV2 = tgbotapi.ModeMarkdownV2

// EscapeMarkdownV2 экранирует обратной косой чертой каждый символ из набора
// _*[]()~`>#+=|{}.!- , чтобы пользовательский текст не трактовался как разметка.
// Сама обратная косая черта не экранируется, поэтому повторный вызов
// добавляет еще один слеш перед каждым спецсимволом.
func EscapeMarkdownV2(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, text)
}
