// Package domain содержит модели заявки на публикацию скина и правила их проверки.
package domain

import "io"

// Submission представляет одну заявку пользователя на публикацию скина.
// Заявка живет в пределах одного запроса и нигде не сохраняется.
type Submission struct {
	Name     string
	Email    string
	Telegram string // без ведущего '@'
	Link     string
	File     *Attachment
}

// Attachment описывает приложенный к заявке архив.
type Attachment struct {
	Name    string
	Size    int64
	Content io.Reader
}

// HasLink сообщает, указана ли ссылка на скачивание.
func (s *Submission) HasLink() bool {
	return s.Link != ""
}

// HasFile сообщает, приложен ли непустой файл.
func (s *Submission) HasFile() bool {
	return s.File != nil && s.File.Size > 0
}
