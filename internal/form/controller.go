// Package form реализует состояние формы отправки скина: режимы ссылки и файла,
// ошибки по полям, статус отправки и единственный запрос к серверу.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"skin-relay/internal/domain"
)

// Mode - способ передачи скина.
type Mode string

const (
	ModeLink Mode = "link"
	ModeFile Mode = "file"
)

// Status - состояние отправки формы.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Ключи карты ошибок.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldTelegram = "telegram"
	FieldLink     = "skinLink"
	FieldFile     = "file"
)

// Сообщения клиентской проверки.
const (
	MsgNameRequired     = "Name is required"
	MsgNameTooShort     = "Name must be at least 2 characters"
	MsgNameTooLong      = "Name must be less than 50 characters"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please enter a valid email"
	MsgEmailTooLong     = "Email must be less than 100 characters"
	MsgTelegramRequired = "Telegram username is required"
	MsgTelegramTooShort = "Telegram username must be at least 5 characters"
	MsgTelegramTooLong  = "Telegram username must be less than 32 characters"
	MsgTelegramFormat   = "Invalid Telegram username format"
	MsgLinkRequired     = "Download link is required"
	MsgLinkScheme       = "Link must start with http:// or https://"
	MsgLinkInvalid      = "Please enter a valid URL"
	MsgFileRequired     = "Please select a file to upload"
	MsgFileTooLarge     = "File size must be less than 20MB"
	MsgFileType         = "File type not allowed. Use .zip, .rar, .7z"

	MsgSubmitFailed = "Failed to submit. Please try again."
)

var (
	// ErrInvalidForm - локальная проверка не пройдена, запрос не отправлялся.
	ErrInvalidForm = errors.New("form has invalid fields")
	// ErrSubmitInProgress - предыдущая отправка еще не завершилась.
	ErrSubmitInProgress = errors.New("submission already in progress")
)

// Payload - данные одного запроса к серверу. Поля передаются как введены,
// окончательную нормализацию выполняет сервер.
type Payload struct {
	Name     string
	Email    string
	Telegram string
	Link     string
	File     *domain.Attachment
}

// Submitter отправляет заявку на сервер.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}

// Controller хранит состояние формы. Безопасен для конкурентного использования.
type Controller struct {
	mu sync.Mutex

	name     string
	email    string
	telegram string
	link     string
	file     *domain.Attachment

	mode         Mode
	errors       map[string]string
	status       Status
	errorMessage string

	submitter Submitter
}

// NewController создает форму в режиме ссылки со статусом idle.
func NewController(submitter Submitter) *Controller {
	return &Controller{
		mode:      ModeLink,
		errors:    make(map[string]string),
		status:    StatusIdle,
		submitter: submitter,
	}
}

func (c *Controller) SetName(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = v
}

func (c *Controller) SetEmail(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.email = v
}

func (c *Controller) SetTelegram(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.telegram = v
}

func (c *Controller) SetLink(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.link = v
}

// SetMode переключает способ передачи. Сбрасывается только ошибка поля
// другого режима, ошибки общих полей сохраняются.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = m
	switch m {
	case ModeLink:
		delete(c.errors, FieldFile)
	case ModeFile:
		delete(c.errors, FieldLink)
	}
}

// SelectFile выбирает файл и снимает ошибку поля файла.
func (c *Controller) SelectFile(f *domain.Attachment) {
	if f == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.file = f
	delete(c.errors, FieldFile)
}

// RemoveFile отменяет выбор файла.
func (c *Controller) RemoveFile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file = nil
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ErrorMessage возвращает текст ошибки для статуса error.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

// Errors возвращает копию карты ошибок по полям.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Validate проверяет все поля текущего режима и заполняет карту ошибок.
func (c *Controller) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() bool {
	errs := make(map[string]string)

	if msg := nameError(strings.TrimSpace(c.name)); msg != "" {
		errs[FieldName] = msg
	}
	if msg := emailError(strings.TrimSpace(c.email)); msg != "" {
		errs[FieldEmail] = msg
	}
	if msg := telegramError(domain.NormalizeTelegram(c.telegram)); msg != "" {
		errs[FieldTelegram] = msg
	}

	switch c.mode {
	case ModeLink:
		if msg := linkError(strings.TrimSpace(c.link)); msg != "" {
			errs[FieldLink] = msg
		}
	case ModeFile:
		if msg := fileError(c.file); msg != "" {
			errs[FieldFile] = msg
		}
	}

	c.errors = errs
	return len(errs) == 0
}

func nameError(name string) string {
	switch n := domain.NameLength(name); {
	case name == "":
		return MsgNameRequired
	case n < domain.MinNameLength:
		return MsgNameTooShort
	case n > domain.MaxNameLength:
		return MsgNameTooLong
	}
	return ""
}

func emailError(email string) string {
	switch {
	case email == "":
		return MsgEmailRequired
	case !domain.EmailPatternMatches(email):
		return MsgEmailInvalid
	case !domain.IsValidEmail(email):
		return MsgEmailTooLong
	}
	return ""
}

func telegramError(username string) string {
	switch {
	case username == "":
		return MsgTelegramRequired
	case len(username) < domain.MinTelegramLength:
		return MsgTelegramTooShort
	case len(username) > domain.MaxTelegramLength:
		return MsgTelegramTooLong
	case !domain.TelegramPatternMatches(username):
		return MsgTelegramFormat
	}
	return ""
}

func linkError(link string) string {
	if link == "" {
		return MsgLinkRequired
	}
	_, err := domain.ParseLink(link)
	switch {
	case errors.Is(err, domain.ErrLinkScheme):
		return MsgLinkScheme
	case err != nil:
		return MsgLinkInvalid
	}
	return ""
}

// fileError: ошибка типа важнее ошибки размера.
func fileError(f *domain.Attachment) string {
	switch {
	case f == nil:
		return MsgFileRequired
	case !domain.HasAllowedExtension(f.Name):
		return MsgFileType
	case !domain.IsAllowedSize(f.Size):
		return MsgFileTooLarge
	}
	return ""
}

// Submit проверяет форму и отправляет один запрос. Пока запрос выполняется,
// повторный вызов возвращает ErrSubmitInProgress.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusLoading {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	if !c.validateLocked() {
		c.mu.Unlock()
		return ErrInvalidForm
	}

	c.status = StatusLoading
	c.errorMessage = ""
	payload := Payload{
		Name:     c.name,
		Email:    c.email,
		Telegram: c.telegram,
	}
	if c.mode == ModeLink {
		payload.Link = c.link
	} else {
		payload.File = c.file
	}
	c.mu.Unlock()

	err := c.submitter.Submit(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.status = StatusError
		c.errorMessage = MsgSubmitFailed
		return fmt.Errorf("failed to submit skin: %w", err)
	}
	c.status = StatusSuccess
	return nil
}

// Reset возвращает форму к пустому состоянию idle ("отправить еще").
// Выбранный режим сохраняется.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.name = ""
	c.email = ""
	c.telegram = ""
	c.link = ""
	c.file = nil
	c.errors = make(map[string]string)
	c.status = StatusIdle
	c.errorMessage = ""
}
