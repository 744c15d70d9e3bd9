package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"skin-relay/internal/domain"
)

// Поля multipart-формы заявки.
const (
	fieldName     = "name"
	fieldEmail    = "email"
	fieldTelegram = "telegram"
	fieldLink     = "skinLink"
	fieldFile     = "skinFile"
)

const (
	// maxBodySize - архив плюс запас на текстовые поля.
	maxBodySize = domain.MaxFileSize + 1<<20
	// maxFormMemory - часть формы, которая держится в памяти, остальное уходит во временные файлы.
	maxFormMemory = 8 << 20
)

var (
	errNotMultipart = errors.New("request is not multipart form data")
	errBodyTooLarge = errors.New("request body too large")
)

// parseSubmission строит заявку из multipart-формы. Текстовые поля обрезаются,
// у Telegram убирается ведущий '@'. Пустая часть skinFile считается отсутствующей.
// Возвращаемая функция закрывает файл и удаляет временные данные формы.
func parseSubmission(r *http.Request) (*domain.Submission, func(), error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, func() {}, fmt.Errorf("%w: %w", errBodyTooLarge, err)
		}
		return nil, func() {}, fmt.Errorf("%w: %w", errNotMultipart, err)
	}

	cleanup := func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}

	sub := &domain.Submission{
		Name:     strings.TrimSpace(r.FormValue(fieldName)),
		Email:    strings.TrimSpace(r.FormValue(fieldEmail)),
		Telegram: domain.NormalizeTelegram(r.FormValue(fieldTelegram)),
		Link:     strings.TrimSpace(r.FormValue(fieldLink)),
	}

	file, header, err := r.FormFile(fieldFile)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return sub, cleanup, nil
	case err != nil:
		return nil, cleanup, fmt.Errorf("failed to read %s: %w", fieldFile, err)
	}

	if header.Size == 0 {
		file.Close()
		return sub, cleanup, nil
	}

	sub.File = &domain.Attachment{
		Name:    header.Filename,
		Size:    header.Size,
		Content: file,
	}
	return sub, func() {
		closeQuietly(file)
		cleanup()
	}, nil
}

func closeQuietly(f multipart.File) {
	_ = f.Close()
}
