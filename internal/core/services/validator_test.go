package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"skin-relay/internal/domain"
)

func validSubmission() *domain.Submission {
	return &domain.Submission{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Telegram: "jane_doe",
		Link:     "https://example.com/skin.zip",
	}
}

func archive(name string, size int64) *domain.Attachment {
	return &domain.Attachment{Name: name, Size: size, Content: strings.NewReader("x")}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *domain.Submission)
		want   []string
	}{
		{
			name:   "valid with link",
			modify: func(s *domain.Submission) {},
			want:   nil,
		},
		{
			name: "valid with file only",
			modify: func(s *domain.Submission) {
				s.Link = ""
				s.File = archive("SKIN.ZIP", 100)
			},
			want: nil,
		},
		{
			name: "link and file together are accepted",
			modify: func(s *domain.Submission) {
				s.File = archive("skin.7z", 100)
			},
			want: nil,
		},
		{
			name: "neither link nor file",
			modify: func(s *domain.Submission) {
				s.Link = ""
			},
			want: []string{MsgLinkOrFile},
		},
		{
			name: "empty file counts as absent",
			modify: func(s *domain.Submission) {
				s.Link = ""
				s.File = archive("skin.zip", 0)
			},
			want: []string{MsgLinkOrFile},
		},
		{
			name: "missing name and bad email",
			modify: func(s *domain.Submission) {
				s.Name = ""
				s.Email = "bad"
			},
			want: []string{MsgNameRequired, MsgEmailInvalid},
		},
		{
			name: "short name",
			modify: func(s *domain.Submission) {
				s.Name = "J"
			},
			want: []string{MsgNameLength},
		},
		{
			name: "long name",
			modify: func(s *domain.Submission) {
				s.Name = strings.Repeat("n", 51)
			},
			want: []string{MsgNameLength},
		},
		{
			name: "telegram starting with digit",
			modify: func(s *domain.Submission) {
				s.Telegram = "9alice"
			},
			want: []string{MsgTelegramInvalid},
		},
		{
			name: "telegram keeps a second at sign after normalisation",
			modify: func(s *domain.Submission) {
				s.Telegram = domain.NormalizeTelegram("@@jane_doe")
			},
			want: []string{MsgTelegramInvalid},
		},
		{
			name: "all required fields missing",
			modify: func(s *domain.Submission) {
				*s = domain.Submission{}
			},
			want: []string{MsgNameRequired, MsgEmailRequired, MsgTelegramRequired, MsgLinkOrFile},
		},
		{
			name: "non http link",
			modify: func(s *domain.Submission) {
				s.Link = "ftp://example.com/skin.zip"
			},
			want: []string{MsgLinkInvalid},
		},
		{
			name: "file exactly at the limit",
			modify: func(s *domain.Submission) {
				s.File = archive("skin.rar", domain.MaxFileSize)
			},
			want: nil,
		},
		{
			name: "file one byte over the limit with wrong type",
			modify: func(s *domain.Submission) {
				s.File = archive("skin.exe", domain.MaxFileSize+1)
			},
			want: []string{MsgFileTooLarge, MsgFileTypeForbidden},
		},
		{
			name: "image files are not archives",
			modify: func(s *domain.Submission) {
				s.File = archive("preview.png", 10)
			},
			want: []string{MsgFileTypeForbidden},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.modify(s)
			assert.Equal(t, tt.want, ValidateSubmission(s))
		})
	}
}

func TestJoinViolations(t *testing.T) {
	assert.Equal(t, "a, b", JoinViolations([]string{"a", "b"}))
	assert.Equal(t, "", JoinViolations(nil))
}
