package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTelegram(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"@ab", false},
		{"alice_99", true},
		{"@alice_99", true},
		{"9alice", false},
		{"_alice", false},
		{"alice", true},
		{"alic", false},
		{"a" + strings.Repeat("b", 31), true},
		{"a" + strings.Repeat("b", 32), false},
		{"alice-99", false},
		{"@@alice", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTelegram(tt.input))
		})
	}
}

func TestIsValidTelegramHandle(t *testing.T) {
	assert.True(t, IsValidTelegramHandle("jane_doe"))
	assert.False(t, IsValidTelegramHandle("@jane_doe"))
	// после нормализации второй '@' остается и отклоняется
	assert.False(t, IsValidTelegramHandle(NormalizeTelegram("@@jane_doe")))
	assert.True(t, IsValidTelegramHandle(NormalizeTelegram(" @jane_doe ")))
}

func TestNormalizeTelegram(t *testing.T) {
	assert.Equal(t, "jane_doe", NormalizeTelegram("  @jane_doe "))
	assert.Equal(t, "jane_doe", NormalizeTelegram("jane_doe"))
	assert.Equal(t, "@jane", NormalizeTelegram("@@jane"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("a b@c.com"))
	assert.False(t, IsValidEmail("a@b"))
	assert.False(t, IsValidEmail("a@@b.com"))

	local := strings.Repeat("x", MaxEmailLength-len("@b.io"))
	assert.True(t, IsValidEmail(local+"@b.io"))
	assert.False(t, IsValidEmail("x"+local+"@b.io"))
}

func TestParseLink(t *testing.T) {
	u, err := ParseLink("https://example.com/skin.zip")
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)

	_, err = ParseLink("HTTP://example.com")
	assert.NoError(t, err)

	_, err = ParseLink("ftp://example.com/skin.zip")
	assert.ErrorIs(t, err, ErrLinkScheme)

	_, err = ParseLink("example.com/skin.zip")
	assert.ErrorIs(t, err, ErrMalformedLink)

	_, err = ParseLink("https://")
	assert.ErrorIs(t, err, ErrMalformedLink)

	assert.False(t, IsValidLink("javascript:alert(1)"))
}

func TestHasAllowedExtension(t *testing.T) {
	assert.True(t, HasAllowedExtension("SKIN.ZIP"))
	assert.True(t, HasAllowedExtension("cat.rar"))
	assert.True(t, HasAllowedExtension("cat.7z"))
	assert.False(t, HasAllowedExtension("skin.exe"))
	assert.False(t, HasAllowedExtension("skin.png"))
	assert.False(t, HasAllowedExtension("zip"))
}

func TestIsAllowedSize(t *testing.T) {
	assert.True(t, IsAllowedSize(20*1024*1024))
	assert.False(t, IsAllowedSize(20*1024*1024+1))
}

func TestSubmission_HasFile(t *testing.T) {
	s := Submission{}
	assert.False(t, s.HasFile())
	s.File = &Attachment{Name: "a.zip"}
	assert.False(t, s.HasFile())
	s.File.Size = 1
	assert.True(t, s.HasFile())
}

func TestEmailPatternMatches(t *testing.T) {
	long := strings.Repeat("a", 120) + "@example.com"
	assert.True(t, EmailPatternMatches(long))
	assert.False(t, IsValidEmail(long))
	assert.False(t, EmailPatternMatches("jane@example"))
}
