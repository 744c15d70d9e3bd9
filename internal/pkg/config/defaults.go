package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultConfigFile      = "config.yml"

	// Telegram defaults
	DefaultTelegramAPIBaseURL     = "https://api.telegram.org"
	DefaultTelegramRequestTimeout = 30 * time.Second

	// Community defaults
	DefaultSkinsURL                = "https://raw.githubusercontent.com/pass-with-high-score/Aneko-skin/refs/heads/main/skin.json"
	DefaultGitHubAPIURL            = "https://api.github.com"
	DefaultCommunityCacheTTL       = 10 * time.Minute
	DefaultCommunityRequestTimeout = 10 * time.Second
	DefaultCleanupInterval         = 1 * time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultRepositories - репозитории, счетчики которых показываются на главной странице.
func DefaultRepositories() []Repository {
	return []Repository{
		{Name: "pass-with-high-score/ANeko", DefaultLanguage: "Kotlin"},
		{Name: "pass-with-high-score/Aneko-skin"},
		{Name: "pass-with-high-score/aneko-landing-page", DefaultLanguage: "TypeScript"},
	}
}
