// Package config предоставляет управление конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Server содержит конфигурацию HTTP-сервера
type Server struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Telegram содержит параметры пересылки заявок боту.
// Токен и чат намеренно не проверяются в Validate: без них сервер работает,
// но каждая заявка получает ответ "Server configuration error".
type Telegram struct {
	BotToken       string        `yaml:"bot_token"`
	ChatID         string        `yaml:"chat_id"`
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Repository описывает репозиторий для счетчиков
type Repository struct {
	Name            string `yaml:"name"`
	DefaultLanguage string `yaml:"default_language"`
}

// Community содержит источники публичных данных сообщества
type Community struct {
	SkinsURL        string        `yaml:"skins_url"`
	GitHubAPIURL    string        `yaml:"github_api_url"`
	Repositories    []Repository  `yaml:"repositories"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Config содержит конфигурацию приложения
type Config struct {
	Server    Server    `yaml:"server"`
	Telegram  Telegram  `yaml:"telegram"`
	Community Community `yaml:"community"`
	Logging   Logging   `yaml:"logging"`
}

// defaultConfig возвращает конфигурацию со значениями по умолчанию
func defaultConfig() *Config {
	return &Config{
		Server: Server{
			Host:            DefaultServerHost,
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Telegram: Telegram{
			APIBaseURL:     DefaultTelegramAPIBaseURL,
			RequestTimeout: DefaultTelegramRequestTimeout,
		},
		Community: Community{
			SkinsURL:        DefaultSkinsURL,
			GitHubAPIURL:    DefaultGitHubAPIURL,
			Repositories:    DefaultRepositories(),
			CacheTTL:        DefaultCommunityCacheTTL,
			RequestTimeout:  DefaultCommunityRequestTimeout,
			CleanupInterval: DefaultCleanupInterval,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadConfig загружает конфигурацию: .env, затем YAML-файл поверх значений
// по умолчанию, затем переменные окружения.
func LoadConfig() (*Config, error) {
	// Отсутствие .env - нормальная ситуация
	_ = godotenv.Load()

	return LoadConfigFrom(getEnv("CONFIG_FILE", DefaultConfigFile))
}

// LoadConfigFrom загружает конфигурацию из указанного YAML-файла и окружения.
// Отсутствующий файл не является ошибкой.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := defaultConfig()

	if err := loadFromYAML(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	return cfg, nil
}

// loadFromYAML накладывает значения из YAML-файла на cfg
func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// applyEnv переопределяет значения переменными окружения
func applyEnv(cfg *Config) error {
	cfg.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.ChatID = getEnv("TELEGRAM_CHAT_ID", cfg.Telegram.ChatID)
	cfg.Telegram.APIBaseURL = getEnv("TELEGRAM_API_BASE_URL", cfg.Telegram.APIBaseURL)
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Community.SkinsURL = getEnv("SKINS_URL", cfg.Community.SkinsURL)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number (1-65535)")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.read_timeout and server.write_timeout must be positive")
	}

	if _, err := url.ParseRequestURI(c.Telegram.APIBaseURL); err != nil {
		return fmt.Errorf("telegram.api_base_url is invalid: %w", err)
	}
	if c.Telegram.RequestTimeout <= 0 {
		return fmt.Errorf("telegram.request_timeout must be positive")
	}

	if _, err := url.ParseRequestURI(c.Community.SkinsURL); err != nil {
		return fmt.Errorf("community.skins_url is invalid: %w", err)
	}
	if c.Community.CacheTTL <= 0 {
		return fmt.Errorf("community.cache_ttl must be positive")
	}
	if c.Community.RequestTimeout <= 0 {
		return fmt.Errorf("community.request_timeout must be positive")
	}
	if c.Community.CleanupInterval <= 0 {
		return fmt.Errorf("community.cleanup_interval must be positive")
	}
	for i, r := range c.Community.Repositories {
		if r.Name == "" {
			return fmt.Errorf("community.repositories[%d].name cannot be empty", i)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
