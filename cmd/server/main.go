package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"skin-relay/internal/community"
	"skin-relay/internal/core/services"
	applog "skin-relay/internal/log"
	"skin-relay/internal/pkg/config"
	"skin-relay/internal/server"
	"skin-relay/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		// Логгер еще не инициализирован, выводим в stderr
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализация логгера с маскировкой токена
	logger := applog.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format, cfg.Telegram.BotToken)
	slog.SetDefault(logger)

	// 3. Валидация конфигурации (после инициализации логгера)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	relayCfg := services.RelayConfig{BotToken: cfg.Telegram.BotToken, ChatID: cfg.Telegram.ChatID}
	if !relayCfg.Configured() {
		logger.Warn("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set, submissions will be rejected")
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// 4. Инициализация зависимостей
	bot := telegram.NewBotClient(cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, cfg.Telegram.RequestTimeout, logger)
	relay := services.NewRelayService(relayCfg, bot, logger)

	repos := make([]community.Repository, 0, len(cfg.Community.Repositories))
	for _, r := range cfg.Community.Repositories {
		repos = append(repos, community.Repository{Name: r.Name, DefaultLanguage: r.DefaultLanguage})
	}
	source := community.NewHTTPSource(cfg.Community.SkinsURL, cfg.Community.GitHubAPIURL, cfg.Community.RequestTimeout)
	communitySvc := community.NewService(source, repos, cfg.Community.CacheTTL, logger)
	communitySvc.StartCleanup(appCtx, cfg.Community.CleanupInterval)

	// 5. Создание HTTP-сервера
	srv := server.New(cfg, relay, communitySvc, server.NewMetrics(), logger)

	// 6. Запуск сервера и graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
		logger.Info("Signal received, shutting down...")
	}

	// Сначала останавливаем фоновую очистку кэшей
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}

	<-serverErr
	logger.Info("Application exited gracefully")
	return nil
}
