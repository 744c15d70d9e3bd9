// Package server предоставляет HTTP API приема заявок и данных сообщества.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skin-relay/internal/pkg/config"
)

// Server представляет HTTP-сервер
type Server struct {
	HTTPServer *http.Server
	cfg        *config.Config
	processor  SubmissionProcessor
	community  CommunityProvider
	metrics    *Metrics
	logger     *slog.Logger
}

// New создает новый экземпляр Server
func New(cfg *config.Config, processor SubmissionProcessor, community CommunityProvider, metrics *Metrics, logger *slog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		processor: processor,
		community: community,
		metrics:   metrics,
		logger:    logger,
	}

	chiRouter := chi.NewRouter()

	// Промежуточное ПО
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(requestLogger(logger))
	chiRouter.Use(recoverer(logger))

	chiRouter.Get("/health", s.handleHealth)
	chiRouter.Method(http.MethodGet, "/metrics", metrics.Handler(logger))

	// Маршруты API
	chiRouter.Route("/api", func(r chi.Router) {
		r.Post("/submit-skin", s.handleSubmitSkin)
		r.Get("/skins", s.handleSkins)
		r.Get("/stats", s.handleStats)
	})

	s.HTTPServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      chiRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", slog.String("addr", s.HTTPServer.Addr))
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.HTTPServer.Shutdown(ctx)
}
