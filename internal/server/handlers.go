package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"skin-relay/internal/core/services"
	"skin-relay/internal/domain"
)

// SubmissionProcessor проверяет и пересылает заявку.
type SubmissionProcessor interface {
	Process(ctx context.Context, sub *domain.Submission) services.Result
}

// CommunityProvider отдает публичные данные сообщества.
type CommunityProvider interface {
	Skins(ctx context.Context, query string) ([]domain.Skin, error)
	Stats(ctx context.Context) (stats []domain.RepoStats, degraded bool)
}

type statsResponse struct {
	Repositories []domain.RepoStats `json:"repositories"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubmitSkin(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	submissionID := uuid.NewString()
	logger := s.logger.With(
		slog.String("submission_id", submissionID),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.ContentLength > maxBodySize {
		logger.Warn("submission body too large", slog.Int64("content_length", r.ContentLength))
		s.metrics.observeSubmission(services.OutcomeInvalid.String(), started)
		writeError(w, http.StatusBadRequest, services.MsgFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	sub, cleanup, err := parseSubmission(r)
	defer cleanup()
	if err != nil {
		logger.Warn("failed to parse submission", slog.String("error", err.Error()))
		s.metrics.observeSubmission(services.OutcomeInvalid.String(), started)
		if errors.Is(err, errBodyTooLarge) {
			writeError(w, http.StatusBadRequest, services.MsgFileTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, MsgInvalidForm)
		return
	}

	res := s.processor.Process(r.Context(), sub)
	s.metrics.observeSubmission(res.Outcome.String(), started)

	attrs := []any{
		slog.String("outcome", res.Outcome.String()),
		slog.Bool("has_file", sub.HasFile()),
		slog.Bool("has_link", sub.HasLink()),
		slog.Duration("duration", time.Since(started)),
	}
	if res.Failed() {
		attrs = append(attrs, slog.String("error", res.Err.Error()))
		logger.Warn("submission rejected", attrs...)
	} else {
		logger.Info("submission relayed", attrs...)
	}

	writeResult(w, res)
}

func (s *Server) handleSkins(w http.ResponseWriter, r *http.Request) {
	skins, err := s.community.Skins(r.Context(), r.URL.Query().Get("q"))
	s.metrics.observeCommunity("skins", err)
	if err != nil {
		s.logger.Error("failed to fetch skins",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, MsgSkinsFetchFailed)
		return
	}
	if skins == nil {
		skins = []domain.Skin{}
	}
	writeJSON(w, http.StatusOK, skins)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, degraded := s.community.Stats(r.Context())
	s.metrics.observeStats(degraded)
	writeJSON(w, http.StatusOK, statsResponse{Repositories: stats})
}
