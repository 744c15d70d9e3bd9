package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"skin-relay/internal/core/services"
)

// Ответы клиенту. Подробности ошибок остаются в логах сервера.
const (
	MsgInvalidForm      = "Invalid form data"
	MsgServerConfig     = "Server configuration error"
	MsgTelegramFailed   = "Failed to send to Telegram"
	MsgInternalError    = "Internal server error"
	MsgSkinsFetchFailed = "Failed to fetch skins"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeResult переводит результат обработки заявки в HTTP-ответ.
// Любой исход, не перечисленный явно, становится общей ошибкой 500.
func writeResult(w http.ResponseWriter, res services.Result) {
	switch res.Outcome {
	case services.OutcomeSent:
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	case services.OutcomeInvalid:
		writeError(w, http.StatusBadRequest, services.JoinViolations(res.Violations))
	case services.OutcomeMisconfigured:
		writeError(w, http.StatusInternalServerError, MsgServerConfig)
	case services.OutcomeUpstreamFailed:
		writeError(w, http.StatusInternalServerError, MsgTelegramFailed)
	default:
		writeError(w, http.StatusInternalServerError, MsgInternalError)
	}
}
