package handler

import (
	"log/slog"
	"net/http"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/httputil"
)

// SyncHandler handles sync HTTP requests
type SyncHandler struct {
	service services.SyncService
	logger  *slog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(service services.SyncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		service: service,
		logger:  logger,
	}
}

// Sync runs the sync engine once
// POST /sync-search-to-sql[?mode=full]
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	mode := services.SyncIncremental
	if r.URL.Query().Get("mode") == string(services.SyncFull) {
		mode = services.SyncFull
	}

	result, err := h.service.Run(r.Context(), mode)
	if err != nil {
		h.logger.Error("sync failed", "mode", mode, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
