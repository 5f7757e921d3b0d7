package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/httputil"
)

// IndexerHandler handles indexer trigger HTTP requests
type IndexerHandler struct {
	service services.TriggerService
	logger  *slog.Logger
}

// NewIndexerHandler creates a new indexer handler
func NewIndexerHandler(service services.TriggerService, logger *slog.Logger) *IndexerHandler {
	return &IndexerHandler{
		service: service,
		logger:  logger,
	}
}

// validationResponse echoes the subscription-validation code back to the
// event platform.
type validationResponse struct {
	ValidationResponse string `json:"validationResponse"`
}

// Run triggers the remote indexing job, or answers the event platform's
// subscription-validation handshake
// POST /run-indexer
func (h *IndexerHandler) Run(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Handle(r.Context(), body)
	if err != nil {
		h.logger.Error("indexer trigger failed", "error", err)
		handleError(w, err)
		return
	}

	if result.ValidationCode != "" {
		httputil.RespondJSON(w, http.StatusOK, validationResponse{
			ValidationResponse: result.ValidationCode,
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result.Sync)
}
