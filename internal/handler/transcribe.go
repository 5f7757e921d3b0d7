package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/httputil"
)

// noSpeechMessage is the fixed response body when recognition finds no voice.
const noSpeechMessage = "No se reconoció ninguna voz en el audio."

// TranscribeHandler handles transcription HTTP requests
type TranscribeHandler struct {
	service services.TranscriptionService
	logger  *slog.Logger
}

// NewTranscribeHandler creates a new transcribe handler
func NewTranscribeHandler(service services.TranscriptionService, logger *slog.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		service: service,
		logger:  logger,
	}
}

// Transcribe downloads, normalizes and transcribes one audio URL
// GET /transcribe?url=<audio-url>
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Falta parámetro 'url'")
		return
	}

	text, err := h.service.Transcribe(r.Context(), rawURL)
	if err != nil {
		if errors.Is(err, domain.ErrNoSpeech) {
			httputil.RespondText(w, http.StatusNoContent, noSpeechMessage)
			return
		}
		h.logger.Error("transcription failed", "url", rawURL, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondText(w, http.StatusOK, text)
}
