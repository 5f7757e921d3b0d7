package handler

import (
	"errors"
	"net/http"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Upstream failures
// keep their error text in the 500 detail so the caller sees the diagnosis.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnsupportedMedia):
		httputil.RespondError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
