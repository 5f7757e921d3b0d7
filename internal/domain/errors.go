package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnsupportedMediaError indicates an audio format this service cannot process
	UnsupportedMediaError struct {
		Message string
	}
)

func (e *ValidationError) Error() string       { return e.Message }
func (e *UnsupportedMediaError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *UnsupportedMediaError) StatusCode() int { return http.StatusUnsupportedMediaType }

// Sentinel errors - use with errors.Is()
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")

	// ErrUnsupportedMedia marks audio URLs whose extension is not in the
	// format registry. Checked before any network call.
	ErrUnsupportedMedia = errors.New("formato de audio no soportado")

	// ErrNoSpeech marks a recognition call that completed without detecting
	// any speech in the audio.
	ErrNoSpeech = errors.New("no se reconoció ninguna voz en el audio")

	// ErrUpstream marks failures of external collaborators (download,
	// ffmpeg, speech service, search index, database). The wrapped text is
	// surfaced to the caller in the 500 response.
	ErrUpstream = errors.New("error de dependencia externa")
)
