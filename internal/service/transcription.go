package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/audio"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

// transcriptionService implements the TranscriptionService interface
type transcriptionService struct {
	formats    *audio.FormatRegistry
	fetcher    services.MediaFetcher
	transcoder services.Transcoder
	recognizer services.SpeechRecognizer
	logger     *slog.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(
	formats *audio.FormatRegistry,
	fetcher services.MediaFetcher,
	transcoder services.Transcoder,
	recognizer services.SpeechRecognizer,
	logger *slog.Logger,
) services.TranscriptionService {
	return &transcriptionService{
		formats:    formats,
		fetcher:    fetcher,
		transcoder: transcoder,
		recognizer: recognizer,
		logger:     logger,
	}
}

// Transcribe runs the download -> transcode -> recognize pipeline for one
// audio URL. The pipeline is strictly sequential, blocking the request until
// the recognition call returns.
func (s *transcriptionService) Transcribe(ctx context.Context, rawURL string) (string, error) {
	// Format is inferred from the path extension before touching the network.
	format, err := s.formats.FromURL(rawURL)
	if err != nil {
		return "", err
	}

	s.logger.Info("transcription started",
		"url", rawURL,
		"format", format.Extension,
	)

	localPath, err := s.fetcher.Fetch(ctx, rawURL, format.Extension)
	if err != nil {
		return "", err
	}

	wavPath := localPath
	if !format.Canonical {
		wavPath, err = s.transcoder.Transcode(ctx, localPath)
		if err != nil {
			return "", err
		}
	}

	result, err := s.recognizer.RecognizeOnce(ctx, wavPath)
	if err != nil {
		return "", err
	}

	switch result.Status {
	case services.RecognitionSuccess:
		s.logger.Info("transcription completed", "url", rawURL, "chars", len(result.Text))
		return result.Text, nil
	case services.RecognitionNoMatch:
		s.logger.Warn("no speech detected", "url", rawURL)
		return "", domain.ErrNoSpeech
	case services.RecognitionCanceled:
		return "", fmt.Errorf("%w: transcripción cancelada: %s: %s",
			domain.ErrUpstream, result.Reason, result.Detail)
	default:
		return "", fmt.Errorf("%w: resultado no reconocido: %s",
			domain.ErrUpstream, result.Reason)
	}
}
