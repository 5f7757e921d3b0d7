// Package speech submits audio to the Azure Speech short-audio REST
// endpoint. Azure publishes no Go SDK for its speech service; the REST
// surface covers the single-shot recognition this service performs.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

// AzureRecognizer implements the SpeechRecognizer port.
type AzureRecognizer struct {
	endpoint string
	apiKey   string
	language string
	client   *http.Client
	logger   *slog.Logger
}

// Config holds the speech service credential and locale.
type Config struct {
	Key      string
	Region   string
	Language string
	// Endpoint overrides the region-derived URL; used by tests.
	Endpoint string
}

// NewAzureRecognizer creates a recognizer for the configured region.
func NewAzureRecognizer(cfg Config, httpClient *http.Client, logger *slog.Logger) services.SpeechRecognizer {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf(
			"https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1",
			cfg.Region,
		)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &AzureRecognizer{
		endpoint: endpoint,
		apiKey:   cfg.Key,
		language: cfg.Language,
		client:   httpClient,
		logger:   logger,
	}
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// RecognizeOnce submits the WAV file and maps the service's result code.
// One blocking call, no partial results, no retry.
func (r *AzureRecognizer) RecognizeOnce(ctx context.Context, wavPath string) (*services.RecognitionResult, error) {
	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	url := fmt.Sprintf("%s?language=%s&format=simple", r.endpoint, r.language)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("build recognition request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", r.apiKey)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: servicio de voz: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &services.RecognitionResult{
			Status: services.RecognitionCanceled,
			Reason: fmt.Sprintf("HTTP %d", resp.StatusCode),
			Detail: strings.TrimSpace(string(detail)),
		}, nil
	}

	var parsed recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: respuesta del servicio de voz: %v", domain.ErrUpstream, err)
	}

	r.logger.Debug("recognition completed", "status", parsed.RecognitionStatus)

	switch parsed.RecognitionStatus {
	case "Success":
		return &services.RecognitionResult{
			Status: services.RecognitionSuccess,
			Text:   parsed.DisplayText,
		}, nil
	case "NoMatch", "InitialSilenceTimeout":
		// The service heard audio but no recognizable speech.
		return &services.RecognitionResult{
			Status: services.RecognitionNoMatch,
		}, nil
	case "Error":
		return &services.RecognitionResult{
			Status: services.RecognitionCanceled,
			Reason: parsed.RecognitionStatus,
		}, nil
	default:
		return &services.RecognitionResult{
			Status: services.RecognitionUnknown,
			Reason: parsed.RecognitionStatus,
		}, nil
	}
}
