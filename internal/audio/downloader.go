package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

// Downloader fetches remote audio files into a scratch directory.
type Downloader struct {
	client     *http.Client
	scratchDir string
	logger     *slog.Logger
}

// NewDownloader creates a downloader writing into scratchDir.
func NewDownloader(client *http.Client, scratchDir string, logger *slog.Logger) services.MediaFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{
		client:     client,
		scratchDir: scratchDir,
		logger:     logger,
	}
}

// Fetch downloads rawURL and returns the local scratch path. No retries,
// no checksum validation; any failure is terminal for the request.
func (d *Downloader) Fetch(ctx context.Context, rawURL, ext string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: petición de descarga: %v", domain.ErrValidation, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: descarga fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: descarga fallida: estado %d", domain.ErrUpstream, resp.StatusCode)
	}

	localPath := filepath.Join(d.scratchDir, "audio-"+uuid.New().String()+ext)
	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("%w: descarga interrumpida: %v", domain.ErrUpstream, err)
	}

	d.logger.Debug("audio downloaded",
		"url", rawURL,
		"path", localPath,
		"bytes", n,
	)

	return localPath, nil
}
