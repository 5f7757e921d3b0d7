package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

// FFmpegTranscoder converts audio to the canonical recognition format
// (mono, 16kHz, 16-bit linear PCM WAV) by invoking ffmpeg.
type FFmpegTranscoder struct {
	binPath string
	logger  *slog.Logger
}

// NewFFmpegTranscoder creates a transcoder using the ffmpeg binary at binPath.
func NewFFmpegTranscoder(binPath string, logger *slog.Logger) services.Transcoder {
	return &FFmpegTranscoder{
		binPath: binPath,
		logger:  logger,
	}
}

// Transcode converts inputPath and returns the converted file's path.
// A non-zero ffmpeg exit surfaces as an upstream error carrying stderr.
func (t *FFmpegTranscoder) Transcode(ctx context.Context, inputPath string) (string, error) {
	if err := t.ensureExecutable(); err != nil {
		return "", fmt.Errorf("%w: permisos de ffmpeg: %v", domain.ErrUpstream, err)
	}

	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "-16k.wav"

	cmd := exec.CommandContext(ctx, t.binPath,
		"-y",
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: conversión ffmpeg: %v: %s",
			domain.ErrUpstream, err, strings.TrimSpace(stderr.String()))
	}

	t.logger.Debug("audio transcoded",
		"input", inputPath,
		"output", outputPath,
	)

	return outputPath, nil
}

// ensureExecutable restores the execute bit on a bundled ffmpeg binary.
// Deployment archives can strip it. Skipped for bare PATH lookups.
func (t *FFmpegTranscoder) ensureExecutable() error {
	if !strings.ContainsRune(t.binPath, os.PathSeparator) {
		return nil
	}

	info, err := os.Stat(t.binPath)
	if err != nil {
		return err
	}
	if info.Mode()&0o111 != 0 {
		return nil
	}
	return os.Chmod(t.binPath, info.Mode()|0o111)
}
