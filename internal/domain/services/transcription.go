package services

import (
	"context"
)

// RecognitionStatus is the outcome class of a single recognition call.
type RecognitionStatus string

const (
	RecognitionSuccess  RecognitionStatus = "Success"
	RecognitionNoMatch  RecognitionStatus = "NoMatch"
	RecognitionCanceled RecognitionStatus = "Canceled"
	RecognitionUnknown  RecognitionStatus = "Unknown"
)

// RecognitionResult is the outcome of one single-shot recognition call.
// Exactly one of the statuses applies; Reason and Detail are only set for
// canceled or unrecognized outcomes.
type RecognitionResult struct {
	Status RecognitionStatus
	Text   string
	Reason string
	Detail string
}

// SpeechRecognizer submits a local canonical WAV file (mono, 16kHz, 16-bit
// PCM) to a speech service. Single-shot only: no streaming, no retries.
type SpeechRecognizer interface {
	RecognizeOnce(ctx context.Context, wavPath string) (*RecognitionResult, error)
}

// MediaFetcher downloads a remote audio resource to a scratch location and
// returns the local path.
type MediaFetcher interface {
	Fetch(ctx context.Context, rawURL, ext string) (string, error)
}

// Transcoder converts an audio file to the canonical recognition format and
// returns the path of the converted file.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath string) (string, error)
}

// TranscriptionService runs the download -> transcode -> recognize pipeline.
type TranscriptionService interface {
	// Transcribe returns the recognized text for the audio at rawURL.
	// Unsupported extensions fail with domain.ErrUnsupportedMedia before any
	// network call; an audio without detectable speech fails with
	// domain.ErrNoSpeech; everything else surfaces domain.ErrUpstream.
	Transcribe(ctx context.Context, rawURL string) (string, error)
}
