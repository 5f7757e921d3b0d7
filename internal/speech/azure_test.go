package speech

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

func newTestRecognizer(t *testing.T, handler http.HandlerFunc) services.SpeechRecognizer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAzureRecognizer(Config{
		Key:      "test-key",
		Language: "es-ES",
		Endpoint: server.URL,
	}, server.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeTestWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF-fake-wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRecognizeOnceSuccess(t *testing.T) {
	var gotKey, gotLanguage string
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotLanguage = r.URL.Query().Get("language")
		w.Write([]byte(`{"RecognitionStatus": "Success", "DisplayText": "buenos días"}`))
	})

	result, err := rec.RecognizeOnce(context.Background(), writeTestWAV(t))
	if err != nil {
		t.Fatalf("RecognizeOnce() error: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("subscription key = %q, want %q", gotKey, "test-key")
	}
	if gotLanguage != "es-ES" {
		t.Errorf("language = %q, want %q", gotLanguage, "es-ES")
	}
	if result.Status != services.RecognitionSuccess {
		t.Errorf("status = %q, want Success", result.Status)
	}
	if result.Text != "buenos días" {
		t.Errorf("text = %q, want %q", result.Text, "buenos días")
	}
}

func TestRecognizeOnceNoMatch(t *testing.T) {
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RecognitionStatus": "NoMatch"}`))
	})

	result, err := rec.RecognizeOnce(context.Background(), writeTestWAV(t))
	if err != nil {
		t.Fatalf("RecognizeOnce() error: %v", err)
	}
	if result.Status != services.RecognitionNoMatch {
		t.Errorf("status = %q, want NoMatch", result.Status)
	}
}

func TestRecognizeOnceInitialSilenceIsNoMatch(t *testing.T) {
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RecognitionStatus": "InitialSilenceTimeout"}`))
	})

	result, err := rec.RecognizeOnce(context.Background(), writeTestWAV(t))
	if err != nil {
		t.Fatalf("RecognizeOnce() error: %v", err)
	}
	if result.Status != services.RecognitionNoMatch {
		t.Errorf("status = %q, want NoMatch", result.Status)
	}
}

func TestRecognizeOnceHTTPErrorIsCancellation(t *testing.T) {
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid subscription key", http.StatusUnauthorized)
	})

	result, err := rec.RecognizeOnce(context.Background(), writeTestWAV(t))
	if err != nil {
		t.Fatalf("RecognizeOnce() error: %v", err)
	}
	if result.Status != services.RecognitionCanceled {
		t.Errorf("status = %q, want Canceled", result.Status)
	}
	if result.Reason != "HTTP 401" {
		t.Errorf("reason = %q, want HTTP 401", result.Reason)
	}
	if result.Detail != "invalid subscription key" {
		t.Errorf("detail = %q, want the service's message", result.Detail)
	}
}

func TestRecognizeOnceUnknownStatus(t *testing.T) {
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RecognitionStatus": "EndOfDictation"}`))
	})

	result, err := rec.RecognizeOnce(context.Background(), writeTestWAV(t))
	if err != nil {
		t.Fatalf("RecognizeOnce() error: %v", err)
	}
	if result.Status != services.RecognitionUnknown {
		t.Errorf("status = %q, want Unknown", result.Status)
	}
	if result.Reason != "EndOfDictation" {
		t.Errorf("reason = %q, want the raw status code", result.Reason)
	}
}

func TestRecognizeOnceMissingFile(t *testing.T) {
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {})

	if _, err := rec.RecognizeOnce(context.Background(), "/tmp/does-not-exist.wav"); err == nil {
		t.Fatal("RecognizeOnce() expected error for missing file")
	}
}
