package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Index:    "documentos-idx",
		Indexer:  "blob-indexer",
	}, server.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSearchBuildsIncrementalFilter(t *testing.T) {
	cursor := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotBody searchRequest
	var gotKey, gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"value": []interface{}{}})
	})

	_, err := client.Search(context.Background(), &services.DocumentQuery{
		CreatedAfter: &cursor,
		Top:          50,
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("api-key = %q, want %q", gotKey, "test-key")
	}
	if gotPath != "/indexes/documentos-idx/docs/search" {
		t.Errorf("path = %q, want the index search route", gotPath)
	}
	if gotBody.Filter != "created_at gt 2026-03-01T12:00:00Z" {
		t.Errorf("filter = %q, want cursor filter", gotBody.Filter)
	}
	if gotBody.Top != 50 {
		t.Errorf("top = %d, want 50", gotBody.Top)
	}
}

func TestSearchFullScanHasNoFilter(t *testing.T) {
	var gotBody searchRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{"value": []interface{}{}})
	})

	if _, err := client.Search(context.Background(), &services.DocumentQuery{Top: 1000}); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if gotBody.Filter != "" {
		t.Errorf("filter = %q, want empty for full scan", gotBody.Filter)
	}
}

func TestSearchParsesDocuments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": [
			{"id": "YQ", "content": "c", "title": "t", "language": "es",
			 "tags": ["x"], "keyPhrases": ["y"], "created_at": "2026-02-10T08:00:00Z"}
		]}`))
	})

	docs, err := client.Search(context.Background(), &services.DocumentQuery{Top: 50})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want 1", len(docs))
	}
	if docs[0].ID != "YQ" || docs[0].Language != "es" {
		t.Errorf("doc = %+v, not parsed as expected", docs[0])
	}
	if !docs[0].CreatedAt.Equal(time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v, want parsed timestamp", docs[0].CreatedAt)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index is rebuilding", http.StatusServiceUnavailable)
	})

	_, err := client.Search(context.Background(), &services.DocumentQuery{Top: 50})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
}

func TestRunIndexerAccepted(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	})

	if err := client.RunIndexer(context.Background()); err != nil {
		t.Fatalf("RunIndexer() error: %v", err)
	}
	if gotPath != "/indexers/blob-indexer/run" {
		t.Errorf("path = %q, want the indexer run route", gotPath)
	}
}

func TestRunIndexerRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	err := client.RunIndexer(context.Background())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
}
