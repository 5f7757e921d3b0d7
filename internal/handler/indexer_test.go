package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/models"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/service"
)

type fakeIndexerAdmin struct {
	calls int
}

func (f *fakeIndexerAdmin) RunIndexer(ctx context.Context) error {
	f.calls++
	return nil
}

type fakeSyncService struct {
	result models.SyncResult
}

func (f *fakeSyncService) Run(ctx context.Context, mode services.SyncMode) (*models.SyncResult, error) {
	r := f.result
	return &r, nil
}

// Wires the real trigger service behind the handler so the handshake path is
// exercised end to end.
func newIndexerHandler(admin *fakeIndexerAdmin, sync *fakeSyncService) *IndexerHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trigger := service.NewTriggerService(admin, sync, 0, logger)
	return NewIndexerHandler(trigger, logger)
}

func TestRunIndexerSubscriptionValidationEcho(t *testing.T) {
	admin := &fakeIndexerAdmin{}
	h := newIndexerHandler(admin, &fakeSyncService{})

	payload := `[{"eventType": "Microsoft.EventGrid.SubscriptionValidationEvent", "data": {"validationCode": "abc123"}}]`
	req := httptest.NewRequest(http.MethodPost, "/run-indexer", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Run(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["validationResponse"] != "abc123" {
		t.Errorf("validationResponse = %q, want %q", resp["validationResponse"], "abc123")
	}
	if admin.calls != 0 {
		t.Errorf("remote indexer contacted %d times, want 0 during handshake", admin.calls)
	}
}

func TestRunIndexerTriggersAndReturnsSyncResult(t *testing.T) {
	admin := &fakeIndexerAdmin{}
	h := newIndexerHandler(admin, &fakeSyncService{result: models.SyncResult{
		Message:                "Sincronización completada",
		DocumentosNuevos:       2,
		DocumentosActualizados: 5,
	}})

	req := httptest.NewRequest(http.MethodPost, "/run-indexer", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Run(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if admin.calls != 1 {
		t.Errorf("remote indexer contacted %d times, want 1", admin.calls)
	}

	var resp models.SyncResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.DocumentosNuevos != 2 || resp.DocumentosActualizados != 5 {
		t.Errorf("counts = {%d, %d}, want {2, 5}", resp.DocumentosNuevos, resp.DocumentosActualizados)
	}
}
