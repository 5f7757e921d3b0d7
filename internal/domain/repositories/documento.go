package repositories

import (
	"context"
	"time"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/models"
)

// DocumentoRepository persists document projections keyed by url_blob.
type DocumentoRepository interface {
	// Upsert writes the document atomically: insert when the url_blob is
	// unseen, update the mutable fields otherwise. Returns true when a new
	// row was created. doc.ID is populated either way.
	Upsert(ctx context.Context, doc *models.Documento) (inserted bool, err error)

	// GetByURLBlob retrieves a row by its unique key.
	// Returns domain.ErrNotFound when absent.
	GetByURLBlob(ctx context.Context, urlBlob string) (*models.Documento, error)
}

// SyncStatusRepository reads and appends the sync run log.
type SyncStatusRepository interface {
	// LatestCursor returns the FechaEjecucion of the most recent row for the
	// given process name, or nil when no run has been recorded yet.
	LatestCursor(ctx context.Context, proceso string) (*time.Time, error)

	// Append records one completed run. Rows are never mutated afterwards.
	Append(ctx context.Context, status *models.SyncStatus) error
}

// ParametroRepository maintains the tag dictionary and its document
// associations, used by the full-seed sync mode.
type ParametroRepository interface {
	// GetOrCreate looks a tag up by name, inserting it when absent, and
	// returns its id.
	GetOrCreate(ctx context.Context, nombre string) (int64, error)

	// Associate links a document to a tag. Re-associating is a no-op.
	Associate(ctx context.Context, documentoID, parametroID int64) error
}
