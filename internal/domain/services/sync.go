package services

import (
	"context"
	"time"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/models"
)

// DocumentQuery selects documents from the search index.
type DocumentQuery struct {
	// CreatedAfter restricts results to documents created strictly after
	// the cursor. Nil means no restriction (full scan).
	CreatedAfter *time.Time
	// Top caps the number of documents returned by one invocation.
	Top int
}

// DocumentIndex reads documents from the external search index.
type DocumentIndex interface {
	Search(ctx context.Context, q *DocumentQuery) ([]models.SearchDocument, error)
}

// IndexerAdmin triggers the remote indexing job that feeds the index.
type IndexerAdmin interface {
	RunIndexer(ctx context.Context) error
}

// SyncMode selects between the incremental engine and the full-seed variant.
type SyncMode string

const (
	// SyncIncremental advances the watermark cursor, page cap 50.
	SyncIncremental SyncMode = "incremental"
	// SyncFull ignores the cursor, page cap 1000, and upserts tags into the
	// dictionary/association tables. Intended as the initial seed path.
	SyncFull SyncMode = "full"
)

// SyncService mirrors search-index documents into the relational store.
type SyncService interface {
	Run(ctx context.Context, mode SyncMode) (*models.SyncResult, error)
}

// TriggerResult is the outcome of handling a /run-indexer request: either a
// subscription-validation echo or the inline sync run's result.
type TriggerResult struct {
	ValidationCode string
	Sync           *models.SyncResult
}

// TriggerService handles indexer trigger requests, including the event
// platform's subscription-validation handshake.
type TriggerService interface {
	Handle(ctx context.Context, body []byte) (*TriggerResult, error)
}
