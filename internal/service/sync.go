package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/config"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/docname"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/models"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/repositories"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

const (
	// ProcesoSearchToSQL is the process name keying the sync_status log.
	ProcesoSearchToSQL = "azure-search-to-sql"

	// incrementalPageSize caps one incremental run. A backlog larger than
	// this takes several invocations to drain.
	incrementalPageSize = 50

	// fullPageSize caps the seed variant, which trades incrementality for
	// completeness-per-call.
	fullPageSize = 1000

	estadoOK = "OK"
)

// syncService implements the SyncService interface
type syncService struct {
	index     services.DocumentIndex
	documents repositories.DocumentoRepository
	status    repositories.SyncStatusRepository
	tags      repositories.ParametroRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// NewSyncService creates a new sync service
func NewSyncService(
	index services.DocumentIndex,
	documents repositories.DocumentoRepository,
	status repositories.SyncStatusRepository,
	tags repositories.ParametroRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.SyncService {
	return &syncService{
		index:     index,
		documents: documents,
		status:    status,
		tags:      tags,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Run mirrors one page of index documents into the relational store. All
// writes of a run share one transaction: any failure abandons it with no
// partial persistence.
func (s *syncService) Run(ctx context.Context, mode services.SyncMode) (*models.SyncResult, error) {
	var result *models.SyncResult

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var runErr error
		switch mode {
		case services.SyncFull:
			result, runErr = s.runFull(txCtx)
		default:
			result, runErr = s.runIncremental(txCtx)
		}
		return runErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// runIncremental is the cursor-driven engine: read the watermark, fetch the
// next page, upsert each document, advance the watermark.
func (s *syncService) runIncremental(ctx context.Context) (*models.SyncResult, error) {
	cursor, err := s.status.LatestCursor(ctx, ProcesoSearchToSQL)
	if err != nil {
		return nil, err
	}

	docs, err := s.index.Search(ctx, &services.DocumentQuery{
		CreatedAfter: cursor,
		Top:          incrementalPageSize,
	})
	if err != nil {
		return nil, err
	}

	var inserted, updated int
	var lastSeen *time.Time
	for i := range docs {
		doc := &docs[i]
		wasInsert, err := s.upsertDocument(ctx, doc)
		if err != nil {
			return nil, err
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
		created := doc.CreatedAt
		lastSeen = &created
	}

	// The cursor advances to the last processed document's timestamp, not to
	// wall-clock now: with the page cap, "now" would skip every document the
	// cap excluded from this run. An empty run has nothing to anchor on and
	// records the run time itself.
	next := s.now()
	if lastSeen != nil {
		next = *lastSeen
	}

	if err := s.status.Append(ctx, &models.SyncStatus{
		Proceso:        ProcesoSearchToSQL,
		FechaEjecucion: next,
		Estado:         estadoOK,
		Detalle:        fmt.Sprintf("Documentos nuevos: %d, actualizados: %d", inserted, updated),
	}); err != nil {
		return nil, err
	}

	s.logger.Info("sync completed",
		"mode", services.SyncIncremental,
		"inserted", inserted,
		"updated", updated,
		"cursor", next,
	)

	return &models.SyncResult{
		Message:                "Sincronización completada",
		DocumentosNuevos:       inserted,
		DocumentosActualizados: updated,
	}, nil
}

// runFull is the pre-cursor seed variant: no watermark, larger page, and
// tags are upserted into the dictionary and association tables. It does not
// write a status row, leaving the incremental cursor untouched.
func (s *syncService) runFull(ctx context.Context) (*models.SyncResult, error) {
	docs, err := s.index.Search(ctx, &services.DocumentQuery{
		Top: fullPageSize,
	})
	if err != nil {
		return nil, err
	}

	var inserted, updated int
	for i := range docs {
		doc := &docs[i]
		row := s.project(doc)
		wasInsert, err := s.documents.Upsert(ctx, row)
		if err != nil {
			return nil, err
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}

		for _, tag := range doc.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			tagID, err := s.tags.GetOrCreate(ctx, truncate(tag, config.MaxNombreLength))
			if err != nil {
				return nil, err
			}
			if err := s.tags.Associate(ctx, row.ID, tagID); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("sync completed",
		"mode", services.SyncFull,
		"inserted", inserted,
		"updated", updated,
	)

	return &models.SyncResult{
		Message:                "Sincronización completa ejecutada",
		DocumentosNuevos:       inserted,
		DocumentosActualizados: updated,
	}, nil
}

func (s *syncService) upsertDocument(ctx context.Context, doc *models.SearchDocument) (bool, error) {
	return s.documents.Upsert(ctx, s.project(doc))
}

// project maps an index document onto its relational row, applying the
// column budgets. Truncation is silent; oversized fields are never rejected.
func (s *syncService) project(doc *models.SearchDocument) *models.Documento {
	keywords := strings.Join(append(append([]string{}, doc.Tags...), doc.KeyPhrases...), ", ")

	return &models.Documento{
		URLBlob:       doc.ID,
		Nombre:        truncate(docname.FromID(doc.ID), config.MaxNombreLength),
		Descripcion:   truncate(doc.Content, config.MaxDescripcionLength),
		Resumen:       truncate(doc.Summary, config.MaxResumenLength),
		Titulo:        truncate(doc.Title, config.MaxTituloLength),
		Idioma:        truncate(doc.Language, config.MaxIdiomaLength),
		PalabrasClave: truncate(keywords, config.MaxPalabrasClaveLength),
		Etiquetas:     truncate(strings.Join(doc.Tags, ", "), config.MaxEtiquetasLength),
	}
}

// truncate caps s to max characters (code points, not bytes).
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
