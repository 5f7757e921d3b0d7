package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/models"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/repositories"
)

// PostgresSyncStatusRepository implements the SyncStatusRepository interface
type PostgresSyncStatusRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSyncStatusRepository creates a new sync status repository
func NewSyncStatusRepository(config *RepositoryConfig) repositories.SyncStatusRepository {
	return &PostgresSyncStatusRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// LatestCursor returns the execution timestamp of the most recent run for
// the given process name, or nil when the log has no row for it yet.
func (r *PostgresSyncStatusRepository) LatestCursor(ctx context.Context, proceso string) (*time.Time, error) {
	query := fmt.Sprintf(`
		SELECT fecha_ejecucion
		FROM %s
		WHERE proceso = $1
		ORDER BY fecha_ejecucion DESC
		LIMIT 1
	`, r.tables.SyncStatus)

	var cursor time.Time
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, proceso).Scan(&cursor)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest cursor: %w", err)
	}

	return &cursor, nil
}

// Append records one completed run in the append-only log
func (r *PostgresSyncStatusRepository) Append(ctx context.Context, status *models.SyncStatus) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (proceso, fecha_ejecucion, estado, detalle)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, r.tables.SyncStatus)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		status.Proceso,
		status.FechaEjecucion,
		status.Estado,
		status.Detalle,
	).Scan(&status.ID)

	if err != nil {
		return fmt.Errorf("append sync status: %w", err)
	}

	return nil
}
