package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/repositories"
)

// PostgresParametroRepository implements the ParametroRepository interface
type PostgresParametroRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewParametroRepository creates a new parametro repository
func NewParametroRepository(config *RepositoryConfig) repositories.ParametroRepository {
	return &PostgresParametroRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetOrCreate looks a tag up by name, inserting it when absent.
// ON CONFLICT DO UPDATE makes the RETURNING clause yield the id on both
// paths with a single statement.
func (r *PostgresParametroRepository) GetOrCreate(ctx context.Context, nombre string) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (nombre)
		VALUES ($1)
		ON CONFLICT (nombre) DO UPDATE SET nombre = EXCLUDED.nombre
		RETURNING id
	`, r.tables.Parametros)

	var id int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, nombre).Scan(&id); err != nil {
		return 0, fmt.Errorf("get or create parametro: %w", err)
	}

	return id, nil
}

// Associate links a document to a tag. Re-running the association is a no-op.
func (r *PostgresParametroRepository) Associate(ctx context.Context, documentoID, parametroID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (documento_id, parametro_id)
		VALUES ($1, $2)
		ON CONFLICT (documento_id, parametro_id) DO NOTHING
	`, r.tables.DocumentoEtiquetas)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, documentoID, parametroID); err != nil {
		return fmt.Errorf("associate parametro: %w", err)
	}

	return nil
}
