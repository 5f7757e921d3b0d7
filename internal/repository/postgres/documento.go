package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/models"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/repositories"
)

// PostgresDocumentoRepository implements the DocumentoRepository interface
type PostgresDocumentoRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentoRepository creates a new documento repository
func NewDocumentoRepository(config *RepositoryConfig) repositories.DocumentoRepository {
	return &PostgresDocumentoRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert writes a document projection in a single statement. The previous
// revision of this engine did a lookup-then-insert/update pair, leaving a
// window between check and write; ON CONFLICT closes it.
// xmax = 0 distinguishes a fresh insert from a conflict update.
func (r *PostgresDocumentoRepository) Upsert(ctx context.Context, doc *models.Documento) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (url_blob, nombre, descripcion, resumen, titulo, idioma, palabras_clave, etiquetas, fecha_cargue)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (url_blob) DO UPDATE SET
			nombre = EXCLUDED.nombre,
			descripcion = EXCLUDED.descripcion,
			resumen = EXCLUDED.resumen,
			titulo = EXCLUDED.titulo,
			idioma = EXCLUDED.idioma,
			palabras_clave = EXCLUDED.palabras_clave,
			etiquetas = EXCLUDED.etiquetas,
			fecha_modificacion = NOW()
		RETURNING id, fecha_cargue, fecha_modificacion, (xmax = 0) AS inserted
	`, r.tables.Documentos)

	var inserted bool
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.URLBlob,
		doc.Nombre,
		doc.Descripcion,
		doc.Resumen,
		doc.Titulo,
		doc.Idioma,
		doc.PalabrasClave,
		doc.Etiquetas,
	).Scan(&doc.ID, &doc.FechaCargue, &doc.FechaModificacion, &inserted)

	if err != nil {
		return false, fmt.Errorf("upsert documento: %w", err)
	}

	return inserted, nil
}

// GetByURLBlob retrieves a document projection by its unique key
func (r *PostgresDocumentoRepository) GetByURLBlob(ctx context.Context, urlBlob string) (*models.Documento, error) {
	query := fmt.Sprintf(`
		SELECT id, url_blob, nombre, descripcion, resumen, titulo, idioma, palabras_clave, etiquetas, fecha_cargue, fecha_modificacion
		FROM %s
		WHERE url_blob = $1
	`, r.tables.Documentos)

	var doc models.Documento
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, urlBlob).Scan(
		&doc.ID,
		&doc.URLBlob,
		&doc.Nombre,
		&doc.Descripcion,
		&doc.Resumen,
		&doc.Titulo,
		&doc.Idioma,
		&doc.PalabrasClave,
		&doc.Etiquetas,
		&doc.FechaCargue,
		&doc.FechaModificacion,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("documento %s: %w", urlBlob, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}

	return &doc, nil
}
