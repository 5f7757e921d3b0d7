package models

import (
	"time"
)

// SearchDocument is a document as returned by the Azure Cognitive Search
// index. The index owns these entities; this service only reads them.
type SearchDocument struct {
	ID         string    `json:"id"` // URL-safe base64, decodes to a blob path
	Content    string    `json:"content"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Language   string    `json:"language"`
	Tags       []string  `json:"tags"`
	KeyPhrases []string  `json:"keyPhrases"`
	CreatedAt  time.Time `json:"created_at"`
}

// Documento is the relational projection of a SearchDocument.
// At most one row exists per URLBlob.
type Documento struct {
	ID                int64      `json:"id" db:"id"`
	URLBlob           string     `json:"url_blob" db:"url_blob"` // unique key = SearchDocument.ID
	Nombre            string     `json:"nombre" db:"nombre"`
	Descripcion       string     `json:"descripcion" db:"descripcion"`
	Resumen           string     `json:"resumen" db:"resumen"`
	Titulo            string     `json:"titulo" db:"titulo"`
	Idioma            string     `json:"idioma" db:"idioma"`
	PalabrasClave     string     `json:"palabras_clave" db:"palabras_clave"`
	Etiquetas         string     `json:"etiquetas" db:"etiquetas"`
	FechaCargue       time.Time  `json:"fecha_cargue" db:"fecha_cargue"`
	FechaModificacion *time.Time `json:"fecha_modificacion" db:"fecha_modificacion"` // NULL until first update
}

// SyncStatus is one row of the append-only sync run log. The most recent
// row by FechaEjecucion for a given Proceso defines the next run's cursor.
type SyncStatus struct {
	ID             int64     `json:"id" db:"id"`
	Proceso        string    `json:"proceso" db:"proceso"`
	FechaEjecucion time.Time `json:"fecha_ejecucion" db:"fecha_ejecucion"`
	Estado         string    `json:"estado" db:"estado"`
	Detalle        string    `json:"detalle" db:"detalle"`
}

// Parametro is an entry in the tag/keyword dictionary, associated to
// documents through the documento_etiquetas table.
type Parametro struct {
	ID     int64  `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
}

// SyncResult is the response of one sync engine run.
type SyncResult struct {
	Message                string `json:"message"`
	DocumentosNuevos       int    `json:"documentos_nuevos"`
	DocumentosActualizados int    `json:"documentos_actualizados"`
}
