package config

// Column character budgets for the documentos projection. Every string field
// is silently truncated to its budget before write; the database columns are
// sized to exactly these values, so exceeding them would be a storage error.
const (
	// MaxNombreLength fits VARCHAR(255).
	MaxNombreLength = 255

	// MaxTituloLength fits VARCHAR(255).
	MaxTituloLength = 255

	// MaxIdiomaLength fits VARCHAR(10). Language codes ("es", "en-US").
	MaxIdiomaLength = 10

	// MaxDescripcionLength caps the truncated document content, VARCHAR(1000).
	MaxDescripcionLength = 1000

	// MaxEtiquetasLength fits VARCHAR(1000).
	MaxEtiquetasLength = 1000

	// MaxResumenLength fits VARCHAR(2000).
	MaxResumenLength = 2000

	// MaxPalabrasClaveLength caps the joined tags+keyPhrases list, VARCHAR(2000).
	MaxPalabrasClaveLength = 2000
)
