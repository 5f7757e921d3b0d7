package docname

import (
	"encoding/base64"
	"testing"
)

func encodeID(path string) string {
	// The index strips base64 padding from ids, like blob-backed indexers do.
	return base64.RawURLEncoding.EncodeToString([]byte(path))
}

func TestFromID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "plain path",
			id:   encodeID("documentos/actas/acta-directiva.pdf"),
			want: "acta-directiva.pdf",
		},
		{
			name: "percent-encoded segment",
			id:   encodeID("documentos/Acta%20Final%202024.pdf"),
			want: "Acta Final 2024.pdf",
		},
		{
			name: "single segment",
			id:   encodeID("informe.docx"),
			want: "informe.docx",
		},
		{
			name: "trailing slash",
			id:   encodeID("carpeta/informe.docx/"),
			want: "informe.docx",
		},
		{
			name: "padded id decodes too",
			id:   base64.URLEncoding.EncodeToString([]byte("a/b.txt")),
			want: "b.txt",
		},
		{
			name: "invalid base64",
			id:   "!!not-base64!!",
			want: Fallback,
		},
		{
			name: "empty id",
			id:   "",
			want: Fallback,
		},
		{
			name: "decodes to empty path",
			id:   encodeID("///"),
			want: Fallback,
		},
		{
			name: "invalid percent escape",
			id:   encodeID("carpeta/mal%zzescapado"),
			want: Fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromID(tt.id); got != tt.want {
				t.Errorf("FromID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
