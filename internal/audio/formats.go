package audio

import (
	_ "embed"
	"fmt"
	"net/url"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
)

//go:embed formats.yaml
var formatsFile []byte

// Format describes one supported audio container.
type Format struct {
	Extension string `yaml:"extension"`
	MIME      string `yaml:"mime"`
	// Canonical marks containers already in the recognition format
	// (mono, 16kHz, 16-bit linear PCM); they skip transcoding.
	Canonical bool `yaml:"canonical"`
}

type formatsConfig struct {
	Formats []Format `yaml:"formats"`
}

// FormatRegistry maps path extensions to supported audio formats.
type FormatRegistry struct {
	formats map[string]Format
}

// NewFormatRegistry loads the embedded format table.
func NewFormatRegistry() (*FormatRegistry, error) {
	var cfg formatsConfig
	if err := yaml.Unmarshal(formatsFile, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal formats.yaml: %w", err)
	}

	r := &FormatRegistry{formats: make(map[string]Format, len(cfg.Formats))}
	for _, f := range cfg.Formats {
		r.formats[strings.ToLower(f.Extension)] = f
	}
	return r, nil
}

// FromURL infers the format from the URL's path extension,
// case-insensitively. Unknown extensions fail with ErrUnsupportedMedia;
// no network access happens here.
func (r *FormatRegistry) FromURL(rawURL string) (*Format, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: URL inválida: %v", domain.ErrValidation, err)
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		return nil, fmt.Errorf("%w: la URL no tiene extensión", domain.ErrUnsupportedMedia)
	}

	f, ok := r.formats[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, ext)
	}
	return &f, nil
}

// Extensions returns the supported extensions, for diagnostics.
func (r *FormatRegistry) Extensions() []string {
	exts := make([]string, 0, len(r.formats))
	for ext := range r.formats {
		exts = append(exts, ext)
	}
	return exts
}
