// Package docname derives display names from the opaque document ids the
// search index emits. Ids are URL-safe base64 over a blob path; the final
// path segment is the file's display name.
package docname

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// Fallback is the display name used when an id cannot be decoded.
const Fallback = "Autoimportado"

// FromID decodes an index document id into a display name. Decoding is
// best-effort and never fails: any malformed id yields Fallback.
func FromID(id string) string {
	if id == "" {
		return Fallback
	}

	decoded, err := decodeBase64URL(id)
	if err != nil {
		return Fallback
	}

	// The decoded value is a path; the last segment is the display name.
	segments := strings.Split(strings.TrimRight(decoded, "/"), "/")
	name := segments[len(segments)-1]
	if name == "" {
		return Fallback
	}

	unescaped, err := url.PathUnescape(name)
	if err != nil || unescaped == "" {
		return Fallback
	}

	return unescaped
}

// decodeBase64URL decodes URL-safe base64, restoring stripped padding.
func decodeBase64URL(s string) (string, error) {
	if pad := len(s) % 4; pad != 0 {
		s += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
