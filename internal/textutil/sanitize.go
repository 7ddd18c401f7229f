package textutil

import (
	"path/filepath"
	"strings"
)

// SanitizeToken converts a sequence name to a lowercase filesystem-safe
// token. Letters are lowercased, digits, hyphens, underscores and dots are
// kept, and every other rune becomes an underscore. Leading dots are
// stripped so the token never names a hidden file. Returns "unknown" for
// input that leaves nothing behind.
func SanitizeToken(value string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	out := strings.TrimLeft(strings.Trim(b.String(), "_-"), ".")
	if out == "" {
		return "unknown"
	}
	return out
}

// SequenceName returns the file name of path without its extension.
func SequenceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
