package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// ExpandHome resolves a leading "~" against home and normalizes the result.
// Relative paths are taken relative to home as well, so config values do not
// depend on the working directory.
func ExpandHome(p, home string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}

	switch {
	case p == "~":
		return NormalizePath(home)
	case strings.HasPrefix(p, "~/"), strings.HasPrefix(p, "~\\"):
		return NormalizePath(filepath.Join(home, p[2:]))
	}

	normalized := NormalizePath(p)
	if filepath.IsAbs(normalized) || home == "" {
		return normalized
	}
	return filepath.Join(NormalizePath(home), normalized)
}

// SameFile reports whether a and b name the same path once normalized.
func SameFile(a, b string) bool {
	return NormalizePath(a) == NormalizePath(b)
}
