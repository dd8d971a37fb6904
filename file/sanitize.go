package file

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sanitize keeps the POSIX portable filename characters plus space
// (A-Z a-z 0-9 . _ - and ' ') and drops everything else. A hyphen is never
// kept as the first character so the result cannot be read as a flag, and
// the result never starts or ends with a space.
// The second return value reports whether anything was removed.
func Sanitize(name string) (string, bool) {
	var b strings.Builder
	changed := false
	for _, c := range name {
		if !isPortable(c) || ((c == '-' || c == ' ') && b.Len() == 0) {
			changed = true
			continue
		}
		b.WriteRune(c)
	}
	clean := strings.TrimRight(b.String(), " ")
	return clean, changed || len(clean) != b.Len()
}

func isPortable(c rune) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '-', c == ' ':
		return true
	}
	return false
}

// Trim removes leading and trailing spaces. Other whitespace is kept.
func Trim(s string) string {
	return strings.Trim(s, " ")
}

// Extension returns everything from the last dot of the base name, dot
// included, or an empty string when there is none.
func Extension(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i:]
	}
	return ""
}

var errEmptyCategory = errors.New("category is empty")

// ValidateCategory checks that a category names exactly one directory
// below the wallpaper folder.
func ValidateCategory(category string) error {
	if category == "" {
		return errEmptyCategory
	}
	if category == "." || category == ".." || strings.ContainsAny(category, `/\`) {
		return fmt.Errorf("category %q must be a single folder name", category)
	}
	return nil
}
