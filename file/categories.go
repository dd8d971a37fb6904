package file

import (
	"errors"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Categories lists the category folders directly below root, in directory
// order, leaving out names matched by any of the ignore globs. A missing
// root yields no categories.
func Categories(root string, ignore []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var categories []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ignored, err := matchesAny(ignore, e.Name())
		if err != nil {
			return nil, err
		}
		if !ignored {
			categories = append(categories, e.Name())
		}
	}
	return categories, nil
}

func matchesAny(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
