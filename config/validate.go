package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate reports every structural problem in the registry at once.
func (r *Registry) Validate() error {
	var result *multierror.Error

	switch {
	case strings.TrimSpace(r.Folder) == "":
		result = multierror.Append(result, fmt.Errorf("folder is empty"))
	case filepath.IsAbs(r.Folder):
		result = multierror.Append(result, fmt.Errorf("folder %q must be relative to the registry file", r.Folder))
	case escapes(r.Folder):
		result = multierror.Append(result, fmt.Errorf("folder %q points outside the registry directory", r.Folder))
	}

	for i, a := range r.Artists {
		if a == nil {
			result = multierror.Append(result, fmt.Errorf("artist #%d is empty", i+1))
			continue
		}
		if strings.TrimSpace(a.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("artist #%d has no name", i+1))
		}
	}

	return result.ErrorOrNil()
}

func escapes(folder string) bool {
	clean := filepath.Clean(folder)
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
