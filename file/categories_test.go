package file

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCategories(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"Landscapes", "Space", ".thumbnails", "tmp-import"} {
		if err := os.Mkdir(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(root, "loose.jpg"), "x")

	tests := []struct {
		name     string
		ignore   []string
		expected []string
	}{
		{
			name:     "no ignore patterns",
			ignore:   nil,
			expected: []string{".thumbnails", "Landscapes", "Space", "tmp-import"},
		},
		{
			name:     "hidden folders ignored",
			ignore:   []string{".*"},
			expected: []string{"Landscapes", "Space", "tmp-import"},
		},
		{
			name:     "several patterns",
			ignore:   []string{".*", "tmp-*"},
			expected: []string{"Landscapes", "Space"},
		},
		{
			name:     "brace pattern",
			ignore:   []string{"{Space,Landscapes}"},
			expected: []string{".thumbnails", "tmp-import"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Categories(root, tt.ignore)
			if err != nil {
				t.Fatalf("Categories() error = %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Categories() = %v; want %v", result, tt.expected)
			}
		})
	}
}

func TestCategories_MissingRoot(t *testing.T) {
	result, err := Categories(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Categories() = %v; want empty", result)
	}
}
