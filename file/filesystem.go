package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
)

var (
	// ErrDestinationExists is returned instead of overwriting a wallpaper.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrNotRegular is returned when the source is a directory, symlink or device.
	ErrNotRegular = errors.New("source is not a regular file")

	errEmptyName = errors.New("file name is empty after sanitizing")
)

// PlacementError reports why a wallpaper could not be moved into place.
// The source file has not been moved unless Op is "verify": then the move
// itself reported success but its result could not be confirmed.
type PlacementError struct {
	Op          string
	Source      string
	Destination string
	Err         error
}

func (e *PlacementError) Error() string {
	if e.Op == "verify" {
		return fmt.Sprintf("cannot confirm %s -> %s: %v; the files may be in a partial state", e.Source, e.Destination, e.Err)
	}
	if e.Destination == "" {
		return fmt.Sprintf("cannot place %s (%s): %v", e.Source, e.Op, e.Err)
	}
	return fmt.Sprintf("cannot place %s -> %s (%s): %v", e.Source, e.Destination, e.Op, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

// Placer moves wallpapers into <Root>/<category>/<name><ext>.
type Placer struct {
	Root   string
	Logger zerolog.Logger
}

func NewPlacer(root string, logger zerolog.Logger) *Placer {
	return &Placer{Root: root, Logger: logger}
}

// Place moves source into the category folder under a sanitized name and
// returns the work path relative to Root, always slash separated.
// Directories created before a failing step are left in place.
func (p *Placer) Place(source, category, name string) (string, error) {
	if err := ValidateCategory(category); err != nil {
		return "", &PlacementError{Op: "category", Source: source, Err: err}
	}
	clean, _ := Sanitize(name)
	if clean == "" {
		return "", &PlacementError{Op: "name", Source: source, Err: errEmptyName}
	}

	fileName := clean + Extension(source)
	dir := filepath.Join(p.Root, category)
	dest := filepath.Join(dir, fileName)

	if err := CheckSource(source); err != nil {
		return "", &PlacementError{Op: "stat", Source: source, Destination: dest, Err: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &PlacementError{Op: "mkdir", Source: source, Destination: dest, Err: err}
	}
	if _, err := os.Lstat(dest); err == nil {
		return "", &PlacementError{Op: "move", Source: source, Destination: dest, Err: ErrDestinationExists}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", &PlacementError{Op: "stat", Source: source, Destination: dest, Err: err}
	}

	if err := moveFile(source, dest); err != nil {
		return "", &PlacementError{Op: "move", Source: source, Destination: dest, Err: err}
	}
	if err := verifyMoved(source, dest); err != nil {
		return "", &PlacementError{Op: "verify", Source: source, Destination: dest, Err: err}
	}

	p.Logger.Debug().Str("source", source).Str("destination", dest).Msg("wallpaper placed")
	return filepath.ToSlash(filepath.Join(category, fileName)), nil
}

// CheckSource fails unless path is an existing regular file.
func CheckSource(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return ErrNotRegular
	}
	return nil
}

func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return copyAndDelete(src, dst)
}

// copyAndDelete is the cross-device fallback. The copy is staged in a temp
// file next to dst so dst only ever appears complete.
func copyAndDelete(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	info, err := in.Stat()
	if err != nil {
		in.Close()
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp.*")
	if err != nil {
		in.Close()
		return fmt.Errorf("create temporary copy: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = io.Copy(tmp, in)
	in.Close()
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpPath, info.Mode().Perm())
	}
	if err == nil {
		err = os.Rename(tmpPath, dst)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("copy across devices: %w", err)
	}

	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

func verifyMoved(src, dst string) error {
	if _, err := os.Lstat(src); err == nil {
		return errors.New("source still exists after move")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("destination missing after move: %w", err)
	}
	return nil
}
