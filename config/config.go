package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound      = errors.New("registry not found")
	ErrAlreadyExists = errors.New("registry already exists")
)

// ParseError is returned when the registry file exists but is not a usable
// registry document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse registry %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Store reads and writes one registry file. Concurrent writers are not
// coordinated; the last Save wins.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{Path: path}
}

// Dir is the directory the registry's folder is resolved against.
func (s *Store) Dir() string {
	return filepath.Dir(s.Path)
}

// Root returns the wallpaper folder of reg on disk.
func (s *Store) Root(reg *Registry) string {
	return filepath.Join(s.Dir(), reg.Folder)
}

// Initialize writes a fresh registry and creates its wallpaper folder. An
// existing registry file is never touched.
func (s *Store) Initialize() (*Registry, error) {
	if _, err := os.Lstat(s.Path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, s.Path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	reg := NewRegistry()
	data, err := encode(reg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.Root(reg), 0755); err != nil {
		return nil, fmt.Errorf("create wallpaper folder: %w", err)
	}

	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, s.Path)
	}
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(s.Path)
		return nil, fmt.Errorf("write registry: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(s.Path)
		return nil, fmt.Errorf("write registry: %w", err)
	}

	return reg, nil
}

func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (run \"papr --init\" first)", ErrNotFound, s.Path)
	}
	if err != nil {
		return nil, err
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, &ParseError{Path: s.Path, Err: err}
	}
	if err := reg.Validate(); err != nil {
		return nil, &ParseError{Path: s.Path, Err: err}
	}

	return &reg, nil
}

// Save replaces the registry file with reg. The document is encoded fully
// before anything is written and lands via rename, so readers see either
// the old or the new file.
func (s *Store) Save(reg *Registry) error {
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid registry: %w", err)
	}
	data, err := encode(reg)
	if err != nil {
		return err
	}

	target := s.target()
	mode := fs.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temporary registry: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpPath, mode)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temporary registry: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace registry: %w", err)
	}
	return nil
}

// target is the file Save replaces: the end of the symlink chain when
// Path is a link, so the link itself stays in place.
func (s *Store) target() string {
	if resolved, err := filepath.EvalSymlinks(s.Path); err == nil {
		return resolved
	}
	return s.Path
}

func encode(reg *Registry) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(reg); err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	return buf.Bytes(), nil
}
