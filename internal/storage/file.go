package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// File is a Backend persisting the state blob as a single JSON file.
// The filesystem is abstracted so tests can run against an in-memory FS.
type File struct {
	fs   afero.Fs
	path string
}

// NewFile creates a file Backend at path on the OS filesystem.
func NewFile(path string) *File {
	return NewFileFS(afero.NewOsFs(), path)
}

// NewFileFS creates a file Backend on an explicit filesystem.
func NewFileFS(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

func (f *File) Load() ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return data, nil
}

func (f *File) Save(data []byte) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := afero.WriteFile(f.fs, f.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (f *File) Delete() error {
	if err := f.fs.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}
