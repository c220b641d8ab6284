// Package storage provides the durable blob persistence behind the progress
// store: a single versioned key mapped to a JSON-serialized state snapshot.
package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// StateKey is the versioned namespace the progress state lives under.
// Bumping the version invalidates old persisted data instead of migrating it.
const StateKey = "questlog/progress/v2"

// StateFile is the versioned default file name for the file backend; the
// path plays the role of the namespace key there.
const StateFile = "progress.v2.json"

// Backend is a durable key/blob store holding the serialized progress state.
// Load returns (nil, nil) when nothing has been persisted yet. Callers treat
// every error as "state absent" — persistence is best-effort by design.
type Backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
}

// Memory is an in-process Backend used in tests and as the fallback when no
// durable storage is configured. FailWrites simulates an unavailable store.
type Memory struct {
	mu         sync.Mutex
	data       []byte
	FailWrites bool
	SaveCount  int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return os.ErrPermission
	}
	m.data = append([]byte(nil), data...)
	m.SaveCount++
	return nil
}

func (m *Memory) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// DefaultDataPath resolves the data file path in priority order:
// 1. QUESTLOG_DATA environment variable
// 2. $XDG_DATA_HOME/questlog/<file>
// 3. ~/.local/share/questlog/<file>
func DefaultDataPath(file string) (string, error) {
	if p := os.Getenv("QUESTLOG_DATA"); p != "" {
		return filepath.Join(p, file), EnsureDir(filepath.Join(p, file))
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "questlog", file)
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
