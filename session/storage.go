package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStorage keeps the session slot in process memory. Useful for tests
// and for callers that manage durability themselves.
type MemoryStorage struct {
	mu      sync.Mutex
	data    []byte
	present bool
}

// NewMemoryStorage returns an empty in-memory slot.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Read implements Storage.
func (m *MemoryStorage) Read(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return nil, ErrNoSession
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Write implements Storage.
func (m *MemoryStorage) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.present = true
	return nil
}

// Delete implements Storage.
func (m *MemoryStorage) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.present = false
	return nil
}

// FileStorage persists the session slot as a JSON file, the client-local
// equivalent of the storefront's single localStorage record. The file is
// written 0600 since it holds bearer tokens.
type FileStorage struct {
	path string
}

// NewFileStorage returns a file-backed slot at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Read implements Storage.
func (f *FileStorage) Read(context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write implements Storage.
func (f *FileStorage) Write(_ context.Context, data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Delete implements Storage.
func (f *FileStorage) Delete(context.Context) error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
