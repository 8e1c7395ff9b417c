package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/krcglobal/gbms/internal/log"
)

// DefaultFileName is the storage file name inside the GBMS home directory.
const DefaultFileName = "storage.json"

// FileStore persists values as a single JSON object on disk.
//
// The file is re-read on every operation so that separate invocations of the
// CLI observe each other's writes, and rewritten atomically on every
// mutation. Concurrent writers in different processes can still lose updates.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewFileStore creates a store backed by path. The file and its directory
// are created lazily on the first write.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: log.OrDefault(logger),
	}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get implements Store.
func (f *FileStore) Get(key string, dst any) bool {
	f.mu.Lock()
	values, ok := f.load()
	f.mu.Unlock()
	if !ok {
		return false
	}

	raw, found := values[key]
	if !found {
		return false
	}
	return decode(f.logger, key, raw, dst)
}

// Set implements Store.
func (f *FileStore) Set(key string, v any) bool {
	raw, ok := encode(f.logger, key, v)
	if !ok {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, ok := f.load()
	if !ok {
		return false
	}
	values[key] = raw
	return f.save(values)
}

// Remove implements Store.
func (f *FileStore) Remove(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, ok := f.load()
	if !ok {
		return false
	}
	if _, found := values[key]; !found {
		return true
	}
	delete(values, key)
	return f.save(values)
}

// Clear implements Store.
func (f *FileStore) Clear() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		f.logger.Warn("storage: failed to clear", "path", f.path, "error", err)
		return false
	}
	return true
}

// Keys implements Store.
func (f *FileStore) Keys() []string {
	f.mu.Lock()
	values, ok := f.load()
	f.mu.Unlock()
	if !ok {
		return nil
	}
	return sortedKeys(values)
}

// load reads the whole file. A missing file is an empty store; a corrupt
// file is logged and reported as a failure.
func (f *FileStore) load() (map[string]json.RawMessage, bool) {
	values := make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, true
	}
	if err != nil {
		f.logger.Warn("storage: failed to read", "path", f.path, "error", err)
		return nil, false
	}
	if len(data) == 0 {
		return values, true
	}

	if err := json.Unmarshal(data, &values); err != nil {
		f.logger.Warn("storage: corrupt storage file", "path", f.path, "error", err)
		return nil, false
	}
	return values, true
}

func (f *FileStore) save(values map[string]json.RawMessage) bool {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		f.logger.Warn("storage: failed to encode file", "path", f.path, "error", err)
		return false
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		f.logger.Warn("storage: failed to create directory", "dir", dir, "error", err)
		return false
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		f.logger.Warn("storage: failed to create temp file", "dir", dir, "error", err)
		return false
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		f.logger.Warn("storage: failed to write", "path", tmpName, "error", err)
		return false
	}
	if err := tmp.Chmod(0o600); err != nil {
		f.logger.Debug("storage: chmod failed", "path", tmpName, "error", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		f.logger.Warn("storage: failed to close temp file", "path", tmpName, "error", err)
		return false
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		f.logger.Warn("storage: failed to replace storage file", "path", f.path, "error", err)
		return false
	}
	return true
}
