package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// File is a Backend persisted as a single JSON object on disk, one property
// per key. Writes go through a temp file and rename so a crash mid-write
// never leaves a truncated data file behind.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFile loads the data file at path, creating an empty store if the file
// does not exist. A file that fails to parse is treated as empty rather
// than fatal, matching the load-with-defaults behavior of the store.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.data = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return f.flush()
}

func (f *File) Close() error { return nil }

// flush writes the whole map back to disk. Caller must hold f.mu.
func (f *File) flush() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".peerlearn-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.path)
}
