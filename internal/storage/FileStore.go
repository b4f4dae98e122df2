package storage

import (
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
	"stampcard/internal/providers"
	"stampcard/internal/storage/interfaces"
	"sync"
)

const fileFormatVersion = 1

// fileEnvelope is the on-disk format of FileStore.
type fileEnvelope struct {
	Version int               `json:"version"`
	Items   map[string]string `json:"items"`
}

// FileStore keeps every item in memory and rewrites the whole file on each
// SetItem so that a write is durable once it returns.
type FileStore struct {
	mu         sync.Mutex
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	items      map[string]string
}

func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f := &FileStore{
		path:       path,
		compressor: compressor,
		logger:     logger,
		items:      make(map[string]string),
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FileStore) GetItem(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

func (f *FileStore) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.items[key]
	f.items[key] = value
	if err := f.save(); err != nil {
		if had {
			f.items[key] = prev
		} else {
			delete(f.items, key)
		}
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Close() error {
	f.compressor.Close()
	return nil
}

func (f *FileStore) save() error {
	jsonData, err := json.Marshal(fileEnvelope{Version: fileFormatVersion, Items: f.items})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

// load reads the store file. A missing file is an empty store; unreadable
// content is logged and treated as empty as well.
func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Store file %s is not readable, starting empty: %s", f.path, err)
		return nil
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(decompressedData, &envelope); err == nil && envelope.Items != nil {
		f.items = envelope.Items
		return nil
	}

	// Pre-envelope format: a bare {"key":"value"} object
	var items map[string]string
	if err := json.Unmarshal(decompressedData, &items); err != nil {
		f.logger.Warnf(providers.TypeApp, "Store file %s is malformed, starting empty: %s", f.path, err)
		return nil
	}
	if items == nil {
		f.logger.Warnf(providers.TypeApp, "Store file %s holds no items, starting empty", f.path)
		return nil
	}
	f.logger.Warnf(providers.TypeApp, "Migrated store file %s from bare map format", f.path)
	f.items = items
	return nil
}
