package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrSlotEmpty is returned by Get when nothing was ever written under the key.
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrUnknownBackend is returned for a backend name that is not supported.
	ErrUnknownBackend = errors.New("unknown store backend")
)

const tempFilePrefix = "quicknotes-tmp-"

// Slot is a durable named value. The store keeps the whole serialized
// collection under a single key and overwrites it after every mutation.
type Slot interface {
	// Get returns the value stored under key, or ErrSlotEmpty.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// OpenSlot builds the slot and codec described by the store configuration.
func OpenSlot(ctx context.Context, cfg StoreConfig) (Slot, Codec, error) {
	codec, err := CodecFor(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Backend {
	case "", "file":
		slot, err := newFileSlot(cfg.Path, codec.Ext())
		if err != nil {
			return nil, nil, err
		}
		return slot, codec, nil
	case "sqlite":
		path := cfg.Path
		if path != ":memory:" && filepath.Ext(path) == "" {
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, nil, fmt.Errorf("could not create store directory: %w", err)
			}
			path = filepath.Join(path, "quicknotes.db")
		}
		slot, err := openSQLiteSlot(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return slot, codec, nil
	case "memory":
		return newMemorySlot(), codec, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// memorySlot keeps values in process memory. Used by tests and --backend memory.
type memorySlot struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemorySlot() *memorySlot {
	return &memorySlot{values: make(map[string][]byte)}
}

func (s *memorySlot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *memorySlot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *memorySlot) Close() error { return nil }

// fileSlot stores each key as <dir>/<key><ext>.
type fileSlot struct {
	dir string
	ext string
}

func newFileSlot(dir, ext string) (*fileSlot, error) {
	if dir == "" {
		return nil, errors.New("file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create store directory: %w", err)
	}
	return &fileSlot{dir: dir, ext: ext}, nil
}

func (s *fileSlot) path(key string) string {
	return filepath.Join(s.dir, key+s.ext)
}

func (s *fileSlot) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *fileSlot) Set(_ context.Context, key string, value []byte) error {
	if strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid slot key %q", key)
	}
	return writeFileAtomic(s.path(key), value, 0644)
}

func (s *fileSlot) Close() error { return nil }

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(name, perm)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := os.Rename(name, filename); err != nil {
		return fmt.Errorf("replace %s: %w", filename, err)
	}
	return nil
}
