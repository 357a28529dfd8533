package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File keeps one file per key under a directory. Writes go to a temporary
// file that is renamed into place.
type File struct {
	dir string
	mu  sync.Mutex
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: file: %w", err)
	}
	return &File{dir: dir}, nil
}

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

func (f *File) path(key string) string {
	return filepath.Join(f.dir, keyReplacer.Replace(key)+".json")
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: file: get %s: %w", key, err)
	}
	return data, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	return f.SetMulti(ctx, map[string][]byte{key: value})
}

// SetMulti stages every value in a temporary file before renaming any of
// them, so a failed write leaves the previous blobs untouched. Renames are
// not atomic as a group: if one fails, the ones before it stay committed.
func (f *File) SetMulti(ctx context.Context, entries map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := make(map[string]string, len(entries))
	cleanup := func() {
		for tmp := range staged {
			_ = os.Remove(tmp)
		}
	}
	for key, value := range entries {
		tmp, err := os.CreateTemp(f.dir, ".staged-*")
		if err != nil {
			cleanup()
			return fmt.Errorf("kv: file: stage %s: %w", key, err)
		}
		staged[tmp.Name()] = f.path(key)
		if _, err := tmp.Write(value); err != nil {
			_ = tmp.Close()
			cleanup()
			return fmt.Errorf("kv: file: stage %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			cleanup()
			return fmt.Errorf("kv: file: stage %s: %w", key, err)
		}
	}
	for tmp, target := range staged {
		if err := os.Rename(tmp, target); err != nil {
			cleanup()
			return fmt.Errorf("kv: file: commit %s: %w", target, err)
		}
		delete(staged, tmp)
	}
	return nil
}

func (f *File) Close() error { return nil }
