package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// File keeps one JSON entry per key under dir, named by the key's md5.
type File struct {
	dir string
	mu  sync.RWMutex
	now func() time.Time
}

type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = ".cache/stock-predictor"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &File{dir: dir, now: time.Now}, nil
}

func (f *File) GetBytes(ctx context.Context, key string) ([]byte, error) {
	f.mu.RLock()
	b, err := os.ReadFile(f.path(key))
	f.mu.RUnlock()
	if err != nil {
		return nil, ErrMiss
	}

	var e fileEntry
	if err := json.Unmarshal(b, &e); err != nil || e.Key != key {
		return nil, ErrMiss
	}
	if !f.now().Before(e.ExpiresAt) {
		f.mu.Lock()
		os.Remove(f.path(key))
		f.mu.Unlock()
		return nil, ErrMiss
	}
	return e.Data, nil
}

func (f *File) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	b, err := json.Marshal(fileEntry{Key: key, Data: value, ExpiresAt: f.now().Add(ttl)})
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return os.WriteFile(f.path(key), b, 0o644)
}

// CleanupExpired removes entries whose TTL has passed.
func (f *File) CleanupExpired() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return err
	}
	now := f.now()
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		p := filepath.Join(f.dir, de.Name())
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var e fileEntry
		if json.Unmarshal(b, &e) != nil || !now.Before(e.ExpiresAt) {
			os.Remove(p)
		}
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) path(key string) string {
	return filepath.Join(f.dir, fmt.Sprintf("%x.json", md5.Sum([]byte(key))))
}
