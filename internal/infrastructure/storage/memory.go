package storage

import (
	"context"
	"io"
	"sync"
	"time"
)

// memoryStorage keeps uploaded objects in a map. Used when no object-storage
// endpoint is configured.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemory() Storage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.objects[objectName] = data
	m.mu.Unlock()
	return objectName, nil
}

func (m *memoryStorage) GetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "memory://" + objectName, nil
}

var _ Storage = (*memoryStorage)(nil)
