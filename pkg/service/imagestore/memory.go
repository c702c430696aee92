package imagestore

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
)

// memoryStore is an in-process image store for development and tests
type memoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory creates an in-memory image store
func NewMemory() interfaces.ImageStore {
	return &memoryStore{
		blobs: make(map[string][]byte),
	}
}

func (s *memoryStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	s.blobs[key] = copied
	return "mem://" + key, nil
}

func (s *memoryStore) Get(ctx context.Context, ref string) ([]byte, error) {
	key, ok := cutMemRef(ref)
	if !ok {
		return nil, goerr.New("not a memory reference", goerr.V("ref", ref))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.blobs[key]
	if !exists {
		return nil, goerr.New("image not found", goerr.V("ref", ref))
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func cutMemRef(ref string) (string, bool) {
	const scheme = "mem://"
	if len(ref) <= len(scheme) || ref[:len(scheme)] != scheme {
		return "", false
	}
	return ref[len(scheme):], true
}
