package memory

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
)

// Backend is an in-process blob.Backend. Versions are content hashes salted
// with a revision counter so rewriting identical bytes still moves the version.
type Backend struct {
	mu       sync.Mutex
	objects  map[string]*entry
	revision uint64
}

type entry struct {
	content []byte
	version string
}

// NewBackend creates an empty in-memory backend
func NewBackend() *Backend {
	return &Backend{objects: make(map[string]*entry)}
}

func (b *Backend) Fetch(_ context.Context, path string) (*blob.Object, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.objects[path]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return &blob.Object{Content: clone(e.content), Version: e.version}, nil
}

func (b *Backend) Create(_ context.Context, path string, content []byte, _ string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.objects[path]; ok {
		return "", blob.ErrAlreadyExists
	}
	return b.put(path, content), nil
}

func (b *Backend) Update(_ context.Context, path string, content []byte, expected string, _ string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.objects[path]
	if !ok {
		return "", blob.ErrNotFound
	}
	if e.version != expected {
		return "", blob.ErrVersionMismatch
	}
	return b.put(path, content), nil
}

// Content returns the stored bytes, or nil when absent.
func (b *Backend) Content(path string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.objects[path]; ok {
		return clone(e.content)
	}
	return nil
}

// put must be called with mu held.
func (b *Backend) put(path string, content []byte) string {
	b.revision++
	h := sha256.New()
	h.Write(content)
	h.Write(binary.BigEndian.AppendUint64(nil, b.revision))
	version := hex.EncodeToString(h.Sum(nil))

	b.objects[path] = &entry{content: clone(content), version: version}
	return version
}

func clone(p []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
