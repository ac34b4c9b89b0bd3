package blob

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the resource does not exist yet.
	ErrNotFound = errors.New("blob: not found")
	// ErrAlreadyExists is returned by Create when another writer created the resource first.
	ErrAlreadyExists = errors.New("blob: already exists")
	// ErrVersionMismatch is returned by Update when the expected version is no longer current.
	ErrVersionMismatch = errors.New("blob: version mismatch")
)

// Object is a resource's content together with its opaque version token.
type Object struct {
	Content []byte
	Version string
}

// Backend is a versioned key-value store offering atomic conditional writes.
// Any error not wrapping one of the package sentinels is a hard failure.
type Backend interface {
	// Fetch returns the current content and version, or ErrNotFound.
	Fetch(ctx context.Context, path string) (*Object, error)

	// Create writes a new resource and returns its version. It fails with
	// ErrAlreadyExists if the resource exists.
	Create(ctx context.Context, path string, content []byte, message string) (string, error)

	// Update replaces the resource if its version still equals expected and
	// returns the new version, or fails with ErrVersionMismatch.
	Update(ctx context.Context, path string, content []byte, expected string, message string) (string, error)
}
