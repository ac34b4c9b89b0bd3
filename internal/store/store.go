package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = time.Second
)

// Config configures the launch log store
type Config struct {
	Path        string
	MaxAttempts int
	Backoff     time.Duration
	Observer    Observer
}

// Snapshot is the whole log resource as last read.
type Snapshot struct {
	Content []byte
	// Version is empty when the resource does not exist yet.
	Version string
	Exists  bool
}

// Store appends launch records to a single CSV resource held by a
// versioned blob backend. Concurrent writers are reconciled only by the
// backend's compare-and-swap; the store holds no locks.
type Store struct {
	backend     blob.Backend
	path        string
	maxAttempts int
	backoff     time.Duration
	observer    Observer
	sleep       func(time.Duration)
	log         *zap.Logger
}

// NewStore creates a new launch log store
func NewStore(backend blob.Backend, cfg Config, log *zap.Logger) *Store {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	observer := cfg.Observer
	if observer == nil {
		observer = NewLogObserver(log)
	}

	return &Store{
		backend:     backend,
		path:        cfg.Path,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		observer:    observer,
		sleep:       time.Sleep,
		log:         log,
	}
}

// Path returns the resource path the store writes to
func (s *Store) Path() string {
	return s.path
}

// Append adds exactly one row for rec to the end of the log. A version
// conflict restarts the read-modify-write after a fixed backoff, up to the
// configured number of attempts; any other backend error fails at once.
// The returned error is always an *AppendError.
func (s *Store) Append(ctx context.Context, rec domain.LaunchRecord) error {
	row, err := EncodeRow(rec.Fields())
	if err != nil {
		return &AppendError{Kind: KindHardError, Err: err}
	}
	message := fmt.Sprintf("Log: %s by %s", rec.Retailer, rec.Approver)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		start := time.Now()
		created, err := s.tryAppend(ctx, row, message)

		signal := Attempt{
			Path:        s.path,
			Number:      attempt,
			MaxAttempts: s.maxAttempts,
			Created:     created,
			Duration:    time.Since(start),
			Err:         err,
		}

		switch {
		case err == nil:
			signal.Outcome = OutcomeSuccess
			s.observer.ObserveAttempt(signal)
			return nil

		case isConflict(err):
			signal.Outcome = OutcomeConflict
			s.observer.ObserveAttempt(signal)
			if attempt < s.maxAttempts {
				s.sleep(s.backoff)
			}

		default:
			signal.Outcome = OutcomeHardError
			s.observer.ObserveAttempt(signal)
			return &AppendError{Kind: KindHardError, Attempts: attempt, Err: err}
		}
	}

	return &AppendError{Kind: KindConflictExhausted, Attempts: s.maxAttempts, Err: ErrConflictExhausted}
}

// tryAppend performs one fetch/modify/conditional-write round.
func (s *Store) tryAppend(ctx context.Context, row []byte, message string) (bool, error) {
	obj, err := s.backend.Fetch(ctx, s.path)
	if errors.Is(err, blob.ErrNotFound) {
		content := appendRow(HeaderRow(), row)
		if _, err := s.backend.Create(ctx, s.path, content, message); err != nil {
			return true, err
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch %s: %w", s.path, err)
	}

	content := appendRow(obj.Content, row)
	if _, err := s.backend.Update(ctx, s.path, content, obj.Version, message); err != nil {
		return false, err
	}
	return false, nil
}

// Snapshot reads the resource as-is. A missing resource is reported as
// just the header row with Exists unset.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	obj, err := s.backend.Fetch(ctx, s.path)
	if errors.Is(err, blob.ErrNotFound) {
		return &Snapshot{Content: HeaderRow()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.path, err)
	}
	return &Snapshot{Content: obj.Content, Version: obj.Version, Exists: true}, nil
}

// Records returns every row of the log in file order.
func (s *Store) Records(ctx context.Context) ([]domain.LaunchRecord, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(snap.Content)
}

// Replace overwrites the whole log, conditioned on expectedVersion still
// being current. An empty expectedVersion means the resource must not
// exist yet. Stale versions fail with ErrConflict and are not retried.
func (s *Store) Replace(ctx context.Context, content []byte, expectedVersion string) (string, error) {
	if err := ValidateLog(content); err != nil {
		return "", err
	}
	content = appendRow(content, nil)

	var (
		version string
		err     error
	)
	if expectedVersion == "" {
		version, err = s.backend.Create(ctx, s.path, content, "Edit: launch log")
	} else {
		version, err = s.backend.Update(ctx, s.path, content, expectedVersion, "Edit: launch log")
	}
	if isConflict(err) {
		return "", fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	s.log.Info("Launch log replaced",
		zap.String("path", s.path),
		zap.String("previous_version", expectedVersion),
		zap.String("version", version))

	return version, nil
}
