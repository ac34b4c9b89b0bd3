// Package backend selects the blob backend named in the configuration.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
	"github.com/BarkinBalci/launch-tracker/internal/blob/github"
	"github.com/BarkinBalci/launch-tracker/internal/blob/memory"
	"github.com/BarkinBalci/launch-tracker/internal/blob/redis"
	"github.com/BarkinBalci/launch-tracker/internal/blob/s3"
	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

// CloseFunc releases backend resources. It is never nil.
type CloseFunc func() error

func noClose() error { return nil }

// Open creates the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (blob.Backend, CloseFunc, error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, nil, err
	}
	log = log.With(zap.String("backend", cfg.Store.Backend))

	switch cfg.Store.Backend {
	case "memory":
		log.Warn("Using the in-memory store; launches are lost on restart")
		return memory.NewBackend(), noClose, nil
	case "github":
		b, err := github.NewBackend(cfg.GitHub, log)
		if err != nil {
			return nil, nil, err
		}
		return b, noClose, nil
	case "s3":
		b, err := s3.NewBackend(ctx, cfg.S3, log)
		if err != nil {
			return nil, nil, err
		}
		return b, noClose, nil
	case "redis":
		b, err := redis.NewBackend(ctx, cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

// OpenStore opens the configured backend and wraps it in a launch log store.
func OpenStore(ctx context.Context, cfg *config.Config, observer store.Observer, log *zap.Logger) (*store.Store, CloseFunc, error) {
	b, closeFn, err := Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store backend: %w", cfg.Store.Backend, err)
	}

	s := store.NewStore(b, store.Config{
		Path:        cfg.Store.Path,
		MaxAttempts: cfg.Store.MaxAttempts,
		Backoff:     cfg.Store.Backoff,
		Observer:    observer,
	}, log)

	log.Info("Launch log store ready",
		zap.String("backend", cfg.Store.Backend),
		zap.String("path", s.Path()))

	return s, closeFn, nil
}
