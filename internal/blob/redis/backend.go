package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
	"github.com/BarkinBalci/launch-tracker/internal/config"
)

const (
	fieldContent = "content"
	fieldVersion = "version"
	fieldMessage = "message"
)

// Backend keeps each blob in a Redis hash and guards writes with
// WATCH/MULTI optimistic transactions.
type Backend struct {
	client *goredis.Client
	prefix string
	// watched runs after the key is watched and read, before the transaction.
	watched func(key string)
	log     *zap.Logger
}

// NewBackend connects to Redis and verifies the connection
func NewBackend(ctx context.Context, cfg config.Redis, log *zap.Logger) (*Backend, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info("Redis store configured",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB))

	return NewBackendWithClient(client, cfg.Prefix, log), nil
}

// NewBackendWithClient wraps an existing client
func NewBackendWithClient(client *goredis.Client, prefix string, log *zap.Logger) *Backend {
	return &Backend{client: client, prefix: prefix, log: log}
}

func (b *Backend) key(path string) string {
	return b.prefix + path
}

func (b *Backend) Fetch(ctx context.Context, path string) (*blob.Object, error) {
	values, err := b.client.HGetAll(ctx, b.key(path)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from Redis: %w", path, err)
	}
	version, ok := values[fieldVersion]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return &blob.Object{Content: []byte(values[fieldContent]), Version: version}, nil
}

func (b *Backend) Create(ctx context.Context, path string, content []byte, message string) (string, error) {
	key := b.key(path)
	version := uuid.NewString()

	err := b.client.Watch(ctx, func(tx *goredis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return blob.ErrAlreadyExists
		}
		b.onWatched(key)
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldContent, content, fieldVersion, version, fieldMessage, message)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return version, nil
	case errors.Is(err, blob.ErrAlreadyExists), errors.Is(err, goredis.TxFailedErr):
		return "", fmt.Errorf("%w: %s", blob.ErrAlreadyExists, path)
	default:
		return "", fmt.Errorf("failed to create %s in Redis: %w", path, err)
	}
}

func (b *Backend) Update(ctx context.Context, path string, content []byte, expected string, message string) (string, error) {
	key := b.key(path)
	version := uuid.NewString()

	err := b.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.HGet(ctx, key, fieldVersion).Result()
		if errors.Is(err, goredis.Nil) {
			return blob.ErrNotFound
		}
		if err != nil {
			return err
		}
		if current != expected {
			return blob.ErrVersionMismatch
		}
		b.onWatched(key)
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldContent, content, fieldVersion, version, fieldMessage, message)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return version, nil
	case errors.Is(err, blob.ErrNotFound):
		return "", err
	case errors.Is(err, blob.ErrVersionMismatch), errors.Is(err, goredis.TxFailedErr):
		return "", fmt.Errorf("%w: %s", blob.ErrVersionMismatch, path)
	default:
		return "", fmt.Errorf("failed to update %s in Redis: %w", path, err)
	}
}

func (b *Backend) onWatched(key string) {
	if b.watched != nil {
		b.watched(key)
	}
}

// Close releases the Redis connection pool
func (b *Backend) Close() error {
	return b.client.Close()
}
