package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
	"github.com/BarkinBalci/launch-tracker/internal/config"
)

const testPath = "launches.csv"

func newTestBackend(t *testing.T) (*Backend, *goredis.Client) {
	t.Helper()
	server := miniredis.RunT(t)

	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// A second connection for writes that race the backend's transaction.
	rival := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rival.Close() })

	return NewBackendWithClient(client, "launchlog-test:", zap.NewNop()), rival
}

func TestBackend_Key(t *testing.T) {
	b := NewBackendWithClient(nil, "launchlog:", zap.NewNop())
	assert.Equal(t, "launchlog:launches.csv", b.key("launches.csv"))
}

func TestNewBackend(t *testing.T) {
	server := miniredis.RunT(t)

	b, err := NewBackend(context.Background(), config.Redis{Addr: server.Addr(), Prefix: "launchlog:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	_, err = b.Fetch(context.Background(), testPath)
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestNewBackend_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewBackend(context.Background(), config.Redis{Addr: addr}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping Redis")
}

func TestBackend_RoundTrip(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	_, err := b.Fetch(ctx, testPath)
	assert.ErrorIs(t, err, blob.ErrNotFound)

	v1, err := b.Create(ctx, testPath, []byte("a\n"), "create")
	require.NoError(t, err)

	_, err = b.Create(ctx, testPath, []byte("b\n"), "create")
	assert.ErrorIs(t, err, blob.ErrAlreadyExists)

	v2, err := b.Update(ctx, testPath, []byte("a\nb\n"), v1, "update")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	_, err = b.Update(ctx, testPath, []byte("stale\n"), v1, "update")
	assert.ErrorIs(t, err, blob.ErrVersionMismatch)

	obj, err := b.Fetch(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(obj.Content))
	assert.Equal(t, v2, obj.Version)
}

func TestBackend_Update_Missing(t *testing.T) {
	b, _ := newTestBackend(t)

	_, err := b.Update(context.Background(), testPath, []byte("a\n"), "v1", "update")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestBackend_Update_RivalWriteBetweenWatchAndExec(t *testing.T) {
	b, rival := newTestBackend(t)
	ctx := context.Background()

	v1, err := b.Create(ctx, testPath, []byte("a\n"), "create")
	require.NoError(t, err)

	b.watched = func(key string) {
		require.NoError(t, rival.HSet(ctx, key, fieldContent, "a\nrival\n", fieldVersion, "rival-version").Err())
	}

	_, err = b.Update(ctx, testPath, []byte("a\nmine\n"), v1, "update")
	assert.ErrorIs(t, err, blob.ErrVersionMismatch)

	b.watched = nil
	obj, err := b.Fetch(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "a\nrival\n", string(obj.Content))
	assert.Equal(t, "rival-version", obj.Version)
}

func TestBackend_Create_RivalWriteBetweenWatchAndExec(t *testing.T) {
	b, rival := newTestBackend(t)
	ctx := context.Background()

	b.watched = func(key string) {
		require.NoError(t, rival.HSet(ctx, key, fieldContent, "rival\n", fieldVersion, "rival-version").Err())
	}

	_, err := b.Create(ctx, testPath, []byte("mine\n"), "create")
	assert.ErrorIs(t, err, blob.ErrAlreadyExists)

	b.watched = nil
	obj, err := b.Fetch(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "rival\n", string(obj.Content))
}
