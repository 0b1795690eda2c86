package cache

import (
	"context"
	"testing"
	"time"

	"github.com/erp/saleproject/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestIdempotencyStoreFactory_CreateStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory by default", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.IdempotencyConfig{TTL: time.Hour}, unreachableRedis)

		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("redis falls back to memory", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Store: StoreRedis}, unreachableRedis,
			WithLogger(zap.NewNop()))

		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("redis required", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Store: StoreRedis}, unreachableRedis,
			WithInMemoryFallback(false))

		_, err := f.CreateStore(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis idempotency store unavailable")
	})

	t.Run("unknown store", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Store: "memcached"}, unreachableRedis)

		_, err := f.CreateStore(ctx)
		assert.EqualError(t, err, `unknown idempotency store "memcached"`)
	})
}
