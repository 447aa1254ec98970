package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	limiter := New(client, 2, time.Minute)
	ctx := context.Background()

	t.Run("AllowsUpToLimit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			ok, err := limiter.Allow(ctx, "POST:/api/bookings:10.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok)
		}

		ok, err := limiter.Allow(ctx, "POST:/api/bookings:10.0.0.1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		ok, err := limiter.Allow(ctx, "POST:/api/bookings:10.0.0.2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		assert.Equal(t, time.Minute, s.TTL("salon:rate_limit:POST:/api/bookings:10.0.0.1"))

		s.FastForward(time.Minute + time.Second)

		ok, err := limiter.Allow(ctx, "POST:/api/bookings:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestLimiterWithoutClient(t *testing.T) {
	_, err := New(nil, 1, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}
