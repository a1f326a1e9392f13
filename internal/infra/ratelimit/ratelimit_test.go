package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketCapacity(t *testing.T) {
	bucket := NewTokenBucket(Config{Capacity: 5, RatePS: 1, RefillRate: time.Hour})
	defer bucket.Stop()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.True(t, bucket.Allow(ctx, "1.2.3.4"), "request %d", i+1)
	}
	assert.False(t, bucket.Allow(ctx, "1.2.3.4"))
	// 不同 key 各自計算
	assert.True(t, bucket.Allow(ctx, "5.6.7.8"))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(Config{Capacity: 2, RatePS: 20, RefillRate: 10 * time.Millisecond})
	defer bucket.Stop()
	ctx := context.Background()

	bucket.Allow(ctx, "k")
	bucket.Allow(ctx, "k")
	require.False(t, bucket.Allow(ctx, "k"))

	require.Eventually(t, func() bool { return bucket.Allow(ctx, "k") }, time.Second, 10*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	bucket := NewTokenBucket(DefaultConfig())
	bucket.Stop()
	bucket.Stop()
}

type fakeRedis struct {
	result int64
	err    error
	keys   []string
	args   []interface{}
}

func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.keys = keys
	f.args = args
	cmd := redis.NewCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(f.result)
	return cmd
}

func TestRedisTokenBucket(t *testing.T) {
	logger := zerolog.Nop()
	fr := &fakeRedis{result: 0}
	rb := NewRedisTokenBucket(fr, Config{Capacity: 3, RatePS: 0.5}, &logger)

	assert.False(t, rb.Allow(context.Background(), "login:1.2.3.4"))
	assert.Equal(t, []string{"virtualart:ratelimit:login:1.2.3.4"}, fr.keys)
	assert.Equal(t, 3, fr.args[0])
	assert.Equal(t, 0.5, fr.args[1])

	fr.result = 1
	assert.True(t, rb.Allow(context.Background(), "login:1.2.3.4"))

	fr.err = errors.New("connection refused")
	assert.True(t, rb.Allow(context.Background(), "login:1.2.3.4"))
}
