package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local currentTokens = tonumber(bucket[1])
local lastRefill = tonumber(bucket[2])

if currentTokens == nil then
	currentTokens = capacity
	lastRefill = now
end

local elapsedSeconds = (now - lastRefill) / 1000000000
currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

local allowed = 0
if currentTokens >= 1 then
	currentTokens = currentTokens - 1
	allowed = 1
end

redis.call('HSET', key, 'tokens', currentTokens, 'last_refill', now)
redis.call('EXPIRE', key, 60)
return allowed
`

// RedisTokenBucket 多個 instance 共用同一組 bucket
type RedisTokenBucket struct {
	cfg    Config
	client RedisClient
	prefix string
	logger *zerolog.Logger
}

func NewRedisTokenBucket(client RedisClient, cfg Config, logger *zerolog.Logger) *RedisTokenBucket {
	return &RedisTokenBucket{
		cfg:    cfg.normalize(),
		client: client,
		prefix: "virtualart:ratelimit:",
		logger: logger,
	}
}

var _ Limiter = (*RedisTokenBucket)(nil)

// Allow redis 失敗時放行
func (r *RedisTokenBucket) Allow(ctx context.Context, key string) bool {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{r.prefix + key},
		r.cfg.Capacity,
		r.cfg.RatePS,
		time.Now().UnixNano(),
	).Int64()
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("rate limit script failed")
		return true
	}
	return result == 1
}
