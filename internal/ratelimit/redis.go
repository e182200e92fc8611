package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter is a fixed window counter shared by every instance.
// A nil limiter allows everything, and so does an unreachable redis.
type RedisLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
	prefix string
	script *redis.Script
}

func NewRedisLimiter(client redis.Scripter, limit int, window time.Duration, prefix string) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		script: redis.NewScript(rateLimitScript),
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	if l.limit <= 0 || l.window <= 0 || key == "" {
		return true
	}
	redisKey := key
	if l.prefix != "" {
		redisKey = l.prefix + ":" + key
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{redisKey}, ttl, l.limit).Int64()
	if err != nil {
		log.Debug().Err(err).Str("key", redisKey).Msg("rate limiter unavailable, allowing")
		return true
	}
	return allowed == 1
}
