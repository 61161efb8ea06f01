package ratelimit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisLimiter shares attempt counters across instances through Redis
// hashes, so a distributed deployment enforces one global limit per key.
// Counter bumps use HIncrBy, which keeps concurrent requests from
// under-counting. Redis being unreachable fails open: this layer guards
// availability and must never take logins down with it.
type RedisLimiter struct {
	client    *redis.Client
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration)
	onLockout OnLockoutFunc
}

func NewRedisLimiter(client *redis.Client, onLockout OnLockoutFunc) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		now:       time.Now,
		sleep:     sleepContext,
		onLockout: onLockout,
	}
}

func (l *RedisLimiter) Check(ctx context.Context, key string, p Policy) Decision {
	redisKey := redisKeyPrefix + key
	now := l.now()

	data, err := l.client.HGetAll(ctx, redisKey).Result()
	if err != nil {
		slog.Warn("rate limit store unavailable, allowing request", "key", key, "error", err)
		return Decision{Allowed: true}
	}

	attempts := atoiField(data, "attempts")
	lockouts := atoiField(data, "lockouts")

	if raw := data["lockout_until"]; raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
			until := time.Unix(unix, 0)
			if until.After(now) {
				return Decision{Attempts: attempts, RetryAfter: until.Sub(now)}
			}
		}
	}

	if raw := data["last_attempt"]; raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
			if now.Sub(time.Unix(unix, 0)) > p.Window {
				attempts = 0
				if err := l.client.HSet(ctx, redisKey, "attempts", 0).Err(); err != nil {
					slog.Warn("rate limit window reset failed", "key", key, "error", err)
				}
			}
		}
	}

	delay := delayFor(attempts)

	count, err := l.client.HIncrBy(ctx, redisKey, "attempts", 1).Result()
	if err != nil {
		slog.Warn("rate limit increment failed, allowing request", "key", key, "error", err)
		return Decision{Allowed: true}
	}
	newAttempts := int(count)

	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey, "last_attempt", now.Unix())
		pipe.Expire(ctx, redisKey, 24*time.Hour)
		return nil
	})
	if err != nil {
		slog.Warn("rate limit bookkeeping failed", "key", key, "error", err)
	}

	if p.MaxAttempts > 0 && newAttempts >= p.MaxAttempts && newAttempts%p.MaxAttempts == 0 {
		lockedFor := lockoutDurationFor(lockouts + 1)
		until := now.Add(lockedFor)
		_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, redisKey, "lockout_until", until.Unix())
			pipe.HIncrBy(ctx, redisKey, "lockouts", 1)
			pipe.Expire(ctx, redisKey, lockedFor+24*time.Hour)
			return nil
		})
		if err != nil {
			slog.Warn("rate limit lockout write failed", "key", key, "error", err)
		}
		if l.onLockout != nil {
			l.onLockout(key, newAttempts, until)
		}
		return Decision{Attempts: newAttempts, RetryAfter: lockedFor}
	}

	l.sleep(ctx, delay)

	return Decision{Allowed: true, Attempts: newAttempts, Delay: delay}
}

func (l *RedisLimiter) Clear(ctx context.Context, key string) {
	if err := l.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		slog.Warn("rate limit clear failed", "key", key, "error", err)
	}
}

func atoiField(data map[string]string, field string) int {
	if raw, ok := data[field]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return 0
}
