package arbiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL      = 30 * time.Second
	defaultRetryBackoff = 25 * time.Millisecond
)

// Deletes the lock only while it is still held by the caller's token.
var releaseLockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// Redis coordinates holders across processes with a token-owned key set via SET NX.
// The TTL bounds how long a crashed holder can block others.
type Redis struct {
	client  redis.UniversalClient
	logger  *slog.Logger
	prefix  string
	ttl     time.Duration
	backoff time.Duration
}

type RedisOption func(*Redis)

func WithLockTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

func WithRetryBackoff(backoff time.Duration) RedisOption {
	return func(r *Redis) { r.backoff = backoff }
}

func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = prefix }
}

func NewRedis(client redis.UniversalClient, logger *slog.Logger, opts ...RedisOption) *Redis {
	r := &Redis{
		client:  client,
		logger:  logger,
		prefix:  "reservation_lock:",
		ttl:     defaultLockTTL,
		backoff: defaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := r.prefix + key
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, lockKey, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
		}

		if ok {
			break
		}

		timer := time.NewTimer(r.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	released := false

	return func() {
		if released {
			return
		}
		released = true

		// The caller's context may already be canceled; release must still happen.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()

		err := releaseLockScript.Run(releaseCtx, r.client, []string{lockKey}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			r.logger.Error("failed to release reservation lock", "key", lockKey, "error", err)
		}
	}, nil
}
