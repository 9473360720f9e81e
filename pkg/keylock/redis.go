package keylock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript удаляет ключ, только если он все еще принадлежит нашему токену
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования неудачных освобождений
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisLocker распределенная блокировка на SET NX PX.
// TTL ограничивает время удержания, если процесс упал, не отпустив ключ.
type RedisLocker struct {
	client     redis.Cmdable
	prefix     string
	ttl        time.Duration
	retryDelay time.Duration
	maxDelay   time.Duration
	logger     Logger
}

// NewRedisLocker создает RedisLocker
func NewRedisLocker(client redis.Cmdable, prefix string, ttl time.Duration, logger Logger) *RedisLocker {
	return &RedisLocker{
		client:     client,
		prefix:     prefix,
		ttl:        ttl,
		retryDelay: 5 * time.Millisecond,
		maxDelay:   100 * time.Millisecond,
		logger:     logger,
	}
}

// Lock пытается поставить ключ, пока не получится или не отменится контекст
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()
	delay := l.retryDelay

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Join(ErrLockTimeout, ctxErr)
			}
			return nil, fmt.Errorf("keylock: redis SETNX %s: %w", fullKey, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrLockTimeout, ctx.Err())
		case <-timer.C:
		}
		if delay *= 2; delay > l.maxDelay {
			delay = l.maxDelay
		}
	}

	return func() {
		// Отпускаем даже если исходный контекст уже отменен
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		l.release(releaseCtx, fullKey, token)
	}, nil
}

func (l *RedisLocker) release(ctx context.Context, fullKey, token string) {
	deleted, err := unlockScript.Run(ctx, l.client, []string{fullKey}, token).Int64()
	switch {
	case err != nil:
		l.logger.Error("keylock: failed to release %s, it stays locked until ttl %s expires: %v", fullKey, l.ttl, err)
	case deleted == 0:
		l.logger.Warn("keylock: %s expired before release, ttl %s is shorter than the critical section", fullKey, l.ttl)
	}
}
