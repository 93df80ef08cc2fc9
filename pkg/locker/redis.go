package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix    = "spa:lock:"
	defaultPollInterval = 25 * time.Millisecond
	defaultWaitTimeout  = 5 * time.Second
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLocker блокировка на основе SET NX с токеном владельца
type RedisLocker struct {
	client       redis.Cmdable
	prefix       string
	pollInterval time.Duration
	waitTimeout  time.Duration
	observer     WaitObserver
}

// NewRedisLocker создает блокировку поверх redis клиента
func NewRedisLocker(client redis.Cmdable, waitTimeout time.Duration, observer WaitObserver) *RedisLocker {
	if waitTimeout <= 0 {
		waitTimeout = defaultWaitTimeout
	}
	return &RedisLocker{
		client:       client,
		prefix:       defaultKeyPrefix,
		pollInterval: defaultPollInterval,
		waitTimeout:  waitTimeout,
		observer:     observer,
	}
}

// Lock ждет освобождения ключа и захватывает его на ttl
// Возвращает ErrLockTimeout, если ключ не освободился за waitTimeout
func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error) {
	start := time.Now()
	fullKey := l.prefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.waitTimeout)
	defer cancel()

	for {
		ok, err := l.client.SetNX(waitCtx, fullKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: SetNX %s: %v", ErrLockBackend, fullKey, err)
		}
		if ok {
			if l.observer != nil {
				l.observer.ObserveLockWait(scopeOf(key), time.Since(start))
			}
			return l.release(fullKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-time.After(l.pollInterval):
		}
	}
}

func (l *RedisLocker) release(fullKey, token string) Unlock {
	return func() {
		// Отдельный контекст: освобождаем даже если запрос уже отменён
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.client.Eval(ctx, releaseScript, []string{fullKey}, token).Err()
	}
}
