package locker

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить до истечения времени ожидания
	ErrLockTimeout = errors.New("locker: lock wait timeout")

	// ErrLockBackend возвращается при ошибках хранилища блокировок
	ErrLockBackend = errors.New("locker: backend error")
)

// Unlock освобождает ранее полученную блокировку
type Unlock func()

// Locker именованная блокировка (ключ -> владелец)
// Реализации: RedisLocker (несколько инстансов сервиса) и LocalLocker (один процесс)
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// WaitObserver получает время ожидания блокировки (для метрик)
type WaitObserver interface {
	ObserveLockWait(scope string, duration time.Duration)
}

// scopeOf возвращает префикс ключа до первого ':' (bundle, slot)
func scopeOf(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
