package locker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LocalLocker блокировка в пределах одного процесса (когда redis не настроен)
// ttl игнорируется: ключ держится до вызова Unlock
type LocalLocker struct {
	mu          sync.Mutex
	held        map[string]chan struct{}
	waitTimeout time.Duration
	observer    WaitObserver
}

// NewLocalLocker создает in-process блокировку
func NewLocalLocker(waitTimeout time.Duration, observer WaitObserver) *LocalLocker {
	if waitTimeout <= 0 {
		waitTimeout = defaultWaitTimeout
	}
	return &LocalLocker{
		held:        make(map[string]chan struct{}),
		waitTimeout: waitTimeout,
		observer:    observer,
	}
}

// Lock захватывает ключ, ожидая освобождения не дольше waitTimeout
func (l *LocalLocker) Lock(ctx context.Context, key string, _ time.Duration) (Unlock, error) {
	start := time.Now()
	timer := time.NewTimer(l.waitTimeout)
	defer timer.Stop()

	for {
		l.mu.Lock()
		released, busy := l.held[key]
		if !busy {
			ch := make(chan struct{})
			l.held[key] = ch
			l.mu.Unlock()

			if l.observer != nil {
				l.observer.ObserveLockWait(scopeOf(key), time.Since(start))
			}
			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(ch)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-released:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
	}
}
