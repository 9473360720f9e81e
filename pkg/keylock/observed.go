package keylock

import (
	"context"
	"strings"
	"time"
)

// WaitObserver получает длительность ожидания блокировки по префиксу ключа
type WaitObserver interface {
	ObserveLockWait(prefix string, duration time.Duration)
}

// Observed Locker, измеряющий ожидание захвата. Префикс это часть ключа до первого ':'.
type Observed struct {
	next     Locker
	observer WaitObserver
	now      func() time.Time
}

// NewObserved оборачивает next
func NewObserved(next Locker, observer WaitObserver) *Observed {
	return &Observed{next: next, observer: observer, now: time.Now}
}

// Lock захватывает блокировку через next и записывает время ожидания
func (o *Observed) Lock(ctx context.Context, key string) (Unlock, error) {
	start := o.now()
	unlock, err := o.next.Lock(ctx, key)
	o.observer.ObserveLockWait(keyPrefix(key), o.now().Sub(start))
	return unlock, err
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
