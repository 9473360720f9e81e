// Package keylock сериализует критические секции по строковому ключу.
package keylock

import (
	"context"
	"errors"
	"sync"
)

// ErrLockTimeout возвращается, когда блокировку не удалось получить до отмены контекста
var ErrLockTimeout = errors.New("keylock: failed to acquire lock")

// Unlock освобождает ранее захваченную блокировку
type Unlock func()

// Locker захват блокировки по ключу
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

type entry struct {
	ch   chan struct{}
	refs int
}

// LocalLocker блокировки в пределах процесса. Записи удаляются, когда ключ никто не держит и не ждет.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewLocalLocker создает LocalLocker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*entry)}
}

// Lock блокирует ключ или ждет его освобождения
func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, errors.Join(ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *LocalLocker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// size количество ключей в таблице (для тестов)
func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
