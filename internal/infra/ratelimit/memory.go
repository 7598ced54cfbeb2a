package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counterWindow struct {
	start time.Time
	count int
}

// MemoryLimiter счетчик с фиксированным окном в памяти процесса.
// Используется, когда Redis выключен.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*counterWindow
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter создает лимитер: не больше limit запросов за period на ключ
func NewMemoryLimiter(limit int, period time.Duration) (*MemoryLimiter, error) {
	if limit <= 0 || period <= 0 {
		return nil, ErrInvalidConfig
	}
	return &MemoryLimiter{
		windows: make(map[string]*counterWindow),
		limit:   limit,
		window:  period,
		now:     time.Now,
	}, nil
}

// Allow увеличивает счетчик текущего окна и сравнивает его с лимитом
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	start := now.Truncate(l.window)

	w, ok := l.windows[key]
	if !ok || !w.start.Equal(start) {
		w = &counterWindow{start: start}
		l.windows[key] = w
		l.evict(start)
	}

	w.count++
	return w.count <= l.limit, nil
}

// evict удаляет окна, которые уже закончились
func (l *MemoryLimiter) evict(current time.Time) {
	for key, w := range l.windows {
		if w.start.Before(current) {
			delete(l.windows, key)
		}
	}
}
