package storage

import "time"

const lockPollInterval = 10 * time.Millisecond

// WithLock runs fn while holding the lock for path.
func WithLock(path string, timeout time.Duration, fn func() error) error {
	l := NewFileLock(path)
	if err := l.Lock(timeout); err != nil {
		return err
	}
	defer l.Unlock()
	return fn()
}
