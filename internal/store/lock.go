package store

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"trail-cli/internal/diag"
)

// ErrLocked reports that another process holds the project write lock.
var ErrLocked = errors.New("project is locked by another process")

// Lock is an advisory exclusive lock on a project's trail/ directory.
// It serializes writers across processes; readers never take it.
type Lock struct {
	f *os.File
}

// AcquireLock takes the write lock, polling until timeout elapses.
func AcquireLock(root string, timeout time.Duration) (*Lock, error) {
	dir := TrailDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, lockName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	for {
		if err := tryLock(f); err == nil {
			return &Lock{f: f}, nil
		}
		if time.Now().After(deadline) {
			_ = f.Close()
			diag.Warn("write lock busy", "path", path, "timeout", timeout)
			return nil, ErrLocked
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := unlock(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
