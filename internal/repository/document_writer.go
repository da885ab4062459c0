package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// DocumentFilePermissions defines the permissions for the written document
	DocumentFilePermissions = 0644
	// DefaultLockTimeout defines the maximum time to wait for the output lock
	DefaultLockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// DocumentWriter replaces a document on disk in a single step.
type DocumentWriter interface {
	Write(ctx context.Context, path string, content []byte) error
}

// LockedDocumentWriter writes through a temp file and rename while holding a file lock.
type LockedDocumentWriter struct {
	fs          FileSystemRepository
	lockTimeout time.Duration
	// lockPath maps the document path to its lock file; nil disables locking
	lockPath func(path string) string
}

// NewDocumentWriter creates a writer that locks <path>.lock on the OS filesystem.
func NewDocumentWriter(fs FileSystemRepository, lockTimeout time.Duration) *LockedDocumentWriter {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &LockedDocumentWriter{
		fs:          fs,
		lockTimeout: lockTimeout,
		lockPath:    func(path string) string { return path + ".lock" },
	}
}

// NewUnlockedDocumentWriter creates a writer that skips file locking.
func NewUnlockedDocumentWriter(fs FileSystemRepository) *LockedDocumentWriter {
	return &LockedDocumentWriter{fs: fs}
}

// WithLockPath overrides where the lock file for a document lives.
func (w *LockedDocumentWriter) WithLockPath(fn func(path string) string) *LockedDocumentWriter {
	w.lockPath = fn
	if w.lockTimeout <= 0 {
		w.lockTimeout = DefaultLockTimeout
	}
	return w
}

// Write replaces path with content. Either the full content lands or the old file stays.
func (w *LockedDocumentWriter) Write(ctx context.Context, path string, content []byte) error {
	if w.lockPath != nil {
		unlock, err := w.lock(ctx, w.lockPath(path))
		if err != nil {
			return err
		}
		defer unlock()
	}
	tempFile := path + ".tmp"
	if err := afero.WriteFile(w.fs, tempFile, content, DocumentFilePermissions); err != nil {
		w.removeTemp(tempFile)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := w.fs.Rename(tempFile, path); err != nil {
		w.removeTemp(tempFile)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// lock acquires an exclusive lock and returns the function that releases it.
func (w *LockedDocumentWriter) lock(ctx context.Context, lockFile string) (func(), error) {
	lock := flock.New(lockFile)
	lockCtx, cancel := context.WithTimeout(ctx, w.lockTimeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, lock)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("could not acquire lock %s within %v", lockFile, w.lockTimeout)
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire lock %s", lockFile)
	}
	return func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", unlockErr)
			return
		}
		if removeErr := os.Remove(lockFile); removeErr != nil && !os.IsNotExist(removeErr) {
			fmt.Fprintf(os.Stderr, "warning: failed to remove lock file: %v\n", removeErr)
		}
	}, nil
}

func (w *LockedDocumentWriter) removeTemp(tempFile string) {
	if removeErr := w.fs.Remove(tempFile); removeErr != nil && !os.IsNotExist(removeErr) {
		// best effort
		fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
	}
}

// acquireLockWithContext attempts to acquire an exclusive lock with context support
func acquireLockWithContext(ctx context.Context, lock *flock.Flock) (bool, error) {
	if locked, err := lock.TryLock(); err != nil || locked {
		return locked, err
	}
	ticker := time.NewTicker(LockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			locked, err := lock.TryLock()
			if err != nil {
				return false, err
			}
			if locked {
				return true, nil
			}
		}
	}
}
