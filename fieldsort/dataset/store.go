package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/fieldsort/formats"
)

// Constants for file locking
const (
	DefaultLockTimeout = 3 * time.Second
	lockRetryDelay     = 100 * time.Millisecond
)

// Store reads record files and rewrites them while holding <path>.lock
type Store struct {
	fs          FileSystem
	lockFactory FileLockFactory
	lockTimeout time.Duration
}

// StoreOption is a function that modifies Store configuration
type StoreOption func(*Store)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) StoreOption {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) StoreOption {
	return func(s *Store) {
		s.lockFactory = factory
	}
}

// WithLockTimeout bounds how long Save waits for the lock, on top of any
// deadline its context carries
func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewStore creates a Store backed by the OS file system and flock
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		fs:          OSFileSystem{},
		lockFactory: &FlockFactory{},
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads path with the format registered for its extension
func Load(path string) (*Dataset, error) {
	return NewStore().Load(path)
}

// Save rewrites path with rows in order
func Save(ctx context.Context, path string, rows []*Row) error {
	return NewStore().Save(ctx, path, rows)
}

// Load reads path without taking the lock. Save replaces files by rename,
// so a reader never sees a partial write.
func (s *Store) Load(path string) (*Dataset, error) {
	format, err := formats.ForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	records, err := format.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Dataset{Path: path, Format: format, Rows: FromRecords(records)}, nil
}

// Save encodes rows with the format registered for path's extension and
// replaces the file atomically while holding the lock
func (s *Store) Save(ctx context.Context, path string, rows []*Row) error {
	format, err := formats.ForPath(path)
	if err != nil {
		return err
	}

	data, err := format.Encode(Records(rows))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	lock := s.lockFactory.New(LockPath(path))
	if err := acquireLock(lockCtx, lock); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	// Write to file atomically (write to temp file, then rename)
	tmpFile := path + ".tmp"
	if err := s.fs.WriteFile(tmpFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := s.fs.Rename(tmpFile, path); err != nil {
		_ = s.fs.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// acquireLock keeps trying until the lock is taken or ctx ends
func acquireLock(ctx context.Context, lock FileLock) error {
	for {
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(lockRetryDelay):
		}
	}
}
