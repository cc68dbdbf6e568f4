package util

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFilename is created inside the input directory while a run is active.
const lockFilename = ".trimux.lock"

// DirLock guards a media directory against concurrent trimux runs. The
// controller mutates originals in place, so two processes over the same
// directory must never overlap.
type DirLock struct {
	fl *flock.Flock
}

// AcquireDirLock takes a non-blocking advisory lock on dir. It fails
// immediately when another process already holds the lock.
func AcquireDirLock(dir string) (*DirLock, error) {
	fl := flock.New(filepath.Join(dir, lockFilename))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("another trimux run is active in %s", dir)
	}
	return &DirLock{fl: fl}, nil
}

// Release drops the lock and removes the lock file.
func (l *DirLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	path := l.fl.Path()
	if err := l.fl.Unlock(); err != nil {
		return err
	}
	return RemoveIfExists(path)
}
