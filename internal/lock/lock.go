// Package lock serializes installation runs for the current user with an advisory file lock.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/launch/internal/messages"
)

// Lock is a held exclusive lock.
type Lock struct {
	file *os.File
}

var lockFileFn = lockFile
var unlockFileFn = unlockFile
var flockFn = unix.Flock
var lockSleep = time.Sleep

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// With acquires the lock at path, runs fn, and releases the lock.
func With(path string, fn func() error) error {
	lock, err := Acquire(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()
	return fn()
}

// Acquire creates path (and its directory) if needed and takes an exclusive lock,
// waiting up to 30 seconds for another holder to release it.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf(messages.LockCreateDir, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	if err := lockFileFn(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.LockFmt, path, err)
	}
	return &Lock{file: file}, nil
}

// Release unlocks and closes the lock file. Releasing a nil or released lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil
	if err := unlockFileFn(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// lockFile acquires an exclusive advisory lock on the file.
func lockFile(file *os.File) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.LockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}

// unlockFile releases the advisory lock on the file.
func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
