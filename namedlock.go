// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin freebsd linux windows

package namedlock

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Available is true on the platforms, where the package compiles at all.
// The package is gated by build tags, so on a platform without a named
// kernel semaphore facility any code importing it fails to build,
// rather than fails at runtime.
const Available = true

const (
	// nameSeparator is prepended to the caller's identifier to form
	// the system-visible object name.
	nameSeparator = "/"

	// maxIDLen limits the identifier so that the derived name fits into
	// the object name limits of all supported platforms.
	maxIDLen = 247
)

// Locker is a minimal interface, which must be satisfied by a named lock
// on any platform.
type Locker interface {
	sync.Locker
	io.Closer
}

// TimedLocker is a locker, whose acquire operation can be limited with a duration.
type TimedLocker interface {
	Locker
	TryLockTimeout(timeout time.Duration) (bool, error)
}

// all platform implementations must satisfy these interfaces.
var (
	_ Locker      = (*NamedLock)(nil)
	_ TimedLocker = (*NamedLock)(nil)
)

// NamedLock is a mutual exclusion lock shared between processes by name.
// Any number of instances, in the same or in different processes,
// constructed with the same identifier refer to the same kernel object,
// so its locked/unlocked state is a property of that object, not of any
// single instance.
// The zero value is not usable, a lock is always obtained via New.
type NamedLock struct {
	name string
	sema *semaphore
}

// New returns a lock for the given identifier, creating the backing kernel
// object in the unlocked state, if it does not exist yet. If the object
// already exists, the lock attaches to it without resetting its state.
// The identifier must be non-empty and must not contain path separators
// or nul characters. The system-visible name is the identifier with a
// single separator prepended, so e.g. "resource-A" becomes "/resource-A".
// All construction failures are reported as *InitError.
func New(id string) (*NamedLock, error) {
	if err := checkID(id); err != nil {
		return nil, newInitError(err)
	}
	name := nameSeparator + id
	sema, err := openSemaphore(name, 1)
	if err != nil {
		return nil, newInitError(err)
	}
	return &NamedLock{name: name, sema: sema}, nil
}

// Name returns the system-visible name of the lock.
func (l *NamedLock) Name() string {
	return l.name
}

// Lock acquires the lock, blocking until it is available.
// Signal interruptions are retried transparently, so the call does not
// return early due to a signal. Success is the only non-exceptional
// outcome, any OS failure makes Lock panic with a *LockError.
func (l *NamedLock) Lock() {
	if err := l.sema.wait(); err != nil {
		panic(newLockError(err))
	}
}

// Unlock releases the lock, waking one waiter, if any.
// The caller must unlock exactly once per successful acquisition,
// unlocking a lock it does not hold is not defended against.
// Unlock panics with a *LockError on an OS failure.
func (l *NamedLock) Unlock() {
	if err := l.sema.post(); err != nil {
		panic(newLockError(err))
	}
}

// TryLock attempts to acquire the lock without blocking.
// It returns true, if the lock was acquired, and false, if it is
// currently held elsewhere. false is reserved strictly for that case,
// any other OS failure is reported as a *LockError.
func (l *NamedLock) TryLock() (bool, error) {
	acquired, err := l.sema.tryWait()
	if err != nil {
		return false, newLockError(err)
	}
	return acquired, nil
}

// TryLockTimeout attempts to acquire the lock, waiting for not longer
// than the given relative timeout. It returns true, if the lock was
// acquired, and false, if the timeout expired first.
// On platforms without a native timed wait the call degrades to the
// immediate TryLock, see TimedTryLockAvailable.
// A non-positive timeout makes the call behave as the immediate TryLock.
// Any non-timeout OS failure is reported as a *LockError.
func (l *NamedLock) TryLockTimeout(timeout time.Duration) (bool, error) {
	if timeout < 0 {
		timeout = 0
	}
	acquired, err := l.sema.tryWaitTimeout(timeout)
	if err != nil {
		return false, newLockError(err)
	}
	return acquired, nil
}

// Count returns the current value of the backing semaphore, 1 for
// unlocked and 0 for locked. It is exposed for diagnostics and tests
// only and must not be used for locking decisions, the value may be
// stale the moment it is returned.
func (l *NamedLock) Count() (int, error) {
	value, err := l.sema.value()
	if err != nil {
		return 0, newLockError(err)
	}
	return value, nil
}

// Close releases the process-local handle of the lock, so that this
// instance cannot be used anymore. It does not affect the lock state
// and does not remove the kernel object, other holders of the same
// name continue to observe it. Close is idempotent.
func (l *NamedLock) Close() error {
	if l.sema == nil {
		return nil
	}
	err := l.sema.close()
	l.sema = nil
	return err
}

// Destroy removes the kernel object with the given identifier permanently.
// Closing the last handle never removes the object on its own, so a stale
// lock persists across restarts of all participating processes until it
// is destroyed explicitly. It is not an error to destroy a lock, which
// does not exist. Holders of already opened instances keep observing the
// old object.
func Destroy(id string) error {
	if err := checkID(id); err != nil {
		return newInitError(err)
	}
	return destroySemaphore(nameSeparator + id)
}

func checkID(id string) error {
	if len(id) == 0 {
		return errors.New("lock identifier must not be empty")
	}
	if len(id) > maxIDLen {
		return errors.Errorf("lock identifier exceeds %d characters", maxIDLen)
	}
	if strings.ContainsAny(id, "/\\\x00") {
		return errors.Errorf("lock identifier %q contains reserved characters", id)
	}
	return nil
}
