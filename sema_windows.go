// Copyright 2016 Aleksandr Demakin. All rights reserved.

package namedlock

import (
	"time"

	"github.com/pkg/errors"

	"golang.org/x/sys/windows"
)

// TimedTryLockAvailable reports, whether the host natively supports
// bounded-wait acquisition. When it is false, TryLockTimeout degrades
// to the immediate TryLock.
const TimedTryLockAvailable = true

// cSemMaxCount of 1 makes the kernel object a binary semaphore, so the
// system itself rejects a release beyond the unlocked state.
const cSemMaxCount = 1

// semaphore is a windows kernel semaphore object.
type semaphore struct {
	handle windows.Handle
}

func openSemaphore(name string, initial int) (*semaphore, error) {
	handle, err := openOrCreateSemaphore(name, initial, cSemMaxCount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open/create semaphore")
	}
	return &semaphore{handle: handle}, nil
}

func (s *semaphore) wait() error {
	_, err := s.waitTimeout(-1)
	return err
}

func (s *semaphore) post() error {
	_, err := sys_ReleaseSemaphore(s.handle, 1)
	return err
}

func (s *semaphore) tryWait() (bool, error) {
	return s.waitTimeout(0)
}

func (s *semaphore) tryWaitTimeout(timeout time.Duration) (bool, error) {
	if timeout < 0 {
		timeout = 0
	}
	return s.waitTimeout(timeout)
}

func (s *semaphore) value() (int, error) {
	return sys_QuerySemaphore(s.handle)
}

func (s *semaphore) close() error {
	if err := windows.CloseHandle(s.handle); err != nil {
		return errors.Wrap(err, "failed to close semaphore handle")
	}
	return nil
}

// waitTimeout waits on the handle for not longer than timeout.
// A negative timeout means waiting forever.
func (s *semaphore) waitTimeout(timeout time.Duration) (bool, error) {
	waitMillis := uint32(windows.INFINITE)
	if timeout >= 0 {
		waitMillis = uint32(timeout.Nanoseconds() / 1e6)
	}
	ev, err := windows.WaitForSingleObject(s.handle, waitMillis)
	switch ev {
	case windows.WAIT_OBJECT_0:
		return true, nil
	case windows.WAIT_TIMEOUT:
		return false, nil
	default:
		if err == nil {
			err = errors.Errorf("invalid wait state for a semaphore: %d", ev)
		}
		return false, err
	}
}

// destroySemaphore is a no-op on windows, the kernel removes the object
// when its last handle is closed.
func destroySemaphore(name string) error {
	return nil
}
