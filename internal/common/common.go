// Copyright 2016 Aleksandr Demakin. All rights reserved.

package common

import (
	"os"
	"syscall"
	"time"
)

// OpenOrCreate attempts to create an object with the given creator,
// falling back to opening the existing one, when creation races with
// another process. The creator is called with create == true for an
// exclusive creation attempt and with create == false for an open
// attempt. The first return value is true, if the object was created
// by this call.
func OpenOrCreate(creator func(create bool) error) (bool, error) {
	const attempts = 16
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = creator(true); !os.IsExist(err) {
			return true, err
		}
		if err = creator(false); !os.IsNotExist(err) {
			return false, err
		}
	}
	return false, err
}

// UninterruptedSyscall runs a syscall wrapper, restarting it
// transparently, if it is interrupted by a signal.
func UninterruptedSyscall(f func() error) error {
	for {
		err := f()
		if !IsInterruptedSyscallErr(err) {
			return err
		}
	}
}

// UninterruptedSyscallTimeout runs a syscall wrapper with a relative
// timeout, restarting it with the remaining part of the timeout, if it
// is interrupted by a signal. A negative timeout means waiting forever.
func UninterruptedSyscallTimeout(f func(time.Duration) error, timeout time.Duration) error {
	var start time.Time
	if timeout >= 0 {
		start = time.Now()
	}
	cur := timeout
	for {
		err := f(cur)
		if !IsInterruptedSyscallErr(err) {
			return err
		}
		if timeout >= 0 {
			if cur = timeout - time.Since(start); cur < 0 {
				cur = 0
			}
		}
	}
}

// SyscallErrHasCode checks, if the given error is a syscall error
// with the given error code.
func SyscallErrHasCode(err error, code syscall.Errno) bool {
	if sysErr, ok := err.(*os.SyscallError); ok {
		if errno, ok := sysErr.Err.(syscall.Errno); ok {
			return errno == code
		}
	}
	return false
}
