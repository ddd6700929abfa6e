// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin freebsd linux windows

package namedlock

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// InitError reports a failure to create or open the backing kernel object.
// It is the only error kind returned by New and Destroy.
// Formatting it with %+v prints the call site of the failure.
type InitError struct {
	cause error
}

func newInitError(cause error) *InitError {
	return &InitError{cause: errors.WithStack(cause)}
}

func (e *InitError) Error() string {
	return "namedlock: init: " + e.cause.Error()
}

// Cause returns the underlying error.
func (e *InitError) Cause() error {
	return e.cause
}

// Errno returns the OS error code of the failure, or 0, if the failure
// did not originate from a system call.
func (e *InitError) Errno() syscall.Errno {
	return errnoOf(e.cause)
}

// Format implements fmt.Formatter.
func (e *InitError) Format(f fmt.State, verb rune) {
	formatCause(f, verb, "namedlock: init", e.cause)
}

// LockError reports an OS failure of a lock, unlock or trylock operation.
// "the lock is held elsewhere" and "the timeout expired" are normal
// outcomes reported via a bool, not via a LockError.
// Formatting it with %+v prints the call site of the failure.
type LockError struct {
	cause error
}

func newLockError(cause error) *LockError {
	return &LockError{cause: errors.WithStack(cause)}
}

func (e *LockError) Error() string {
	return "namedlock: lock operation: " + e.cause.Error()
}

// Cause returns the underlying error.
func (e *LockError) Cause() error {
	return e.cause
}

// Errno returns the OS error code of the failure, or 0, if the failure
// did not originate from a system call.
func (e *LockError) Errno() syscall.Errno {
	return errnoOf(e.cause)
}

// Format implements fmt.Formatter.
func (e *LockError) Format(f fmt.State, verb rune) {
	formatCause(f, verb, "namedlock: lock operation", e.cause)
}

func formatCause(f fmt.State, verb rune, prefix string, cause error) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "%s: %+v", prefix, cause)
			return
		}
		fallthrough
	case 's':
		fmt.Fprintf(f, "%s: %v", prefix, cause)
	case 'q':
		fmt.Fprintf(f, "%q", prefix+": "+cause.Error())
	}
}

type causer interface {
	Cause() error
}

// errnoOf walks the cause chain of an error down to a syscall error code.
func errnoOf(err error) syscall.Errno {
	for err != nil {
		switch e := err.(type) {
		case syscall.Errno:
			return e
		case *os.SyscallError:
			if errno, ok := e.Err.(syscall.Errno); ok {
				return errno
			}
			err = e.Err
		case *os.PathError:
			if errno, ok := e.Err.(syscall.Errno); ok {
				return errno
			}
			err = e.Err
		case causer:
			err = e.Cause()
		default:
			return 0
		}
	}
	return 0
}
