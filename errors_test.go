// Copyright 2016 Aleksandr Demakin. All rights reserved.

package namedlock

import (
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockErrorCarriesErrno(t *testing.T) {
	a := assert.New(t)
	err := newLockError(os.NewSyscallError("SEMOP", syscall.EINVAL))
	a.Equal(syscall.EINVAL, err.Errno())
	a.Contains(err.Error(), "SEMOP")
}

func TestInitErrorCarriesErrno(t *testing.T) {
	a := assert.New(t)
	err := newInitError(&os.PathError{Op: "SEMGET", Path: "/x", Err: syscall.EACCES})
	a.Equal(syscall.EACCES, err.Errno())
	a.Contains(err.Error(), "SEMGET")
}

func TestErrnoOfNonSyscallCause(t *testing.T) {
	a := assert.New(t)
	_, err := New("")
	initErr, ok := err.(*InitError)
	if !a.True(ok) {
		return
	}
	a.Equal(syscall.Errno(0), initErr.Errno())
}

func TestErrorFormatIncludesCallSite(t *testing.T) {
	a := assert.New(t)
	err := newLockError(os.NewSyscallError("SEMOP", syscall.EINVAL))
	formatted := fmt.Sprintf("%+v", err)
	a.Contains(formatted, "SEMOP")
	// the stack captured by the constructor names this test file.
	a.Contains(formatted, "errors_test.go")
}
