// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin freebsd linux

package common

import (
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"
)

const (
	IpcCreate = 00001000 /* create if key is nonexistent */
	IpcExcl   = 00002000 /* fail if key exists */
	IpcNoWait = 00004000 /* return error on wait */

	IpcRmid = 0 /* remove resource */
)

// Key is a sysv ipc key.
type Key uint64

// KeyForName creates a file and generates a key from its stat data.
// Object names carry a leading separator ("/name"), so appending one
// to the temp directory yields the key file path directly.
func KeyForName(name string) (Key, error) {
	name = TmpFilename(name)
	file, err := os.Create(name)
	if err != nil {
		return 0, errors.New("invalid name for key")
	}
	file.Close()
	k, err := Ftok(name)
	if err != nil {
		os.Remove(name)
		return 0, errors.New("invalid name for key")
	}
	return k, nil
}

// TmpFilename returns the path of the key file for the given object name.
func TmpFilename(name string) string {
	return os.TempDir() + name
}

// Ftok generates an ipc key from the file's stat data, the way ftok(3) does.
func Ftok(name string) (Key, error) {
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		return Key(0), err
	}
	return Key(uint64(st.Ino)&0xFFFF | ((uint64(st.Dev) & 0xFF) << 16)), nil
}

// TimeoutToTimeSpec converts a relative timeout into a timespec.
// A negative timeout is converted into a nil pointer meaning an
// infinite wait.
func TimeoutToTimeSpec(timeout time.Duration) *unix.Timespec {
	if timeout >= 0 {
		ts := unix.NsecToTimespec(timeout.Nanoseconds())
		return &ts
	}
	return nil
}

// IsInterruptedSyscallErr returns true, if the given error was caused
// by a signal interrupting a syscall.
func IsInterruptedSyscallErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EINTR)
}

// IsTimeoutErr returns true for errors reporting, that a wait timed
// out, or that a non-blocking attempt would have to block.
func IsTimeoutErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EAGAIN)
}
