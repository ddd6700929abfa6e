// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build linux,386

package namedlock

import (
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/nxgtw/namedlock/internal/common"

	"golang.org/x/sys/unix"
)

// on linux/386 sysv calls go through the SYS_IPC multiplexer.
const (
	cSEMOP      = 1
	cSEMGET     = 2
	cSEMCTL     = 3
	cSEMTIMEDOP = 4

	cGETVAL = 12
)

func semget(k common.Key, nsems, semflg int) (int, error) {
	id, _, err := unix.Syscall6(unix.SYS_IPC, cSEMGET, uintptr(k), uintptr(nsems), uintptr(semflg), 0, 0)
	if err != syscall.Errno(0) {
		if err == unix.EEXIST || err == unix.ENOENT {
			return 0, &os.PathError{Op: "SEMGET", Path: "", Err: err}
		}
		return 0, os.NewSyscallError("SEMGET", err)
	}
	return int(id), nil
}

func semctl(id, num, cmd int) error {
	_, _, err := unix.Syscall6(unix.SYS_IPC, cSEMCTL, uintptr(id), uintptr(num), uintptr(cmd), uintptr(semunInst), 0)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("SEMCTL", err)
	}
	return nil
}

func semGetValue(id int) (int, error) {
	val, _, err := unix.Syscall6(unix.SYS_IPC, cSEMCTL, uintptr(id), 0, cGETVAL, uintptr(semunInst), 0)
	if err != syscall.Errno(0) {
		return 0, os.NewSyscallError("SEMCTL", err)
	}
	return int(val), nil
}

func semop(id int, ops []sembuf) error {
	return semtimedop(id, ops, nil)
}

func semtimedop(id int, ops []sembuf, timeout *unix.Timespec) error {
	if len(ops) == 0 {
		return nil
	}
	pOps := unsafe.Pointer(&ops[0])
	pTimeout := unsafe.Pointer(timeout)
	_, _, err := unix.Syscall6(unix.SYS_IPC, cSEMTIMEDOP, uintptr(id), uintptr(len(ops)), 0, uintptr(pOps), uintptr(pTimeout))
	runtime.KeepAlive(ops)
	runtime.KeepAlive(timeout)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("SEMTIMEDOP", err)
	}
	return nil
}
