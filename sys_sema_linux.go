// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build linux,!386

package namedlock

import (
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	sysSemGet = unix.SYS_SEMGET
	sysSemOp  = unix.SYS_SEMOP
	sysSemCtl = unix.SYS_SEMCTL

	cGETVAL = 12
)

func semtimedop(id int, ops []sembuf, timeout *unix.Timespec) error {
	if len(ops) == 0 {
		return nil
	}
	pOps := unsafe.Pointer(&ops[0])
	pTimeout := unsafe.Pointer(timeout)
	_, _, err := unix.Syscall6(unix.SYS_SEMTIMEDOP, uintptr(id), uintptr(pOps), uintptr(len(ops)), uintptr(pTimeout), 0, 0)
	runtime.KeepAlive(ops)
	runtime.KeepAlive(timeout)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("SEMTIMEDOP", err)
	}
	return nil
}
