// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin freebsd linux,!386

package namedlock

import (
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/nxgtw/namedlock/internal/common"

	"golang.org/x/sys/unix"
)

func semget(k common.Key, nsems, semflg int) (int, error) {
	id, _, err := unix.Syscall(sysSemGet, uintptr(k), uintptr(nsems), uintptr(semflg))
	if err != syscall.Errno(0) {
		if err == unix.EEXIST || err == unix.ENOENT {
			return 0, &os.PathError{Op: "SEMGET", Path: "", Err: err}
		}
		return 0, os.NewSyscallError("SEMGET", err)
	}
	return int(id), nil
}

func semctl(id, num, cmd int) error {
	_, _, err := unix.Syscall6(sysSemCtl, uintptr(id), uintptr(num), uintptr(cmd), uintptr(semunInst), 0, 0)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("SEMCTL", err)
	}
	return nil
}

func semGetValue(id int) (int, error) {
	val, _, err := unix.Syscall6(sysSemCtl, uintptr(id), 0, uintptr(cGETVAL), uintptr(semunInst), 0, 0)
	if err != syscall.Errno(0) {
		return 0, os.NewSyscallError("SEMCTL", err)
	}
	return int(val), nil
}

func semop(id int, ops []sembuf) error {
	if len(ops) == 0 {
		return nil
	}
	pOps := unsafe.Pointer(&ops[0])
	_, _, err := unix.Syscall(sysSemOp, uintptr(id), uintptr(pOps), uintptr(len(ops)))
	runtime.KeepAlive(ops)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("SEMOP", err)
	}
	return nil
}
