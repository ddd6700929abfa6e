// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build freebsd

package namedlock

import "golang.org/x/sys/unix"

const (
	sysSemGet = unix.SYS_SEMGET
	sysSemOp  = unix.SYS_SEMOP
	sysSemCtl = unix.SYS___SEMCTL

	cGETVAL = 5
)
