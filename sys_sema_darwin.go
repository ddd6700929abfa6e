// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin

package namedlock

// trap numbers from bsd/kern/syscalls.master.
const (
	sysSemCtl = 254
	sysSemGet = 255
	sysSemOp  = 256

	cGETVAL = 5
)
