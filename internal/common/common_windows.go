// Copyright 2016 Aleksandr Demakin. All rights reserved.

package common

const cERROR_TIMEOUT = 1460

// IsInterruptedSyscallErr always returns false on windows,
// wait functions are not interrupted by signals there.
func IsInterruptedSyscallErr(err error) bool {
	return false
}

// IsTimeoutErr returns true, if the given error is a wait timeout error.
func IsTimeoutErr(err error) bool {
	return SyscallErrHasCode(err, cERROR_TIMEOUT)
}
