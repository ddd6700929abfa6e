// Copyright 2016 Aleksandr Demakin. All rights reserved.

package namedlock

import (
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/nxgtw/namedlock/internal/common"
	"github.com/pkg/errors"

	"golang.org/x/sys/windows"
)

const cSEMAPHORE_ALL_ACCESS = 0x1F0003

var (
	modkernel32          = windows.NewLazyDLL("kernel32.dll")
	modntdll             = windows.NewLazyDLL("ntdll.dll")
	procCreateSemaphore  = modkernel32.NewProc("CreateSemaphoreW")
	procOpenSemaphore    = modkernel32.NewProc("OpenSemaphoreW")
	procReleaseSemaphore = modkernel32.NewProc("ReleaseSemaphore")
	procNtQuerySemaphore = modntdll.NewProc("NtQuerySemaphore")
)

func openOrCreateSemaphore(name string, initial, maximum int) (windows.Handle, error) {
	var handle windows.Handle
	creator := func(create bool) error {
		var err error
		if create {
			handle, err = sys_CreateSemaphore(name, initial, maximum)
			if os.IsExist(err) {
				return err
			}
		} else {
			handle, err = sys_OpenSemaphore(name, cSEMAPHORE_ALL_ACCESS)
		}
		if handle != windows.Handle(0) {
			return nil
		}
		return err
	}
	_, err := common.OpenOrCreate(creator)
	return handle, err
}

func sys_CreateSemaphore(name string, initial, maximum int) (windows.Handle, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	h, _, err := procCreateSemaphore.Call(
		0,
		uintptr(initial),
		uintptr(maximum),
		uintptr(unsafe.Pointer(namep)))
	runtime.KeepAlive(namep)
	if h == 0 {
		if err == windows.ERROR_FILE_EXISTS || err == windows.ERROR_ALREADY_EXISTS {
			return 0, &os.PathError{Op: "CreateSemaphore", Path: name, Err: err}
		}
		return 0, os.NewSyscallError("CreateSemaphore", err)
	} else if err == syscall.Errno(0) || err == windows.ERROR_ALREADY_EXISTS {
		// a handle to the already existing object was returned,
		// its current state is left intact.
		err = nil
	}
	return windows.Handle(h), err
}

func sys_OpenSemaphore(name string, desiredAccess uint32) (windows.Handle, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	h, _, err := procOpenSemaphore.Call(
		uintptr(desiredAccess),
		0,
		uintptr(unsafe.Pointer(namep)))
	runtime.KeepAlive(namep)
	if h == 0 {
		if err == windows.ERROR_FILE_NOT_FOUND {
			return 0, &os.PathError{Op: "OpenSemaphore", Path: name, Err: err}
		}
		return 0, os.NewSyscallError("OpenSemaphore", err)
	}
	return windows.Handle(h), nil
}

func sys_ReleaseSemaphore(h windows.Handle, count int) (int, error) {
	var prev int32
	ok, _, err := procReleaseSemaphore.Call(
		uintptr(h),
		uintptr(count),
		uintptr(unsafe.Pointer(&prev)))
	runtime.KeepAlive(&prev)
	if ok == 0 {
		return 0, os.NewSyscallError("ReleaseSemaphore", err)
	}
	return int(prev), nil
}

// semaphoreBasicInformation mirrors SEMAPHORE_BASIC_INFORMATION.
type semaphoreBasicInformation struct {
	currentCount int32
	maximumCount int32
}

func sys_QuerySemaphore(h windows.Handle) (int, error) {
	var info semaphoreBasicInformation
	var retLen uint32
	status, _, _ := procNtQuerySemaphore.Call(
		uintptr(h),
		0, // SemaphoreBasicInformation
		uintptr(unsafe.Pointer(&info)),
		unsafe.Sizeof(info),
		uintptr(unsafe.Pointer(&retLen)))
	runtime.KeepAlive(&info)
	runtime.KeepAlive(&retLen)
	if status != 0 {
		return 0, errors.Errorf("NtQuerySemaphore failed: status 0x%08x", status)
	}
	return int(info.currentCount), nil
}
