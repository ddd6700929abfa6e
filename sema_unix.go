// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin freebsd linux

package namedlock

import (
	"os"
	"unsafe"

	"github.com/nxgtw/namedlock/internal/common"
	"github.com/pkg/errors"
)

const semaPerm = 0666

// sembuf mirrors the kernel structure of the same name.
type sembuf struct {
	semnum uint16
	semop  int16
	semflg int16
}

// semun is the union passed to semctl. Its value is never examined by
// the commands this package uses, so one global placeholder is enough.
type semun struct {
	unused uintptr
}

var semunInst = unsafe.Pointer(&semun{})

// semaphore is a sysv semaphore set of size 1.
// sysv ids are system-global rather than process-local, so there is
// no per-process handle to release, and close is a no-op.
type semaphore struct {
	name string
	id   int
}

// openSemaphore opens a semaphore with the given name, creating it with
// the given initial value, if it does not exist yet. The key for semget
// is derived from the name via a file in the temp directory.
func openSemaphore(name string, initial int) (*semaphore, error) {
	k, err := common.KeyForName(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate a key for the name")
	}
	var id int
	creator := func(create bool) error {
		var creatorErr error
		flags := semaPerm
		if create {
			flags |= common.IpcCreate | common.IpcExcl
		}
		id, creatorErr = semget(k, 1, flags)
		return creatorErr
	}
	created, err := common.OpenOrCreate(creator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open/create sysv semaphore")
	}
	result := &semaphore{name: name, id: id}
	if created && initial > 0 {
		if err = result.add(initial); err != nil {
			result.destroy()
			return nil, errors.Wrap(err, "failed to set initial semaphore value")
		}
	}
	return result, nil
}

func (s *semaphore) wait() error {
	return s.add(-1)
}

func (s *semaphore) post() error {
	return s.add(1)
}

// tryWait attempts to decrement the semaphore without blocking.
// It returns false, if the value is already zero.
func (s *semaphore) tryWait() (bool, error) {
	b := sembuf{semnum: 0, semop: -1, semflg: common.IpcNoWait}
	err := common.UninterruptedSyscall(func() error { return semop(s.id, []sembuf{b}) })
	if err == nil {
		return true, nil
	}
	if common.IsTimeoutErr(err) {
		return false, nil
	}
	return false, err
}

// value returns the current semaphore value.
func (s *semaphore) value() (int, error) {
	return semGetValue(s.id)
}

// close is a no-op on unix.
func (s *semaphore) close() error {
	return nil
}

func (s *semaphore) add(value int) error {
	b := sembuf{semnum: 0, semop: int16(value), semflg: 0}
	return common.UninterruptedSyscall(func() error { return semop(s.id, []sembuf{b}) })
}

func (s *semaphore) destroy() error {
	return removeSemaByID(s.id, s.name)
}

// destroySemaphore permanently removes the semaphore with the given name.
// It succeeds, if the object does not exist.
func destroySemaphore(name string) error {
	k, err := common.KeyForName(name)
	if err != nil {
		return errors.Wrap(err, "failed to generate a key for the name")
	}
	id, err := semget(k, 1, semaPerm)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "failed to get semaphore id")
	}
	return removeSemaByID(id, name)
}

func removeSemaByID(id int, name string) error {
	err := semctl(id, 0, common.IpcRmid)
	if err == nil && len(name) > 0 {
		if err = os.Remove(common.TmpFilename(name)); os.IsNotExist(err) {
			err = nil
		} else if err != nil {
			err = errors.Wrap(err, "failed to remove key file")
		}
	} else if os.IsNotExist(err) {
		err = nil
	} else if err != nil {
		err = errors.Wrap(err, "semctl failed")
	}
	return err
}
