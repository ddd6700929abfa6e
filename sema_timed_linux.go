// Copyright 2016 Aleksandr Demakin. All rights reserved.

package namedlock

import (
	"time"

	"github.com/nxgtw/namedlock/internal/common"
)

// TimedTryLockAvailable reports, whether the host natively supports
// bounded-wait acquisition. When it is false, TryLockTimeout degrades
// to the immediate TryLock.
const TimedTryLockAvailable = true

// tryWaitTimeout decrements the semaphore, waiting for not longer than
// timeout. If the wait is interrupted by a signal, it is restarted with
// the remaining part of the timeout.
func (s *semaphore) tryWaitTimeout(timeout time.Duration) (bool, error) {
	err := common.UninterruptedSyscallTimeout(func(curTimeout time.Duration) error {
		b := sembuf{semnum: 0, semop: -1, semflg: 0}
		return semtimedop(s.id, []sembuf{b}, common.TimeoutToTimeSpec(curTimeout))
	}, timeout)
	if err == nil {
		return true, nil
	}
	if common.IsTimeoutErr(err) {
		return false, nil
	}
	return false, err
}
