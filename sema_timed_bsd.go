// Copyright 2016 Aleksandr Demakin. All rights reserved.

// +build darwin freebsd

package namedlock

import "time"

// TimedTryLockAvailable reports, whether the host natively supports
// bounded-wait acquisition. When it is false, TryLockTimeout degrades
// to the immediate TryLock.
const TimedTryLockAvailable = false

// tryWaitTimeout degrades to the immediate tryWait, as there is no
// semtimedop on darwin and freebsd.
func (s *semaphore) tryWaitTimeout(timeout time.Duration) (bool, error) {
	return s.tryWait()
}
