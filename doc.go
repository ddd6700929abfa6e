// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package namedlock provides a mutual exclusion lock, which can be shared
// between unrelated processes referring to it by a common name.
// It is backed by a kernel semaphore object:
//	CreateSemaphore on windows
//	semget on unix
// The semaphore is used strictly as a binary lock, so the package
// exposes a mutex-like interface, not a counting one.
// The typical use case is protecting a shared memory region, although
// the protected resource itself is entirely up to the caller.
// You can find usage examples in the test files.
package namedlock
