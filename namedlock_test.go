// Copyright 2016 Aleksandr Demakin. All rights reserved.

package namedlock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testLockName = "testnamedlock"

func TestNewRequiresIdentifier(t *testing.T) {
	a := assert.New(t)
	l, err := New("")
	a.Nil(l)
	if a.Error(err) {
		a.IsType((*InitError)(nil), err)
	}
}

func TestNewRejectsReservedCharacters(t *testing.T) {
	a := assert.New(t)
	for _, id := range []string{"/leading", "mid/dle", "back\\slash", "nul\x00byte"} {
		l, err := New(id)
		a.Nil(l)
		if a.Error(err) {
			a.IsType((*InitError)(nil), err)
		}
	}
}

func TestNameDerivation(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testLockName)) {
		return
	}
	l, err := New(testLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(l.Close())
		a.NoError(Destroy(testLockName))
	}()
	a.Equal("/"+testLockName, l.Name())
}

func TestLockUnlockRoundTrip(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testLockName)) {
		return
	}
	l, err := New(testLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(l.Close())
		a.NoError(Destroy(testLockName))
	}()
	initial, err := l.Count()
	if !a.NoError(err) {
		return
	}
	a.Equal(1, initial)
	for i := 0; i < 8; i++ {
		l.Lock()
		l.Unlock()
	}
	value, err := l.Count()
	a.NoError(err)
	a.Equal(initial, value)
}

func TestSameNameSharesState(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testLockName)) {
		return
	}
	lk1, err := New(testLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(lk1.Close())
		a.NoError(Destroy(testLockName))
	}()
	lk2, err := New(testLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(lk2.Close())
	}()
	lk1.Lock()
	acquired, err := lk2.TryLock()
	a.NoError(err)
	a.False(acquired)
	lk1.Unlock()
	acquired, err = lk2.TryLock()
	a.NoError(err)
	if a.True(acquired) {
		lk2.Unlock()
	}
}

func TestTryLockDoesNotBlock(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testLockName)) {
		return
	}
	lk1, err := New(testLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(lk1.Close())
		a.NoError(Destroy(testLockName))
	}()
	lk2, err := New(testLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(lk2.Close())
	}()
	lk1.Lock()
	start := time.Now()
	acquired, err := lk2.TryLock()
	elapsed := time.Since(start)
	a.NoError(err)
	a.False(acquired)
	a.True(elapsed < 100*time.Millisecond, "TryLock took %v", elapsed)
	lk1.Unlock()
}

func TestMutualExclusion(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testLockName)) {
		return
	}
	const goroutines = 4
	const iterations = 64
	shared := 0
	errCh := make(chan error, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			l, err := New(testLockName)
			if err != nil {
				errCh <- err
				return
			}
			defer l.Close()
			for j := 0; j < iterations; j++ {
				l.Lock()
				shared++
				l.Unlock()
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		a.NoError(err)
	}
	a.Equal(goroutines*iterations, shared)
	a.NoError(Destroy(testLockName))
}

func TestCloseIsIdempotent(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testLockName)) {
		return
	}
	l, err := New(testLockName)
	if !a.NoError(err) {
		return
	}
	a.NoError(l.Close())
	a.NoError(l.Close())
	a.NoError(Destroy(testLockName))
}

func TestDestroyMissingIsNotAnError(t *testing.T) {
	a := assert.New(t)
	a.NoError(Destroy("namedlock-missing-object"))
}
