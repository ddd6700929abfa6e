// Copyright 2015 Aleksandr Demakin. All rights reserved.

package namedlock

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	testutil "github.com/nxgtw/namedlock/internal/test"
)

const (
	lockProgName     = "./internal/test/locker/main.go"
	testProgLockName = "testnamedlockprog"
)

func argsForTryLockCommand(name string) []string {
	return []string{lockProgName, "-object=" + name, "trylock"}
}

func argsForHoldCommand(name string, holdMillis int) []string {
	return []string{lockProgName, "-object=" + name, "hold", strconv.Itoa(holdMillis)}
}

func TestLockIsSharedBetweenProcesses(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testProgLockName)) {
		return
	}
	l, err := New(testProgLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(l.Close())
		a.NoError(Destroy(testProgLockName))
	}()
	l.Lock()
	result := testutil.RunTestApp(argsForTryLockCommand(testProgLockName), nil)
	if !a.NoError(result.Err) {
		t.Log(result.Output)
		return
	}
	a.Equal("false", strings.TrimSpace(result.Output))
	l.Unlock()
	result = testutil.RunTestApp(argsForTryLockCommand(testProgLockName), nil)
	if !a.NoError(result.Err) {
		t.Log(result.Output)
		return
	}
	a.Equal("true", strings.TrimSpace(result.Output))
}

func TestTryLockWhileAnotherProcessHolds(t *testing.T) {
	a := assert.New(t)
	if !a.NoError(Destroy(testProgLockName)) {
		return
	}
	l, err := New(testProgLockName)
	if !a.NoError(err) {
		return
	}
	defer func() {
		a.NoError(l.Close())
		a.NoError(Destroy(testProgLockName))
	}()
	resultCh := testutil.RunTestAppAsync(argsForHoldCommand(testProgLockName, 500), nil)
	// wait until the child actually holds the lock.
	deadline := time.Now().Add(15 * time.Second)
	for {
		value, err := l.Count()
		if !a.NoError(err) {
			return
		}
		if value == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("child process did not acquire the lock")
		}
		time.Sleep(10 * time.Millisecond)
	}
	acquired, err := l.TryLock()
	a.NoError(err)
	a.False(acquired)
	result := <-resultCh
	if !a.NoError(result.Err) {
		t.Log(result.Output)
		return
	}
	acquired, err = l.TryLock()
	a.NoError(err)
	if a.True(acquired) {
		l.Unlock()
	}
}
