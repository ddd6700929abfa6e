// Copyright 2015 Aleksandr Demakin. All rights reserved.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nxgtw/namedlock"
)

var objName = flag.String("object", "", "lock object name")

const usage = `  test program for named locks.
available commands:
  create
  destroy
  trylock
    prints 'true', if the lock was acquired, and 'false' otherwise.
    an acquired lock is released before exit.
  hold {ms}
    acquires the lock, prints 'locked', holds the lock for the given
    number of milliseconds, and releases it.
`

func create() error {
	l, err := namedlock.New(*objName)
	if err != nil {
		return err
	}
	return l.Close()
}

func destroy() error {
	return namedlock.Destroy(*objName)
}

func trylock() error {
	l, err := namedlock.New(*objName)
	if err != nil {
		return err
	}
	defer l.Close()
	acquired, err := l.TryLock()
	if err != nil {
		return err
	}
	fmt.Println(acquired)
	if acquired {
		l.Unlock()
	}
	return nil
}

func hold() error {
	if flag.NArg() != 2 {
		return fmt.Errorf("hold: must provide hold duration")
	}
	millis, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		return err
	}
	l, err := namedlock.New(*objName)
	if err != nil {
		return err
	}
	defer l.Close()
	l.Lock()
	fmt.Println("locked")
	time.Sleep(time.Duration(millis) * time.Millisecond)
	l.Unlock()
	return nil
}

func runCommand() error {
	if flag.NArg() == 0 {
		return fmt.Errorf("no command given")
	}
	switch flag.Arg(0) {
	case "create":
		return create()
	case "destroy":
		return destroy()
	case "trylock":
		return trylock()
	case "hold":
		return hold()
	default:
		return fmt.Errorf("unknown command %q", flag.Arg(0))
	}
}

func main() {
	flag.Parse()
	if len(*objName) == 0 {
		fmt.Print(usage)
		os.Exit(1)
	}
	if err := runCommand(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
