// Copyright 2015 Aleksandr Demakin. All rights reserved.

// Package testutil runs helper programs via 'go run' for testing
// cross-process behaviour of the lock.
package testutil

import (
	"bytes"
	"fmt"
	"os/exec"
	"syscall"
)

// AppResult is a result of a 'go run' program launch.
type AppResult struct {
	Output string
	Err    error
}

func startTestApp(args []string, killChan <-chan bool) (*exec.Cmd, *bytes.Buffer, error) {
	args = append([]string{"run"}, args...)
	cmd := exec.Command("go", args...)
	buff := bytes.NewBuffer(nil)
	cmd.Stderr = buff
	cmd.Stdout = buff
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	if killChan != nil {
		go func() {
			if kill, ok := <-killChan; kill && ok {
				if cmd.ProcessState != nil && !cmd.ProcessState.Exited() {
					cmd.Process.Kill()
				}
			}
		}()
	}
	return cmd, buff, nil
}

func waitForCommand(cmd *exec.Cmd, buff *bytes.Buffer) (result AppResult) {
	if result.Err = cmd.Wait(); result.Err != nil {
		if exiterr, ok := result.Err.(*exec.ExitError); ok {
			if status, ok := exiterr.Sys().(syscall.WaitStatus); ok {
				result.Err = fmt.Errorf("%v, status code = %d", result.Err, status)
			}
		}
	} else if !cmd.ProcessState.Success() {
		result.Err = fmt.Errorf("process has exited with an error")
	}
	result.Output = buff.String()
	return
}

// RunTestApp starts a go program via 'go run' and waits for it to finish.
// To kill the process, send to killChan.
func RunTestApp(args []string, killChan <-chan bool) (result AppResult) {
	if cmd, buff, err := startTestApp(args, killChan); err == nil {
		result = waitForCommand(cmd, buff)
	} else {
		result.Err = err
	}
	return
}

// RunTestAppAsync starts a go program via 'go run' and returns immediately.
// To kill the process, send to killChan.
// To wait for the program to finish, receive on the AppResult chan.
func RunTestAppAsync(args []string, killChan <-chan bool) <-chan AppResult {
	ch := make(chan AppResult, 1)
	if cmd, buff, err := startTestApp(args, killChan); err != nil {
		ch <- AppResult{Err: err}
	} else {
		go func() {
			ch <- waitForCommand(cmd, buff)
		}()
	}
	return ch
}
