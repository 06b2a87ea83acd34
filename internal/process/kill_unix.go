//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// killTree signals the whole process group led by pid.
func killTree(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
