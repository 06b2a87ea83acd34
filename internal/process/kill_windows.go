//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killTree has taskkill walk the child tree.
func killTree(pid int) error {
	// taskkill exits 128 when pid is gone, which is reported as an error.
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
