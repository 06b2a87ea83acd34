// Package process terminates the browser process trees started for
// snapshots. Chrome forks renderer and GPU helpers that outlive a plain kill
// of the parent.
package process

import (
	"errors"
	"fmt"
)

var ErrInvalidPID = errors.New("invalid process id")

// KillTree force-kills pid together with its descendants. A tree that has
// already exited is not an error.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if err := killTree(pid); err != nil {
		return fmt.Errorf("killing process tree %d: %w", pid, err)
	}
	return nil
}
