//go:build unix

package proc

import (
	"fmt"
	"syscall"
)

// Reload sends SIGUSR1 to every process named name and returns how many
// were signalled.
func Reload(name string) (int, error) {
	pids, err := Find(name)
	if err != nil {
		return 0, err
	}

	for i, pid := range pids {
		if err := syscall.Kill(pid, syscall.SIGUSR1); err != nil {
			return i, fmt.Errorf("failed to send reload signal to %s (PID %d): %w", name, pid, err)
		}
	}
	return len(pids), nil
}

// Terminate sends SIGTERM to every process named name and returns how many
// were signalled.
func Terminate(name string) (int, error) {
	pids, err := Find(name)
	if err != nil {
		return 0, err
	}

	for i, pid := range pids {
		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			return i, fmt.Errorf("failed to stop %s (PID %d): %w", name, pid, err)
		}
	}
	return len(pids), nil
}
