//go:build windows

package proc

import (
	"fmt"
	"os"
)

// Reload is not supported on Windows.
func Reload(name string) (int, error) {
	return 0, fmt.Errorf("reloading %s is not supported on windows", name)
}

// Terminate kills every process named name and returns how many were stopped.
func Terminate(name string) (int, error) {
	pids, err := Find(name)
	if err != nil {
		return 0, err
	}

	for i, pid := range pids {
		p, err := os.FindProcess(pid)
		if err == nil {
			err = p.Kill()
		}
		if err != nil {
			return i, fmt.Errorf("failed to stop %s (PID %d): %w", name, pid, err)
		}
	}
	return len(pids), nil
}
