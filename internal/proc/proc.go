// Package proc finds and signals running processes by executable name.
package proc

import (
	"fmt"

	"github.com/mitchellh/go-ps"
)

// lister is replaced in tests.
var lister = ps.Processes

// Find returns the PIDs of all processes whose executable is name.
func Find(name string) ([]int, error) {
	processes, err := lister()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}

// Running reports whether any process named name exists. Lookup errors
// count as not running.
func Running(name string) bool {
	pids, err := Find(name)
	return err == nil && len(pids) > 0
}

// FirstRunning returns the first of names with a running process, or "".
func FirstRunning(names ...string) string {
	processes, err := lister()
	if err != nil {
		return ""
	}
	running := make(map[string]bool, len(processes))
	for _, p := range processes {
		running[p.Executable()] = true
	}
	for _, n := range names {
		if running[n] {
			return n
		}
	}
	return ""
}
