package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// commMaxLen is the length Linux truncates process names to.
const commMaxLen = 15

// ErrAnotherInstance is returned when a process with the same executable name is running.
var ErrAnotherInstance = errors.New("another instance is already running")

// EnsureSingleInstance fails with ErrAnotherInstance if another process runs
// the current executable.
func EnsureSingleInstance() error {
	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	name := filepath.Base(os.Args[0])

	others := findOthers(processList, os.Getpid(), name)
	if len(others) > 0 {
		return fmt.Errorf("%w: %s (pid %v)", ErrAnotherInstance, name, others)
	}

	return nil
}

// findOthers returns pids of processes other than self named after the executable.
// Names are compared on the truncated prefix the kernel reports.
func findOthers(processList []ps.Process, self int, name string) []int {
	name = truncate(strings.TrimSuffix(name, ".exe"))

	var pids []int

	for _, process := range processList {
		if process.Pid() == self {
			continue
		}

		if truncate(strings.TrimSuffix(process.Executable(), ".exe")) != name {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids
}

// truncate cuts name to commMaxLen bytes.
func truncate(name string) string {
	if len(name) > commMaxLen {
		return name[:commMaxLen]
	}

	return name
}
