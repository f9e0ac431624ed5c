package common

import (
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// fakeProcess is a static process table entry.
type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

// TestFindOthers matches truncated names and skips the current process.
func TestFindOthers(t *testing.T) {
	t.Parallel()

	processList := []ps.Process{
		fakeProcess{pid: 1, name: "systemd"},
		fakeProcess{pid: 100, name: "vibration-monit"},
		fakeProcess{pid: 200, name: "vibration-monit"},
		fakeProcess{pid: 300, name: "vibration-monitor.exe"},
		fakeProcess{pid: 400, name: "bash"},
	}

	require.Equal(t, []int{200, 300}, findOthers(processList, 100, "vibration-monitor"))
	require.Empty(t, findOthers(processList, 100, "alarm-server"))
	require.Equal(t, []int{1}, findOthers(processList, 100, "systemd"))
}

// TestEnsureSingleInstance passes when the test binary runs alone.
func TestEnsureSingleInstance(t *testing.T) {
	t.Parallel()

	require.NoError(t, EnsureSingleInstance())
}
