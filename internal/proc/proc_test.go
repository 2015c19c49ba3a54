package proc

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid int
	exe string
}

func (f fakeProcess) Pid() int           { return f.pid }
func (f fakeProcess) PPid() int          { return 1 }
func (f fakeProcess) Executable() string { return f.exe }

func withProcesses(t *testing.T, procs []ps.Process, err error) {
	t.Helper()
	orig := lister
	lister = func() ([]ps.Process, error) { return procs, err }
	t.Cleanup(func() { lister = orig })
}

func TestFind(t *testing.T) {
	withProcesses(t, []ps.Process{
		fakeProcess{10, "kitty"},
		fakeProcess{11, "swww-daemon"},
		fakeProcess{12, "kitty"},
	}, nil)

	pids, err := Find("kitty")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if !slices.Equal(pids, []int{10, 12}) {
		t.Errorf("Find(kitty) = %v, want [10 12]", pids)
	}
	if !Running("swww-daemon") || Running("swaybg") {
		t.Error("Running() gave wrong answers")
	}
}

func TestFirstRunning(t *testing.T) {
	withProcesses(t, []ps.Process{fakeProcess{5, "swaybg"}, fakeProcess{6, "swww-daemon"}}, nil)

	tests := []struct {
		names []string
		want  string
	}{
		{names: []string{"swww-daemon", "swaybg"}, want: "swww-daemon"},
		{names: []string{"hyprpaper", "swaybg"}, want: "swaybg"},
		{names: []string{"hyprpaper"}, want: ""},
	}
	for _, tt := range tests {
		if got := FirstRunning(tt.names...); got != tt.want {
			t.Errorf("FirstRunning(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}

func TestListerError(t *testing.T) {
	withProcesses(t, nil, errors.New("no /proc"))

	if _, err := Find("kitty"); err == nil {
		t.Error("Find() should surface lister errors")
	}
	if Running("kitty") {
		t.Error("Running() should be false on lister error")
	}
	if FirstRunning("kitty") != "" {
		t.Error("FirstRunning() should be empty on lister error")
	}
}

func TestFindSelf(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Skip(err)
	}
	name := filepath.Base(exe)
	if len(name) > 15 {
		// /proc/<pid>/stat truncates comm to 15 bytes.
		name = name[:15]
	}
	pids, err := Find(name)
	if err != nil {
		t.Skipf("process listing unavailable: %v", err)
	}
	if !slices.Contains(pids, os.Getpid()) {
		t.Errorf("Find(%q) = %v, missing own pid %d", name, pids, os.Getpid())
	}
}
