//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"profilesave/internal/profile"
)

// awaitExit blocks until TerminateProcess has finished and the process's
// file handles are closed.
func awaitExit(p *os.Process) {
	p.Wait()
}

// List returns every process in a toolhelp snapshot.
func (OSProcesses) List() ([]profile.Process, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("creating process snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var procs []profile.Process
	err = windows.Process32First(snapshot, &entry)
	for err == nil {
		procs = append(procs, profile.Process{
			PID:  int(entry.ProcessID),
			Name: windows.UTF16ToString(entry.ExeFile[:]),
		})
		err = windows.Process32Next(snapshot, &entry)
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return nil, fmt.Errorf("walking process snapshot: %w", err)
	}
	return procs, nil
}

var _ profile.ProcessLister = OSProcesses{}
