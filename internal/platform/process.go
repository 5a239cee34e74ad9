package platform

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"profilesave/internal/profile"
)

// OSProcesses lists and terminates processes on the local machine.
type OSProcesses struct{}

// Terminate kills p and, where the OS allows waiting on a process that is
// not our child, waits for it to exit. A process that has already exited is
// not an error.
func (OSProcesses) Terminate(p profile.Process) error {
	proc, err := os.FindProcess(p.PID)
	if err != nil {
		return nil
	}
	defer proc.Release()

	if err := proc.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return fmt.Errorf("killing process: %w", err)
	}
	awaitExit(proc)
	return nil
}

// parsePS parses "pid command" lines as printed by `ps -A -o pid= -o comm=`.
func parsePS(out []byte) ([]profile.Process, error) {
	var procs []profile.Process
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pidStr, name, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		pid, err := strconv.Atoi(pidStr)
		if err != nil {
			return nil, fmt.Errorf("parsing pid %q: %w", pidStr, err)
		}
		procs = append(procs, profile.Process{PID: pid, Name: strings.TrimSpace(name)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading process list: %w", err)
	}
	return procs, nil
}
