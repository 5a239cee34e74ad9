package testutil

import (
	"errors"
	"fmt"
	"sync"

	"profilesave/internal/profile"
)

// StaticSession reports a fixed console user.
type StaticSession struct {
	Name string
	Err  error
}

func (s StaticSession) ConsoleUser() (string, error) { return s.Name, s.Err }

// AccountMap resolves account names from a fixed set of users.
type AccountMap map[string]profile.ActiveUser

func (m AccountMap) LookupAccount(name string) (profile.ActiveUser, error) {
	u, ok := m[name]
	if !ok {
		return profile.ActiveUser{}, fmt.Errorf("unknown account %q", name)
	}
	return u, nil
}

// StaticDocuments returns Dir as every user's documents folder; an empty Dir
// reports that no documents folder exists.
type StaticDocuments struct {
	Dir string
}

func (d StaticDocuments) DocumentsDir(profile.ActiveUser) (string, bool) {
	return d.Dir, d.Dir != ""
}

// FakeProcesses is an in-memory process table. A terminated process stays
// listed for Linger more List calls, like a process that is still exiting.
type FakeProcesses struct {
	mu         sync.Mutex
	procs      []profile.Process
	terminated []profile.Process
	exiting    map[int]int
	lists      int
	Linger     int
	ListErr    error
	KillErr    error
}

// NewFakeProcesses creates a process table holding procs.
func NewFakeProcesses(procs ...profile.Process) *FakeProcesses {
	return &FakeProcesses{procs: procs, exiting: make(map[int]int)}
}

func (f *FakeProcesses) List() ([]profile.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	var out []profile.Process
	for _, p := range f.procs {
		if n, ok := f.exiting[p.PID]; ok {
			if n == 0 {
				continue
			}
			f.exiting[p.PID] = n - 1
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *FakeProcesses) Terminate(p profile.Process) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.KillErr != nil {
		return f.KillErr
	}
	for _, q := range f.procs {
		if q.PID == p.PID {
			if _, gone := f.exiting[p.PID]; gone {
				break
			}
			f.exiting[p.PID] = f.Linger
			f.terminated = append(f.terminated, p)
			return nil
		}
	}
	return errors.New("no such process")
}

// ListCalls returns how many times List was called.
func (f *FakeProcesses) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

// Terminated returns the processes stopped so far.
func (f *FakeProcesses) Terminated() []profile.Process {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]profile.Process(nil), f.terminated...)
}

var (
	_ profile.SessionInspector = StaticSession{}
	_ profile.AccountLookup    = AccountMap{}
	_ profile.DocumentsLocator = StaticDocuments{}
	_ profile.ProcessLister    = (*FakeProcesses)(nil)
)
