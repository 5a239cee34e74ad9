package profile

import (
	"fmt"
	"strings"
	"time"
)

// Default bounds for waiting on terminated applications to exit.
const (
	DefaultExitTimeout  = 10 * time.Second
	DefaultPollInterval = 250 * time.Millisecond
)

// Process is a running program as reported by a ProcessLister.
type Process struct {
	PID  int
	Name string
}

// ProcessLister enumerates and stops running processes.
type ProcessLister interface {
	List() ([]Process, error)
	Terminate(p Process) error
}

// Confirmer asks the operator a yes/no question.
type Confirmer func(question string) (bool, error)

// GuardMode controls what happens when monitored applications are running.
type GuardMode int

const (
	// GuardAbort refuses to continue. This is the unattended behavior.
	GuardAbort GuardMode = iota
	// GuardPrompt asks before terminating the applications.
	GuardPrompt
	// GuardForceClose terminates the applications without asking.
	GuardForceClose
)

// Guard checks that no monitored application holds profile files open
// before a restore.
type Guard struct {
	lister       ProcessLister
	applications []string
	logger       Logger
	exitTimeout  time.Duration
	pollInterval time.Duration
	sleep        func(time.Duration)
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithExitWait sets how long EnsureClosed waits for terminated applications
// to disappear from the process list, and how often it checks.
func WithExitWait(timeout, interval time.Duration) GuardOption {
	return func(g *Guard) {
		g.exitTimeout = timeout
		g.pollInterval = interval
	}
}

// WithSleep replaces time.Sleep between process list checks.
func WithSleep(sleep func(time.Duration)) GuardOption {
	return func(g *Guard) { g.sleep = sleep }
}

// NewGuard creates a Guard watching the given executable names.
func NewGuard(lister ProcessLister, applications []string, logger Logger, opts ...GuardOption) *Guard {
	names := make([]string, 0, len(applications))
	for _, a := range applications {
		if n := normalizeProcessName(a); n != "" {
			names = append(names, n)
		}
	}
	g := &Guard{
		lister:       lister,
		applications: names,
		logger:       logger,
		exitTimeout:  DefaultExitTimeout,
		pollInterval: DefaultPollInterval,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.pollInterval <= 0 {
		g.pollInterval = DefaultPollInterval
	}
	return g
}

// Running returns the monitored applications that are currently running.
func (g *Guard) Running() ([]Process, error) {
	procs, err := g.lister.List()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	var running []Process
	for _, p := range procs {
		if g.monitored(p.Name) {
			running = append(running, p)
		}
	}
	return running, nil
}

// EnsureClosed returns nil once no monitored application is running.
// Depending on mode it aborts, asks confirm, or terminates them outright.
func (g *Guard) EnsureClosed(mode GuardMode, confirm Confirmer) error {
	running, err := g.Running()
	if err != nil {
		return err
	}
	if len(running) == 0 {
		return nil
	}

	names := processNames(running)
	g.logger.Warn("monitored applications running", "applications", strings.Join(names, ","))

	switch mode {
	case GuardForceClose:
	case GuardPrompt:
		if confirm == nil {
			return fmt.Errorf("%w: %s", ErrApplicationsRunning, strings.Join(names, ", "))
		}
		ok, err := confirm(fmt.Sprintf("Close %s and continue?", strings.Join(names, ", ")))
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %s (declined to close)", ErrApplicationsRunning, strings.Join(names, ", "))
		}
	default:
		return fmt.Errorf("%w: %s", ErrApplicationsRunning, strings.Join(names, ", "))
	}

	for _, p := range running {
		if err := g.lister.Terminate(p); err != nil {
			return fmt.Errorf("terminating %s (pid %d): %w", p.Name, p.PID, err)
		}
		g.logger.Info("application terminated", "name", p.Name, "pid", p.PID)
	}
	return g.awaitExit(running)
}

// awaitExit polls the process list until none of procs is listed, since
// their files stay locked until then.
func (g *Guard) awaitExit(procs []Process) error {
	pids := make(map[int]bool, len(procs))
	for _, p := range procs {
		pids[p.PID] = true
	}

	var waited time.Duration
	for {
		current, err := g.lister.List()
		if err != nil {
			return fmt.Errorf("listing processes: %w", err)
		}

		var remaining []Process
		for _, p := range current {
			if pids[p.PID] {
				remaining = append(remaining, p)
			}
		}
		if len(remaining) == 0 {
			return nil
		}
		if waited >= g.exitTimeout {
			return fmt.Errorf("%w: %s still running after %s", ErrApplicationsRunning,
				strings.Join(processNames(remaining), ", "), g.exitTimeout)
		}

		g.logger.Debug("waiting for applications to exit", "remaining", len(remaining))
		g.sleep(g.pollInterval)
		waited += g.pollInterval
	}
}

func (g *Guard) monitored(name string) bool {
	n := normalizeProcessName(name)
	for _, a := range g.applications {
		if a == n {
			return true
		}
	}
	return false
}

// normalizeProcessName lower-cases the base name and drops a trailing ".exe".
func normalizeProcessName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, `\`, "/")
	if i := strings.LastIndex(n, "/"); i >= 0 {
		n = n[i+1:]
	}
	return strings.TrimSuffix(n, ".exe")
}

func processNames(procs []Process) []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range procs {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}
