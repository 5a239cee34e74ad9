package app

import (
	"fmt"
	"os"
	"path/filepath"

	"profilesave/internal/config"
	"profilesave/internal/database"
	"profilesave/internal/fs"
	"profilesave/internal/platform"
	"profilesave/internal/profile"
)

// Platform bundles the operating-system bindings the app depends on.
type Platform struct {
	Sessions  profile.SessionInspector
	Accounts  profile.AccountLookup
	Documents profile.DocumentsLocator
	Processes profile.ProcessLister
}

// OSPlatform returns the bindings for the running operating system.
func OSPlatform() Platform {
	return Platform{
		Sessions:  platform.ConsoleSession{},
		Accounts:  platform.OSAccounts{},
		Documents: platform.NewDocumentsLocator(),
		Processes: platform.OSProcesses{},
	}
}

// ProfileApp is the application layer between the CLI and the profile core.
// It resolves the user once, builds the catalog, and exposes backup and
// restore as direct calls. The caller must call Close when done.
type ProfileApp struct {
	cfg     *config.Config
	user    profile.ActiveUser
	catalog profile.Catalog
	engine  *profile.Engine
	guard   *profile.Guard
	history profile.History
	logger  profile.Logger
	clock   profile.Clock
	idgen   profile.IDGenerator
	runID   string
	runs    int
	run     *currentRun
	logFile *os.File
}

// NewProfileApp creates a fully wired ProfileApp for the account named by
// explicitUser, or for the console session owner when it is empty.
func NewProfileApp(cfg *config.Config, explicitUser string) (*ProfileApp, error) {
	idgen := profile.UUIDGenerator{}
	runID := idgen.New()
	run := newCurrentRun(runID)

	logger, logFile, err := newLogger(cfg.LogDir, run)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	history, err := OpenHistory(cfg)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	a, err := newProfileApp(cfg, explicitUser, OSPlatform(), history, &slogAdapter{l: logger}, profile.RealClock{}, idgen, runID)
	if err != nil {
		logger.Error("startup failed", "error", err)
		history.Close()
		logFile.Close()
		return nil, err
	}
	a.run = run
	a.logFile = logFile
	return a, nil
}

func newProfileApp(cfg *config.Config, explicitUser string, p Platform, history profile.History, logger profile.Logger, clock profile.Clock, idgen profile.IDGenerator, runID string) (*ProfileApp, error) {
	fsmgr := fs.NewOSFilesystemManager(cfg.Copy.Exclude)

	user, err := profile.NewResolver(p.Sessions, p.Accounts, logger).Resolve(explicitUser)
	if err != nil {
		return nil, err
	}

	catalog, err := profile.BuildCatalog(user, p.Documents, fsmgr)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	logger.Debug("catalog built", "items", catalog.Len(), "detected", len(catalog.Detected()))
	for _, d := range catalog.Items() {
		if d.DetectErr != nil {
			logger.Warn("item source unreadable", "item", d.Key, "path", d.SourcePath, "error", d.DetectErr)
		}
	}

	return &ProfileApp{
		cfg:     cfg,
		user:    user,
		catalog: catalog,
		engine:  profile.NewEngine(fsmgr, logger),
		guard:   profile.NewGuard(p.Processes, cfg.Guard.Applications, logger),
		history: history,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
		runID:   runID,
	}, nil
}

// User returns the resolved account.
func (a *ProfileApp) User() profile.ActiveUser { return a.user }

// Catalog returns the item catalog built at startup.
func (a *ProfileApp) Catalog() profile.Catalog { return a.catalog }

// Backup copies the requested items into root. An empty root falls back to
// the configured backup_root; no keys means the configured default items,
// or every catalog item.
func (a *ProfileApp) Backup(root string, keys []profile.ItemKey) (*profile.Report, error) {
	root, keys, err := a.resolveArgs(root, keys)
	if err != nil {
		return nil, err
	}

	run, err := a.startRun(profile.ActionBackup, root)
	if err != nil {
		return nil, err
	}

	report, err := a.engine.Backup(a.catalog, root, keys)
	return report, a.finishRun(run, report, err)
}

// Restore checks that no monitored application is running (see
// profile.Guard.EnsureClosed for mode and confirm) and then copies the
// requested items from root back into the profile.
func (a *ProfileApp) Restore(root string, keys []profile.ItemKey, mode profile.GuardMode, confirm profile.Confirmer) (*profile.Report, error) {
	root, keys, err := a.resolveArgs(root, keys)
	if err != nil {
		return nil, err
	}

	run, err := a.startRun(profile.ActionRestore, root)
	if err != nil {
		return nil, err
	}

	if err := a.guard.EnsureClosed(mode, confirm); err != nil {
		return nil, a.finishRun(run, nil, err)
	}

	report, err := a.engine.Restore(a.catalog, root, keys)
	return report, a.finishRun(run, report, err)
}

// RunningApplications returns the monitored applications currently running.
func (a *ProfileApp) RunningApplications() ([]profile.Process, error) {
	return a.guard.Running()
}

// OpenHistory opens the configured run history without resolving a user.
// The caller must Close it.
func OpenHistory(cfg *config.Config) (profile.History, error) {
	h, err := database.NewHistoryFromConfig(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return h, nil
}

// Close releases the history store and the log file.
func (a *ProfileApp) Close() error {
	var firstErr error
	if err := a.history.Close(); err != nil {
		firstErr = fmt.Errorf("closing history: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

func (a *ProfileApp) resolveArgs(root string, keys []profile.ItemKey) (string, []profile.ItemKey, error) {
	if root == "" {
		root = a.cfg.BackupRoot
	}
	if root == "" {
		return "", nil, fmt.Errorf("%w: backup root path", profile.ErrMissingArgument)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("resolving backup root: %w", err)
	}

	if len(keys) == 0 && len(a.cfg.DefaultItems) > 0 {
		for _, name := range a.cfg.DefaultItems {
			k, err := profile.ParseItemKey(name)
			if err != nil {
				return "", nil, fmt.Errorf("config default_items: %w", err)
			}
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		keys = a.catalog.Keys()
	}
	return abs, keys, nil
}
