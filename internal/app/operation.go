package app

import (
	"fmt"

	"profilesave/internal/model"
	"profilesave/internal/profile"
)

// startRun records the beginning of a backup or restore in the history.
// The first run uses the ID the app was created with; later runs get a fresh
// one. The log handler is switched to the same ID.
func (a *ProfileApp) startRun(action profile.Action, root string) (*model.Run, error) {
	id := a.runID
	if a.runs > 0 {
		id = a.idgen.New()
	}
	a.runs++
	if a.run != nil {
		a.run.Set(id)
	}

	run := &model.Run{
		ID:        id,
		Action:    string(action),
		Root:      root,
		Account:   a.user.AccountName(),
		StartedAt: a.clock.Now(),
		Status:    model.StatusRunning,
	}
	if err := a.history.CreateRun(run); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}

// finishRun stores the outcome of run and returns opErr unchanged, or the
// history error when opErr is nil.
func (a *ProfileApp) finishRun(run *model.Run, report *profile.Report, opErr error) error {
	status := runStatus(opErr)
	if opErr != nil {
		a.logger.Error(run.Action+" failed", "root", run.Root, "error", opErr)
	}

	err := a.history.FinishRun(run.ID, status, a.clock.Now(), profile.RunItems(run.ID, report))
	if err != nil {
		a.logger.Warn("recording run outcome failed", "run", run.ID, "error", err)
		if opErr == nil {
			return fmt.Errorf("recording run outcome: %w", err)
		}
	}
	return opErr
}

// runStatus maps an operation error to the status stored in the history.
func runStatus(err error) string {
	if err != nil {
		return model.StatusError
	}
	return model.StatusSuccess
}
