package profile

import (
	"time"

	"profilesave/internal/model"
)

// History records runs and their per-item outcomes.
type History interface {
	// CreateRun stores a new run in the running state.
	CreateRun(run *model.Run) error

	// FinishRun sets the final status of a run and stores its item outcomes.
	FinishRun(runID string, status string, finishedAt time.Time, items []model.RunItem) error

	// ListRuns returns up to limit runs, newest first, with their items.
	// A limit of zero or less means no limit.
	ListRuns(limit int) ([]*model.Run, error)

	// Close releases the underlying storage.
	Close() error
}

// RunItems converts a report into history rows for runID.
func RunItems(runID string, r *Report) []model.RunItem {
	if r == nil {
		return nil
	}
	items := make([]model.RunItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = model.RunItem{
			RunID:   runID,
			ItemKey: string(it.Key),
			Outcome: string(it.Outcome),
			Files:   it.Files,
			Reason:  it.Reason,
		}
	}
	return items
}
