package profile

import (
	"fmt"
	"strings"
)

// Action is the direction of a copy run.
type Action string

const (
	ActionBackup  Action = "backup"
	ActionRestore Action = "restore"
)

// ParseAction accepts "backup" or "restore" in any case.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", fmt.Errorf("%w: action", ErrMissingArgument)
	case string(ActionBackup):
		return ActionBackup, nil
	case string(ActionRestore):
		return ActionRestore, nil
	default:
		return "", fmt.Errorf("unknown action %q (want backup or restore)", s)
	}
}

// Outcome is what happened to a single item during a run.
type Outcome string

const (
	OutcomeCopied  Outcome = "copied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ItemResult records the outcome for one requested item.
type ItemResult struct {
	Key     ItemKey
	Outcome Outcome
	Files   int
	Reason  string
}

// Report is the result of a backup or restore. On failure it still lists
// everything that was done before the error.
type Report struct {
	Action Action
	Root   string
	Items  []ItemResult
}

func (r *Report) add(res ItemResult) {
	r.Items = append(r.Items, res)
}

// Keys returns the keys with the given outcome, in request order.
func (r *Report) Keys(o Outcome) []ItemKey {
	var keys []ItemKey
	for _, it := range r.Items {
		if it.Outcome == o {
			keys = append(keys, it.Key)
		}
	}
	return keys
}

// FileCount returns the total number of files copied.
func (r *Report) FileCount() int {
	n := 0
	for _, it := range r.Items {
		n += it.Files
	}
	return n
}
