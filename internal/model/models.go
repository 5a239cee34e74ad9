package model

import (
	"database/sql"
	"time"
)

// Run status values.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Run is one backup or restore invocation.
type Run struct {
	ID         string // UUID
	Action     string // "backup" or "restore"
	Root       string // Backup root directory
	Account    string // Account whose profile was copied
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Status     string
	Items      []RunItem
}

// RunItem is the outcome for one item within a run.
type RunItem struct {
	RunID   string // Foreign key to Run
	ItemKey string
	Outcome string // "copied", "skipped" or "failed"
	Files   int
	Reason  string
}
