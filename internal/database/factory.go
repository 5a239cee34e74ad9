package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"profilesave/internal/config"
	"profilesave/internal/model"
	"profilesave/internal/profile"
)

// HistoryFileName is the database file created under history.data_dir.
const HistoryFileName = "history.db"

// NewHistoryFromConfig creates a History implementation based on the history config type.
func NewHistoryFromConfig(cfg config.HistoryConfig) (profile.History, error) {
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		return NewSQLiteHistory(filepath.Join(cfg.DataDir, HistoryFileName))
	case "memory":
		return NewSQLiteHistory(":memory:")
	case "none":
		return NopHistory{}, nil
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}

// NopHistory records nothing.
type NopHistory struct{}

func (NopHistory) CreateRun(*model.Run) error                                 { return nil }
func (NopHistory) FinishRun(string, string, time.Time, []model.RunItem) error { return nil }
func (NopHistory) ListRuns(int) ([]*model.Run, error)                         { return nil, nil }
func (NopHistory) Close() error                                               { return nil }

var _ profile.History = NopHistory{}
