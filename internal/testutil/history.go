package testutil

import (
	"testing"

	"profilesave/internal/database"
)

// NewTestHistory creates an in-memory history database with the schema applied.
// It is closed automatically when the test completes.
func NewTestHistory(t *testing.T) *database.SQLiteHistory {
	t.Helper()

	h, err := database.NewSQLiteHistory(":memory:")
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}

	t.Cleanup(func() {
		h.Close()
	})

	return h
}
