package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilesave/internal/model"
)

func newTestHistory(t *testing.T) *SQLiteHistory {
	t.Helper()
	h, err := NewSQLiteHistory(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestSQLiteHistory_RunLifecycle(t *testing.T) {
	h := newTestHistory(t)
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	run := &model.Run{
		ID:        "run-1",
		Action:    "backup",
		Root:      "/mnt/backup",
		Account:   "ada",
		StartedAt: started,
		Status:    model.StatusRunning,
	}
	require.NoError(t, h.CreateRun(run))

	items := []model.RunItem{
		{ItemKey: "Templates", Outcome: "copied", Files: 4},
		{ItemKey: "Signatures", Outcome: "skipped", Reason: "nothing to back up"},
	}
	require.NoError(t, h.FinishRun("run-1", model.StatusSuccess, started.Add(2*time.Second), items))

	runs, err := h.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "backup", got.Action)
	assert.Equal(t, "ada", got.Account)
	assert.Equal(t, model.StatusSuccess, got.Status)
	assert.True(t, got.StartedAt.Equal(started))
	require.True(t, got.FinishedAt.Valid)
	assert.Equal(t, 2*time.Second, got.FinishedAt.Time.Sub(got.StartedAt))

	require.Len(t, got.Items, 2)
	assert.Equal(t, "Templates", got.Items[0].ItemKey)
	assert.Equal(t, 4, got.Items[0].Files)
	assert.Equal(t, "run-1", got.Items[0].RunID)
	assert.Equal(t, "skipped", got.Items[1].Outcome)
	assert.Equal(t, "nothing to back up", got.Items[1].Reason)
}

func TestSQLiteHistory_ListRuns_newestFirstWithLimit(t *testing.T) {
	h := newTestHistory(t)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, h.CreateRun(&model.Run{
			ID:        id,
			Action:    "restore",
			Root:      "/b",
			Account:   "ada",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Status:    model.StatusRunning,
		}))
	}

	runs, err := h.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.False(t, runs[0].FinishedAt.Valid)
	assert.Empty(t, runs[0].Items)

	for _, limit := range []int{0, -1} {
		all, err := h.ListRuns(limit)
		require.NoError(t, err)
		assert.Len(t, all, 3, "limit %d", limit)
	}
}

func TestSQLiteHistory_FinishRun_unknownRun(t *testing.T) {
	h := newTestHistory(t)
	err := h.FinishRun("missing", model.StatusError, time.Now(), nil)
	assert.Error(t, err)
}

func TestSQLiteHistory_CheckMigrations(t *testing.T) {
	h := newTestHistory(t)
	assert.NoError(t, h.CheckMigrations())
}
