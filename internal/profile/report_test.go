package profile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilesave/internal/profile"
)

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestParseAction(t *testing.T) {
	a, err := profile.ParseAction("Backup")
	require.NoError(t, err)
	assert.Equal(t, profile.ActionBackup, a)

	a, err = profile.ParseAction("restore")
	require.NoError(t, err)
	assert.Equal(t, profile.ActionRestore, a)

	_, err = profile.ParseAction("")
	assert.ErrorIs(t, err, profile.ErrMissingArgument)

	_, err = profile.ParseAction("sync")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, profile.ErrMissingArgument)
}

func TestRunItems(t *testing.T) {
	assert.Nil(t, profile.RunItems("run-1", nil))

	report := &profile.Report{Items: []profile.ItemResult{
		{Key: profile.Templates, Outcome: profile.OutcomeCopied, Files: 3},
		{Key: profile.Signatures, Outcome: profile.OutcomeSkipped, Reason: "nothing to back up"},
	}}
	items := profile.RunItems("run-1", report)
	require.Len(t, items, 2)
	assert.Equal(t, "run-1", items[0].RunID)
	assert.Equal(t, "Templates", items[0].ItemKey)
	assert.Equal(t, "copied", items[0].Outcome)
	assert.Equal(t, 3, items[0].Files)
	assert.Equal(t, "skipped", items[1].Outcome)
	assert.Equal(t, "nothing to back up", items[1].Reason)
}
