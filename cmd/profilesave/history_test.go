package main

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"profilesave/internal/model"
)

func sampleRuns() []*model.Run {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return []*model.Run{{
		ID:         "3f2c9a1e-0000-4000-8000-000000000000",
		Action:     "backup",
		Root:       "/backup",
		Account:    "alice",
		StartedAt:  start,
		FinishedAt: sql.NullTime{Time: start.Add(1500 * time.Millisecond), Valid: true},
		Status:     model.StatusSuccess,
		Items: []model.RunItem{
			{ItemKey: "Templates", Outcome: "copied", Files: 2},
			{ItemKey: "Signatures", Outcome: "skipped", Reason: "nothing to back up"},
		},
	}}
}

func TestWriteHistory_text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleRuns(), "text"))

	out := buf.String()
	assert.Contains(t, out, "3f2c9a1e  backup   2024-01-15 10:30:00  success   1.5s")
	assert.Contains(t, out, "Signatures    skipped   0  nothing to back up")

	buf.Reset()
	require.NoError(t, writeHistory(&buf, nil, ""))
	assert.Equal(t, "No runs recorded.\n", buf.String())
}

func TestWriteHistory_yaml(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, sampleRuns(), "yaml"))

	var got []runView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Account)
	require.NotNil(t, got[0].FinishedAt)
	assert.Len(t, got[0].Items, 2)
	assert.Equal(t, "nothing to back up", got[0].Items[1].Reason)
}

func TestWriteHistory_unknownFormat(t *testing.T) {
	assert.Error(t, writeHistory(&bytes.Buffer{}, nil, "xml"))
}
