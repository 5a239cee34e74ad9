package main

import (
	"fmt"
	"io"
	"time"

	"profilesave/internal/model"

	"gopkg.in/yaml.v3"
)

type runView struct {
	ID         string        `yaml:"id"`
	Action     string        `yaml:"action"`
	Root       string        `yaml:"root"`
	Account    string        `yaml:"account"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt *time.Time    `yaml:"finished_at,omitempty"`
	Status     string        `yaml:"status"`
	Items      []runItemView `yaml:"items,omitempty"`
}

type runItemView struct {
	Key     string `yaml:"key"`
	Outcome string `yaml:"outcome"`
	Files   int    `yaml:"files"`
	Reason  string `yaml:"reason,omitempty"`
}

func newRunView(r *model.Run) runView {
	v := runView{
		ID:        r.ID,
		Action:    r.Action,
		Root:      r.Root,
		Account:   r.Account,
		StartedAt: r.StartedAt.UTC(),
		Status:    r.Status,
	}
	if r.FinishedAt.Valid {
		t := r.FinishedAt.Time.UTC()
		v.FinishedAt = &t
	}
	for _, it := range r.Items {
		v.Items = append(v.Items, runItemView{Key: it.ItemKey, Outcome: it.Outcome, Files: it.Files, Reason: it.Reason})
	}
	return v
}

// writeHistory renders runs as a text table or as a YAML document.
func writeHistory(w io.Writer, runs []*model.Run, format string) error {
	switch format {
	case "yaml":
		views := make([]runView, len(runs))
		for i, r := range runs {
			views[i] = newRunView(r)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}
		return enc.Close()
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		duration := ""
		if r.FinishedAt.Valid {
			d := r.FinishedAt.Time.Sub(r.StartedAt)
			duration = d.Truncate(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s  %-7s  %s  %-8s  %-10s  %s  %s\n",
			r.ID[:min(8, len(r.ID))],
			r.Action,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Status,
			duration,
			r.Account,
			r.Root,
		)
		for _, it := range r.Items {
			fmt.Fprintf(w, "    %-13s %-7s %3d  %s\n", it.ItemKey, it.Outcome, it.Files, it.Reason)
		}
	}
	return nil
}
