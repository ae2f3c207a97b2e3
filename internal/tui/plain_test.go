package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

func TestPlainRenderer(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewPlainRenderer(out)

	r.Render(model.LogEvent{Text: "Created directory: src/"})
	r.Render(model.StatusEvent{Level: model.LevelWarning, Text: "venv already exists, reusing."})
	r.Render(model.ProgressEvent{Fraction: 0.5})
	r.Render(model.DoneEvent{Succeeded: true, Message: "done"})
	r.Render(model.SummaryEvent{Outcome: model.RunOutcome{
		ProjectPath:           "/tmp/demo",
		ProjectSizeBytes:      2048,
		InstalledPackageCount: 2,
		VCSInitialized:        true,
	}})

	got := out.String()
	assert.Contains(t, got, "Created directory: src/\n")
	assert.Contains(t, got, "venv already exists, reusing.")
	assert.Contains(t, got, "done\n")
	assert.Contains(t, got, "path=/tmp/demo size=2.0 KB packages=2 git=yes")
	assert.NotContains(t, got, "0.5", "progress fractions are not rendered in plain mode")
}
