package tui

import (
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

// PlainRenderer writes one line per event, for non-interactive output.
type PlainRenderer struct {
	out io.Writer
}

// NewPlainRenderer constructs a renderer writing to out.
func NewPlainRenderer(out io.Writer) *PlainRenderer {
	return &PlainRenderer{out: out}
}

// Render writes the event. Progress fractions and step boundaries are
// omitted; log ordering is preserved.
func (r *PlainRenderer) Render(ev model.Event) {
	switch ev := ev.(type) {
	case model.LogEvent:
		fmt.Fprintln(r.out, ev.Text)
	case model.StatusEvent:
		fmt.Fprintf(r.out, "[%s] %s\n", ev.Level, ev.Text)
	case model.DoneEvent:
		fmt.Fprintln(r.out, ev.Message)
	case model.SummaryEvent:
		fmt.Fprintln(r.out, renderPlainSummary(ev.Outcome))
	}
}

func renderPlainSummary(outcome model.RunOutcome) string {
	vcs := "no"
	if outcome.VCSInitialized {
		vcs = "yes"
	}
	return fmt.Sprintf("path=%s size=%s packages=%d git=%s",
		outcome.ProjectPath, model.HumanSize(outcome.ProjectSizeBytes), outcome.InstalledPackageCount, vcs)
}
