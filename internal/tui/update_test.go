package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func TestUpdate_StepLifecycle(t *testing.T) {
	m := NewModel("demo", nil)

	m, _ = apply(t, m, EventMsg{Event: model.StepStartEvent{Step: "create-folder"}})
	assert.Equal(t, "create-folder", m.current)
	assert.Equal(t, model.StatusRunning, m.steps["create-folder"].Status)

	done := model.StepResult{Step: "create-folder", Status: model.StatusSuccess, Message: "project folder created"}
	m, _ = apply(t, m, EventMsg{Event: model.StepCompleteEvent{Result: done}})
	assert.Equal(t, model.StatusSuccess, m.steps["create-folder"].Status)
	assert.Equal(t, []string{"create-folder"}, m.order, "step names appear once, in arrival order")
}

func TestUpdate_LogTailBounded(t *testing.T) {
	m := NewModel("demo", nil)
	for i := 0; i < logTail+50; i++ {
		m, _ = apply(t, m, EventMsg{Event: model.LogEvent{Text: "line"}})
	}
	assert.Len(t, m.logLines, logTail)
}

func TestUpdate_DoneAndSummary(t *testing.T) {
	m := NewModel("demo", nil)

	m, _ = apply(t, m, EventMsg{Event: model.DoneEvent{Succeeded: true, Message: "done"}})
	assert.True(t, m.Done())
	assert.True(t, m.Succeeded())
	assert.Nil(t, m.Summary())

	outcome := model.RunOutcome{Succeeded: true, ProjectPath: "/tmp/demo", InstalledPackageCount: 3}
	m, _ = apply(t, m, EventMsg{Event: model.SummaryEvent{Outcome: outcome}})
	require.NotNil(t, m.Summary())
	assert.Equal(t, 3, m.Summary().InstalledPackageCount)
}

func TestUpdate_ProgressCompleteFillsBar(t *testing.T) {
	m := NewModel("demo", nil)

	m, _ = apply(t, m, EventMsg{Event: model.ProgressEvent{Fraction: 0.5}})
	assert.InDelta(t, 0.5, m.fraction, 1e-9)

	m, cmd := apply(t, m, EventMsg{Event: model.ProgressCompleteEvent{}})
	assert.InDelta(t, 1.0, m.fraction, 1e-9)
	assert.NotNil(t, cmd, "progress bar animation command expected")
}

func TestUpdate_CancelKeyInvokesCancelOnce(t *testing.T) {
	calls := 0
	m := NewModel("demo", func() { calls++ })

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.Equal(t, 1, calls, "cancellation is idempotent")
	assert.True(t, m.cancelRequested)
}

func TestUpdate_CancelAfterDoneQuits(t *testing.T) {
	m := NewModel("demo", func() { t.Fatal("cancel must not fire after completion") })
	m, _ = apply(t, m, EventMsg{Event: model.DoneEvent{Succeeded: true, Message: "done"}})

	_, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_RunFinishedQuits(t *testing.T) {
	m := NewModel("demo", nil)
	m, cmd := apply(t, m, RunFinishedMsg{})
	assert.True(t, m.Done())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_WindowSizeCapsProgressWidth(t *testing.T) {
	m := NewModel("demo", nil)

	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	assert.Equal(t, 60, m.progress.Width)

	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 40, Height: 50})
	assert.Equal(t, 36, m.progress.Width)
}

func TestView_ContainsProjectAndSteps(t *testing.T) {
	m := NewModel("demo", nil)
	m, _ = apply(t, m, EventMsg{Event: model.StepStartEvent{Step: "create-folder"}})
	m, _ = apply(t, m, EventMsg{Event: model.LogEvent{Text: "Project folder: /tmp/demo"}})

	view := m.View()
	assert.Contains(t, view, "demo")
	assert.Contains(t, view, "create-folder")
	assert.Contains(t, view, "Project folder: /tmp/demo")
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{model.StatusSuccess, "✓"},
		{model.StatusFailed, "✗"},
		{model.StatusWarning, "!"},
		{model.StatusSkipped, "⊘"},
	}
	for _, tt := range tests {
		assert.Contains(t, StatusIcon(tt.status), tt.want)
	}
}
