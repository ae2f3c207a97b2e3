package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

// Update handles Bubbletea messages and applies pipeline events to the
// observer state. Events arrive in emission order and are processed in that
// order.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.requestCancel()
		case tea.KeyRunes:
			if string(msg.Runes) == "q" {
				return m.requestCancel()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		updated, cmd := m.progress.Update(msg)
		if p, ok := updated.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd

	case EventMsg:
		return m.applyEvent(msg.Event)

	case RunFinishedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) requestCancel() (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}
	if !m.cancelRequested {
		m.cancelRequested = true
		m.appendLog("Cancellation requested...")
		if m.cancel != nil {
			m.cancel()
		}
	}
	return m, nil
}

func (m Model) applyEvent(ev model.Event) (tea.Model, tea.Cmd) {
	switch ev := ev.(type) {
	case model.LogEvent:
		m.appendLog(ev.Text)

	case model.StatusEvent:
		m.appendLog(renderStatusLine(ev))

	case model.StepStartEvent:
		m.current = ev.Step
		m.recordStep(ev.Step, model.StepResult{Step: ev.Step, Status: model.StatusRunning})

	case model.StepCompleteEvent:
		m.recordStep(ev.Result.Step, ev.Result)

	case model.ProgressEvent:
		m.fraction = ev.Fraction
		return m, m.progress.SetPercent(ev.Fraction)

	case model.DoneEvent:
		m.done = true
		m.succeeded = ev.Succeeded
		m.doneMessage = ev.Message
		m.current = ""

	case model.SummaryEvent:
		outcome := ev.Outcome
		m.summary = &outcome

	case model.ProgressCompleteEvent:
		m.fraction = 1.0
		return m, m.progress.SetPercent(1.0)
	}

	return m, nil
}
