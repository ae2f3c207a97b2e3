package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

// logTail bounds how many log lines the model retains.
const logTail = 200

// EventMsg wraps one pipeline event for Bubbletea delivery.
type EventMsg struct {
	Event model.Event
}

// RunFinishedMsg signals that the run's event channel has closed.
type RunFinishedMsg struct{}

// Model contains the Bubbletea state for the provisioning observer.
type Model struct {
	projectName string
	cancel      func()

	spinner  spinner.Model
	progress progress.Model

	steps   map[string]model.StepResult
	order   []string
	current string

	logLines []string
	fraction float64

	done            bool
	succeeded       bool
	doneMessage     string
	summary         *model.RunOutcome
	cancelRequested bool
	width           int
}

// NewModel constructs the observer model. cancel is invoked once when the
// operator requests cancellation.
func NewModel(projectName string, cancel func()) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = runningStyle

	return Model{
		projectName: projectName,
		cancel:      cancel,
		spinner:     sp,
		progress:    progress.New(progress.WithDefaultGradient()),
		steps:       make(map[string]model.StepResult),
		width:       80,
	}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Done reports whether the run has finished.
func (m Model) Done() bool {
	return m.done
}

// Succeeded reports the authoritative success state from the Done event.
func (m Model) Succeeded() bool {
	return m.succeeded
}

// Summary returns the final run outcome, or nil before the Summary event.
func (m Model) Summary() *model.RunOutcome {
	return m.summary
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > logTail {
		m.logLines = m.logLines[len(m.logLines)-logTail:]
	}
}

func (m *Model) recordStep(id string, res model.StepResult) {
	if _, seen := m.steps[id]; !seen {
		m.order = append(m.order, id)
	}
	m.steps[id] = res
}
