package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

// visibleLog bounds how many log lines render at once.
const visibleLog = 12

// View renders the current state of the observer.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("pyforge • %s", m.projectName)))

	switch {
	case m.done && m.succeeded:
		sections = append(sections, successStyle.Render(m.doneMessage))
	case m.done:
		sections = append(sections, failureStyle.Render(m.doneMessage))
	case m.cancelRequested:
		sections = append(sections, warningStyle.Render("Cancelling..."))
	case m.current != "":
		sections = append(sections, fmt.Sprintf("%s %s", m.spinner.View(), m.current))
	default:
		sections = append(sections, fmt.Sprintf("%s starting...", m.spinner.View()))
	}

	sections = append(sections, sectionStyle.Render("Progress"), m.progress.View())

	if len(m.order) > 0 {
		sections = append(sections, sectionStyle.Render("Steps"), m.renderSteps())
	}

	if len(m.logLines) > 0 {
		sections = append(sections, sectionStyle.Render("Log"), m.renderLog())
	}

	if m.summary != nil {
		sections = append(sections, summaryStyle.Render(renderSummary(*m.summary)))
	}

	if !m.done {
		sections = append(sections, subtleStyle.Render("press ctrl+c to cancel"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSteps() string {
	lines := make([]string, 0, len(m.order))
	for _, id := range m.order {
		res := m.steps[id]
		line := fmt.Sprintf(" %s %s", StatusIcon(res.Status), id)
		if strings.TrimSpace(res.Message) != "" {
			line = fmt.Sprintf("%s: %s", line, res.Message)
		}
		if res.Duration > 0 {
			line = fmt.Sprintf("%s (%s)", line, res.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLog() string {
	lines := m.logLines
	if len(lines) > visibleLog {
		lines = lines[len(lines)-visibleLog:]
	}
	return logStyle.Render(strings.Join(lines, "\n"))
}

func renderStatusLine(ev model.StatusEvent) string {
	switch ev.Level {
	case model.LevelSuccess:
		return successStyle.Render(ev.Text)
	case model.LevelWarning:
		return warningStyle.Render(ev.Text)
	case model.LevelError:
		return failureStyle.Render(ev.Text)
	default:
		return ev.Text
	}
}

func renderSummary(outcome model.RunOutcome) string {
	vcs := "no"
	if outcome.VCSInitialized {
		vcs = "yes"
	}
	return strings.Join([]string{
		"Summary",
		fmt.Sprintf("  Path:     %s", outcome.ProjectPath),
		fmt.Sprintf("  Size:     %s", model.HumanSize(outcome.ProjectSizeBytes)),
		fmt.Sprintf("  Packages: %d", outcome.InstalledPackageCount),
		fmt.Sprintf("  Git:      %s", vcs),
	}, "\n")
}

// StatusIcon returns the glyph representing a step status.
func StatusIcon(status string) string {
	switch status {
	case model.StatusSuccess:
		return successStyle.Render("✓")
	case model.StatusRunning:
		return runningStyle.Render("⏳")
	case model.StatusFailed:
		return failureStyle.Render("✗")
	case model.StatusWarning:
		return warningStyle.Render("!")
	case model.StatusSkipped:
		return skippedStyle.Render("⊘")
	default:
		return pendingStyle.Render("…")
	}
}
