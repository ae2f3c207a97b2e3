package model

// Level classifies a StatusEvent for presentation purposes.
type Level string

const (
	// LevelInfo marks neutral progress information.
	LevelInfo Level = "info"
	// LevelSuccess marks a completed unit of work.
	LevelSuccess Level = "success"
	// LevelWarning marks a degraded but non-fatal condition.
	LevelWarning Level = "warning"
	// LevelError marks a failure.
	LevelError Level = "error"
)

// Event is a single message emitted by the provisioning worker. Events are
// delivered to the observer in emission order over a one-directional channel.
type Event interface {
	isEvent()
}

// LogEvent carries one line of raw output from an external process or step.
type LogEvent struct {
	Text string
}

// StatusEvent carries a classified, human-readable status message.
type StatusEvent struct {
	Level Level
	Text  string
}

// ProgressEvent reports fractional completion of the current activity.
type ProgressEvent struct {
	Fraction float64
}

// ProgressCompleteEvent is the terminal event of every run.
type ProgressCompleteEvent struct{}

// StepStartEvent announces that a pipeline step began executing.
type StepStartEvent struct {
	Step string
}

// StepCompleteEvent reports the outcome of a finished pipeline step.
type StepCompleteEvent struct {
	Result StepResult
}

// DoneEvent signals the end of the run. Succeeded is the single authoritative
// success indicator for the observer.
type DoneEvent struct {
	Succeeded bool
	Message   string
}

// SummaryEvent carries the final accumulated outcome of the run. It is
// emitted after DoneEvent regardless of which steps failed non-fatally.
type SummaryEvent struct {
	Outcome RunOutcome
}

func (LogEvent) isEvent()              {}
func (StatusEvent) isEvent()           {}
func (ProgressEvent) isEvent()         {}
func (ProgressCompleteEvent) isEvent() {}
func (StepStartEvent) isEvent()        {}
func (StepCompleteEvent) isEvent()     {}
func (DoneEvent) isEvent()             {}
func (SummaryEvent) isEvent()          {}
