package model

import (
	"time"
)

const (
	// StatusPending indicates a step has not started yet.
	StatusPending = "pending"
	// StatusRunning indicates a step is actively executing.
	StatusRunning = "running"
	// StatusSuccess marks a successful step execution.
	StatusSuccess = "success"
	// StatusSkipped indicates the step was not applicable for this run.
	StatusSkipped = "skipped"
	// StatusWarning marks a step that degraded but did not fail the run.
	StatusWarning = "warning"
	// StatusFailed marks a failure during step execution.
	StatusFailed = "failed"
)

// StepResult captures the outcome of executing a single pipeline step.
// PartialArtifacts records whether the step left files on disk before
// failing, which drives the cleanup policy on abort.
type StepResult struct {
	Step             string
	Status           string
	Message          string
	Err              error
	PartialArtifacts bool
	Duration         time.Duration
	Timestamp        time.Time
}

// Failed reports whether the step ended in failure.
func (r StepResult) Failed() bool {
	return r.Status == StatusFailed
}
