package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alexisbeaulieu97/pyforge/internal/logger"
	"github.com/alexisbeaulieu97/pyforge/internal/model"
	"github.com/alexisbeaulieu97/pyforge/internal/runner"
	pyforgeerrors "github.com/alexisbeaulieu97/pyforge/pkg/errors"
)

// Orchestrator executes the provisioning pipeline for one request on a
// single goroutine, converting step outcomes into events. It owns all run
// state; only the context and the emitter cross the observer boundary.
type Orchestrator struct {
	req    Request
	emit   model.Emitter
	log    *logger.Logger
	runner runner.Runner
	now    func() time.Time

	// run state accumulated across steps
	venvDir     string
	venvCreated bool
	installCmd  runner.Command
	outcome     model.RunOutcome
}

// NewOrchestrator constructs an orchestrator for a single run.
func NewOrchestrator(req Request, emit model.Emitter, log *logger.Logger, r runner.Runner) *Orchestrator {
	return &Orchestrator{
		req:    req,
		emit:   emit,
		log:    log,
		runner: r,
		now:    time.Now,
	}
}

type step struct {
	name    string
	run     func(context.Context) *model.StepResult
	enabled func() bool
}

// Run executes every pipeline step in order. It checks for cancellation
// before each step transition, applies the cleanup policy on fatal faults,
// and always finalizes with Done, Summary and ProgressComplete events. It
// never panics out; unexpected faults are caught and reported as a failed
// run.
func (o *Orchestrator) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error(fmt.Errorf("%v", r), "worker panic")
			o.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("unexpected fault: %v", r)})
			o.finalize(false, "Project creation failed.")
		}
	}()

	steps := []step{
		{name: "create-folder", run: o.createFolder},
		{name: "create-layout", run: o.createLayout},
		{name: "create-environment", run: o.createEnvironment},
		{name: "locate-installer", run: o.locateInstaller},
		{name: "install-packages", run: o.installPackages},
		{name: "write-manifest", run: o.writeManifest},
		{name: "write-documentation", run: o.writeDocumentation, enabled: func() bool { return o.req.Options.CreateManifestDoc }},
		{name: "init-version-control", run: o.initVersionControl, enabled: func() bool { return o.req.Options.CreateVCS }},
		{name: "compute-size", run: o.computeSize},
	}

	for _, s := range steps {
		if ctx.Err() != nil {
			o.abortCancelled()
			return
		}
		if s.enabled != nil && !s.enabled() {
			continue
		}

		o.emit(model.StepStartEvent{Step: s.name})
		o.log.WithFields(map[string]any{"step": s.name}).Debug("step started")

		start := o.now()
		res := s.run(ctx)
		if res == nil {
			res = &model.StepResult{Status: model.StatusSuccess}
		}
		res.Step = s.name
		res.Duration = o.now().Sub(start)
		if res.Timestamp.IsZero() {
			res.Timestamp = o.now()
		}
		o.emit(model.StepCompleteEvent{Result: *res})

		if res.Failed() {
			if ctx.Err() != nil {
				o.abortCancelled()
				return
			}
			if isFatal(res.Err) {
				o.cleanup()
				o.finalize(false, "Project creation failed.")
				return
			}
			// Degraded: the fault was already reported, run continues.
		}
	}

	o.finalize(true, fmt.Sprintf("Project %q created successfully!", o.req.Name()))
}

func (o *Orchestrator) abortCancelled() {
	o.emit(model.StatusEvent{Level: model.LevelWarning, Text: "run cancelled"})
	o.cleanup()
	o.finalize(false, "Project creation cancelled.")
}

// cleanup removes a partially created environment, best-effort. Faults are
// logged as warnings and never escalated.
func (o *Orchestrator) cleanup() {
	if !o.req.Options.CleanupOnAbort || !o.venvCreated || o.venvDir == "" {
		return
	}
	if _, err := os.Stat(o.venvDir); err != nil {
		return
	}
	if err := os.RemoveAll(o.venvDir); err != nil {
		o.emit(model.StatusEvent{Level: model.LevelWarning, Text: fmt.Sprintf("failed to clean up: %v", err)})
		return
	}
	o.emit(model.LogEvent{Text: "Cleaned up partial virtual environment."})
}

// finalize emits the terminal event sequence: Done, then Summary, then
// ProgressComplete, unconditionally.
func (o *Orchestrator) finalize(succeeded bool, message string) {
	o.outcome.Succeeded = succeeded
	o.emit(model.DoneEvent{Succeeded: succeeded, Message: message})
	o.emit(model.SummaryEvent{Outcome: o.outcome})
	o.emit(model.ProgressCompleteEvent{})
}

func isFatal(err error) bool {
	var stepErr *pyforgeerrors.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Fatal
	}
	return false
}
