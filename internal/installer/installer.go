package installer

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/pyforge/internal/logger"
	"github.com/alexisbeaulieu97/pyforge/internal/model"
	"github.com/alexisbeaulieu97/pyforge/internal/runner"
	"github.com/alexisbeaulieu97/pyforge/internal/validation"
)

// Outcome aggregates the result of installing a package set.
type Outcome struct {
	Requested int
	Installed int
	Failed    []string
	Succeeded bool
	Cancelled bool
}

// Installer installs a set of packages with a batch-first strategy: one
// invocation receiving every package, falling back to sequential per-package
// installs when the batch fails. Falling back isolates a faulty specifier
// without operator intervention, at the cost of resolver consistency.
type Installer struct {
	runner runner.Runner
	emit   model.Emitter
	log    *logger.Logger

	// strict treats a partial fallback result as overall failure instead of
	// a warning.
	strict bool
}

// New creates an Installer reporting through emit.
func New(r runner.Runner, emit model.Emitter, log *logger.Logger, strict bool) *Installer {
	return &Installer{runner: r, emit: emit, log: log, strict: strict}
}

// Install runs the batch-then-fallback strategy for the given specs. The
// base command is the located installer invocation (for example pip with an
// "install" argument); package specifiers are appended as individual
// arguments, never through a shell. Specs are expected to be pre-validated;
// anything that fails re-validation is reported as skipped and excluded.
func (i *Installer) Install(ctx context.Context, base runner.Command, specs []model.PackageSpec) Outcome {
	valid := make([]model.PackageSpec, 0, len(specs))
	for _, spec := range specs {
		if _, err := validation.ParsePackage(spec.Raw); err != nil {
			i.emit(model.StatusEvent{Level: model.LevelWarning, Text: fmt.Sprintf("skipping invalid package %q: %v", spec.Raw, err)})
			continue
		}
		valid = append(valid, spec)
	}

	if len(valid) == 0 {
		i.emit(model.LogEvent{Text: "No valid packages to install."})
		return Outcome{Succeeded: true}
	}

	i.emit(model.LogEvent{Text: fmt.Sprintf("Installing %d package(s) in batch...", len(valid))})

	res := i.runner.Run(ctx, appendSpecs(base, valid...))
	if res.ExitCode == runner.ExitCancelled {
		return Outcome{Requested: len(valid), Cancelled: true}
	}
	if res.ExitCode == 0 {
		i.emit(model.StatusEvent{Level: model.LevelSuccess, Text: "Batch installation successful."})
		return Outcome{Requested: len(valid), Installed: len(valid), Succeeded: true}
	}

	i.emit(model.StatusEvent{Level: model.LevelWarning, Text: "Batch installation failed, trying individual packages..."})
	return i.installIndividually(ctx, base, valid)
}

func (i *Installer) installIndividually(ctx context.Context, base runner.Command, specs []model.PackageSpec) Outcome {
	outcome := Outcome{Requested: len(specs)}
	total := len(specs)

	for idx, spec := range specs {
		if ctx.Err() != nil {
			outcome.Cancelled = true
			return outcome
		}

		i.emit(model.LogEvent{Text: fmt.Sprintf("Installing [%d/%d]: %s ...", idx+1, total, spec)})

		res := i.runner.Run(ctx, appendSpecs(base, spec))
		if res.ExitCode == runner.ExitCancelled {
			outcome.Cancelled = true
			return outcome
		}
		if res.ExitCode == 0 {
			outcome.Installed++
		} else {
			outcome.Failed = append(outcome.Failed, spec.Raw)
			i.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("Failed to install: %s", spec)})
		}

		i.emit(model.ProgressEvent{Fraction: float64(idx+1) / float64(total)})
	}

	switch {
	case outcome.Installed == total:
		outcome.Succeeded = true
		i.emit(model.StatusEvent{Level: model.LevelSuccess, Text: "All packages installed successfully."})
	case outcome.Installed > 0:
		outcome.Succeeded = !i.strict
		i.emit(model.StatusEvent{Level: model.LevelWarning, Text: fmt.Sprintf("Installed %d/%d packages.", outcome.Installed, total)})
	default:
		i.emit(model.StatusEvent{Level: model.LevelError, Text: "No packages were installed."})
	}

	return outcome
}

func appendSpecs(base runner.Command, specs ...model.PackageSpec) runner.Command {
	args := make([]string, 0, len(base.Args)+len(specs))
	args = append(args, base.Args...)
	for _, spec := range specs {
		args = append(args, spec.Raw)
	}
	base.Args = args
	return base
}
