package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/alexisbeaulieu97/pyforge/internal/gitrepo"
	"github.com/alexisbeaulieu97/pyforge/internal/installer"
	"github.com/alexisbeaulieu97/pyforge/internal/model"
	"github.com/alexisbeaulieu97/pyforge/internal/runner"
	"github.com/alexisbeaulieu97/pyforge/internal/scaffold"
	pyforgeerrors "github.com/alexisbeaulieu97/pyforge/pkg/errors"
)

// createFolder creates the destination directory. Idempotent; any other I/O
// fault is fatal with nothing to clean up.
func (o *Orchestrator) createFolder(ctx context.Context) *model.StepResult {
	if err := os.MkdirAll(o.req.Dir, 0o755); err != nil {
		o.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("Cannot create project folder: %v", err)})
		return &model.StepResult{
			Status:  model.StatusFailed,
			Message: err.Error(),
			Err:     pyforgeerrors.NewFatalStepError("create-folder", err),
		}
	}

	o.outcome.ProjectPath = o.req.Dir
	o.emit(model.StatusEvent{Level: model.LevelSuccess, Text: fmt.Sprintf("Project folder: %s", o.req.Dir)})
	return &model.StepResult{Status: model.StatusSuccess, Message: "project folder created"}
}

// createLayout creates the fixed subdirectory set. Failures here are
// warnings, not fatal, since layout is cosmetic.
func (o *Orchestrator) createLayout(ctx context.Context) *model.StepResult {
	created, errs := scaffold.CreateLayout(o.req.Dir)
	for _, name := range created {
		o.emit(model.LogEvent{Text: fmt.Sprintf("Created directory: %s/", name)})
	}
	for _, err := range errs {
		o.emit(model.StatusEvent{Level: model.LevelWarning, Text: err.Error()})
	}

	if len(errs) > 0 {
		return &model.StepResult{
			Status:  model.StatusWarning,
			Message: fmt.Sprintf("created %d/%d directories", len(created), len(scaffold.LayoutDirs)),
		}
	}
	return &model.StepResult{Status: model.StatusSuccess, Message: "directory layout created"}
}

// createEnvironment builds the isolated virtual environment, reusing an
// existing one with a warning. A build failure is fatal and triggers the
// cleanup policy.
func (o *Orchestrator) createEnvironment(ctx context.Context) *model.StepResult {
	o.venvDir = scaffold.VenvPath(o.req.Dir)

	if _, err := os.Stat(o.venvDir); err == nil {
		o.emit(model.StatusEvent{Level: model.LevelWarning, Text: "venv already exists, reusing."})
		return &model.StepResult{Status: model.StatusWarning, Message: "existing environment reused"}
	}

	python, err := systemPython()
	if err != nil {
		o.emit(model.StatusEvent{Level: model.LevelError, Text: "No Python interpreter found on PATH."})
		return &model.StepResult{
			Status:  model.StatusFailed,
			Message: err.Error(),
			Err:     pyforgeerrors.NewFatalStepError("create-environment", err),
		}
	}

	o.emit(model.LogEvent{Text: fmt.Sprintf("Creating virtual environment at: %s ...", o.venvDir)})
	o.venvCreated = true

	res := o.runner.Run(ctx, runner.Command{
		Path: python,
		Args: []string{"-m", "venv", o.venvDir, "--prompt", o.req.Name()},
	})
	if res.ExitCode != 0 {
		if res.ExitCode != runner.ExitCancelled {
			o.emit(model.StatusEvent{Level: model.LevelError, Text: "Virtual environment creation failed."})
		}
		err := fmt.Errorf("venv builder exited with code %d", res.ExitCode)
		return &model.StepResult{
			Status:           model.StatusFailed,
			Message:          err.Error(),
			Err:              pyforgeerrors.NewFatalStepError("create-environment", err),
			PartialArtifacts: true,
		}
	}

	o.emit(model.StatusEvent{Level: model.LevelSuccess, Text: "Virtual environment created successfully."})
	return &model.StepResult{Status: model.StatusSuccess, Message: "environment created"}
}

// locateInstaller resolves the installer executable inside the environment,
// falling back to the environment's interpreter with the pip module flag.
// Neither resolvable is fatal with cleanup.
func (o *Orchestrator) locateInstaller(ctx context.Context) *model.StepResult {
	pip := scaffold.PipExecutable(o.venvDir)
	if _, err := os.Stat(pip); err == nil {
		o.installCmd = runner.Command{Path: pip, Args: []string{"install"}}
		return &model.StepResult{Status: model.StatusSuccess, Message: "installer located"}
	}

	python := scaffold.VenvPython(o.venvDir)
	if _, err := os.Stat(python); err == nil {
		o.emit(model.LogEvent{Text: "Using python -m pip (pip binary not found)."})
		o.installCmd = runner.Command{Path: python, Args: []string{"-m", "pip", "install"}}
		return &model.StepResult{Status: model.StatusSuccess, Message: "installer located via interpreter"}
	}

	o.emit(model.StatusEvent{Level: model.LevelError, Text: "Cannot locate pip in venv. Aborting."})
	err := fmt.Errorf("no installer in %s", o.venvDir)
	return &model.StepResult{
		Status:  model.StatusFailed,
		Message: err.Error(),
		Err:     pyforgeerrors.NewFatalStepError("locate-installer", err),
	}
}

// installPackages delegates to the installer strategy. Only a total
// installation failure is fatal; a partial result degrades the run unless
// strict installs were requested.
func (o *Orchestrator) installPackages(ctx context.Context) *model.StepResult {
	if len(o.req.Packages) == 0 {
		o.emit(model.LogEvent{Text: "No packages to install."})
		return &model.StepResult{Status: model.StatusSkipped, Message: "no packages requested"}
	}

	inst := installer.New(o.runner, o.emit, o.log, o.req.Options.StrictInstall)
	out := inst.Install(ctx, o.installCmd, o.req.Packages)
	o.outcome.InstalledPackageCount = out.Installed

	if out.Cancelled {
		err := fmt.Errorf("installation cancelled")
		return &model.StepResult{
			Status:           model.StatusFailed,
			Message:          err.Error(),
			Err:              pyforgeerrors.NewFatalStepError("install-packages", err),
			PartialArtifacts: true,
		}
	}

	if !out.Succeeded {
		err := pyforgeerrors.NewInstallError(out.Requested, out.Installed, out.Failed, fmt.Errorf("package installation failed"))
		return &model.StepResult{
			Status:           model.StatusFailed,
			Message:          err.Error(),
			Err:              pyforgeerrors.NewFatalStepError("install-packages", err),
			PartialArtifacts: true,
		}
	}

	if out.Installed < out.Requested {
		return &model.StepResult{
			Status:  model.StatusWarning,
			Message: fmt.Sprintf("installed %d/%d packages", out.Installed, out.Requested),
		}
	}
	return &model.StepResult{Status: model.StatusSuccess, Message: "packages installed"}
}

// writeManifest serializes the requested package list. Failure is a local
// error event, non-fatal to the run.
func (o *Orchestrator) writeManifest(ctx context.Context) *model.StepResult {
	path, err := scaffold.WriteManifest(o.req.Dir, o.req.Packages, o.now())
	if err != nil {
		o.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("Failed to write requirements.txt: %v", err)})
		return &model.StepResult{Status: model.StatusFailed, Message: err.Error(), Err: pyforgeerrors.NewStepError("write-manifest", err)}
	}

	o.emit(model.StatusEvent{Level: model.LevelSuccess, Text: fmt.Sprintf("requirements.txt saved (%s)", path)})
	return &model.StepResult{Status: model.StatusSuccess, Message: "manifest written"}
}

// writeDocumentation generates README.md. Non-fatal on failure.
func (o *Orchestrator) writeDocumentation(ctx context.Context) *model.StepResult {
	if _, err := scaffold.WriteReadme(o.req.Dir, o.req.Name(), o.now()); err != nil {
		o.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("Failed to create README.md: %v", err)})
		return &model.StepResult{Status: model.StatusFailed, Message: err.Error(), Err: pyforgeerrors.NewStepError("write-documentation", err)}
	}

	o.emit(model.StatusEvent{Level: model.LevelSuccess, Text: "README.md created."})
	return &model.StepResult{Status: model.StatusSuccess, Message: "documentation written"}
}

// initVersionControl initializes the repository, writes the ignore file,
// stages everything and creates the initial commit. Any failure here is
// non-fatal; the project is still considered created.
func (o *Orchestrator) initVersionControl(ctx context.Context) *model.StepResult {
	o.emit(model.LogEvent{Text: "Initializing git repository..."})

	hash, err := gitrepo.Init(o.req.Dir, o.now())
	if err != nil {
		o.emit(model.StatusEvent{Level: model.LevelWarning, Text: fmt.Sprintf("Git initialization failed: %v", err)})
		return &model.StepResult{Status: model.StatusWarning, Message: err.Error(), Err: pyforgeerrors.NewStepError("init-version-control", err)}
	}

	o.outcome.VCSInitialized = true
	o.emit(model.StatusEvent{Level: model.LevelSuccess, Text: fmt.Sprintf("Git repository initialized with initial commit %.8s.", hash)})
	return &model.StepResult{Status: model.StatusSuccess, Message: "repository initialized"}
}

// computeSize sums the project tree. This step never fails the run.
func (o *Orchestrator) computeSize(ctx context.Context) *model.StepResult {
	o.outcome.ProjectSizeBytes = scaffold.TreeSize(o.req.Dir)
	o.emit(model.StatusEvent{Level: model.LevelInfo, Text: fmt.Sprintf("Project size: %s", model.HumanSize(o.outcome.ProjectSizeBytes))})
	return &model.StepResult{Status: model.StatusSuccess, Message: "size computed"}
}

func systemPython() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no python interpreter found on PATH")
}
