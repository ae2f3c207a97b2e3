package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/pyforge/internal/logger"
	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

// Sentinel exit codes returned for faults that produce no real process exit
// code. Real exit codes are always non-negative, so these never collide.
const (
	// ExitLaunchFailed indicates the process could not be started at all.
	ExitLaunchFailed = -1001
	// ExitCancelled indicates the run was cancelled while the process was
	// executing and the child was forcibly terminated.
	ExitCancelled = -1002
	// ExitFailure indicates the process ended in a fault that carried no
	// exit code (for example a wait error).
	ExitFailure = -1003
)

// waitDelay bounds how long Wait blocks on the combined output pipe after
// the child has been killed.
const waitDelay = 5 * time.Second

// Command describes one external process invocation. Args is always passed
// as an argument vector; nothing is ever interpreted by a shell.
type Command struct {
	Path string
	Args []string
	Dir  string
	Env  map[string]string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Result reports how a command run ended. Launched distinguishes processes
// that started and failed from processes that never started.
type Result struct {
	ExitCode int
	Launched bool
}

// Runner executes one external command, streaming its combined output
// line-by-line as LogEvents while it runs.
type Runner interface {
	Run(ctx context.Context, command Command) Result
}

// StreamRunner runs commands with combined stdout/stderr capture so log
// ordering matches real execution order. Cancellation of the supplied
// context forcibly terminates the child process.
type StreamRunner struct {
	emit model.Emitter
	log  *logger.Logger
}

var _ Runner = (*StreamRunner)(nil)

// New creates a StreamRunner that reports output and status through emit.
func New(emit model.Emitter, log *logger.Logger) *StreamRunner {
	return &StreamRunner{emit: emit, log: log}
}

// Run launches the command and streams each output line as a LogEvent with
// trailing whitespace trimmed. It returns ExitCancelled once the context is
// cancelled, after the child has been killed. It never leaves a child
// process running after returning.
func (r *StreamRunner) Run(ctx context.Context, command Command) Result {
	cmd := exec.CommandContext(ctx, command.Path, command.Args...)
	cmd.Env = buildEnv(command.Env)
	cmd.WaitDelay = waitDelay
	if command.Dir != "" {
		cmd.Dir = command.Dir
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("failed to run %s: %v", command, err)})
		return Result{ExitCode: ExitLaunchFailed}
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		r.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("failed to run %s: %v", command, err)})
		return Result{ExitCode: ExitLaunchFailed}
	}

	r.log.WithFields(map[string]any{"command": command.Path}).Debug("process started")

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		r.emit(model.LogEvent{Text: strings.TrimRight(scanner.Text(), " \t\r")})
	}

	// The pipe reaches EOF when the process exits or is killed, so Wait
	// cannot block past WaitDelay.
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		r.emit(model.StatusEvent{Level: model.LevelWarning, Text: "operation cancelled"})
		return Result{ExitCode: ExitCancelled, Launched: true}
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return Result{ExitCode: exitErr.ExitCode(), Launched: true}
		}
		r.emit(model.StatusEvent{Level: model.LevelError, Text: fmt.Sprintf("%s: %v", command, waitErr)})
		return Result{ExitCode: ExitFailure, Launched: true}
	}

	return Result{ExitCode: 0, Launched: true}
}

func buildEnv(custom map[string]string) []string {
	env := os.Environ()
	for k, v := range custom {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
