package runner

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pyforge/internal/logger"
	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

type eventSink struct {
	events []model.Event
}

func (s *eventSink) emit(ev model.Event) {
	s.events = append(s.events, ev)
}

func (s *eventSink) logLines() []string {
	var lines []string
	for _, ev := range s.events {
		if log, ok := ev.(model.LogEvent); ok {
			lines = append(lines, log.Text)
		}
	}
	return lines
}

func (s *eventSink) statuses() []model.StatusEvent {
	var out []model.StatusEvent
	for _, ev := range s.events {
		if st, ok := ev.(model.StatusEvent); ok {
			out = append(out, st)
		}
	}
	return out
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}
}

func TestRun_StreamsOutputLines(t *testing.T) {
	skipOnWindows(t)
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	res := r.Run(context.Background(), Command{Path: "sh", Args: []string{"-c", "echo one; echo two"}})

	require.True(t, res.Launched)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"one", "two"}, sink.logLines())
}

func TestRun_CombinedOutputPreservesOrder(t *testing.T) {
	skipOnWindows(t)
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	res := r.Run(context.Background(), Command{Path: "sh", Args: []string{"-c", "echo out1; echo err1 >&2; echo out2"}})

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"out1", "err1", "out2"}, sink.logLines())
}

func TestRun_TrimsTrailingWhitespace(t *testing.T) {
	skipOnWindows(t)
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	res := r.Run(context.Background(), Command{Path: "printf", Args: []string{"padded   \n"}})

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"padded"}, sink.logLines())
}

func TestRun_NonZeroExit(t *testing.T) {
	skipOnWindows(t)
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	res := r.Run(context.Background(), Command{Path: "sh", Args: []string{"-c", "exit 3"}})

	require.True(t, res.Launched)
	assert.Equal(t, 3, res.ExitCode)
}

func TestRun_LaunchFailure(t *testing.T) {
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	res := r.Run(context.Background(), Command{Path: "this-command-does-not-exist"})

	assert.False(t, res.Launched)
	assert.Equal(t, ExitLaunchFailed, res.ExitCode)

	statuses := sink.statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, model.LevelError, statuses[0].Level)
}

func TestRun_CancellationKillsChild(t *testing.T) {
	skipOnWindows(t)
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res := r.Run(ctx, Command{Path: "sleep", Args: []string{"30"}})
	elapsed := time.Since(start)

	require.True(t, res.Launched)
	assert.Equal(t, ExitCancelled, res.ExitCode)
	assert.Less(t, elapsed, 10*time.Second, "cancellation must be observed promptly")

	statuses := sink.statuses()
	require.NotEmpty(t, statuses)
	assert.Equal(t, model.LevelWarning, statuses[0].Level)
	assert.Contains(t, statuses[0].Text, "cancelled")
}

func TestRun_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	res := r.Run(context.Background(), Command{Path: "pwd", Dir: dir})

	assert.Equal(t, 0, res.ExitCode)
	lines := sink.logLines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], dir)
}

func TestRun_CustomEnvironment(t *testing.T) {
	skipOnWindows(t)
	sink := &eventSink{}
	r := New(sink.emit, logger.Nop())

	res := r.Run(context.Background(), Command{
		Path: "sh",
		Args: []string{"-c", "echo $PYFORGE_TEST_VAR"},
		Env:  map[string]string{"PYFORGE_TEST_VAR": "wired"},
	})

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, []string{"wired"}, sink.logLines())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "pip install requests", Command{Path: "pip", Args: []string{"install", "requests"}}.String())
	assert.Equal(t, "pip", Command{Path: "pip"}.String())
}
