package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/pyforge/internal/logger"
	"github.com/alexisbeaulieu97/pyforge/internal/model"
	"github.com/alexisbeaulieu97/pyforge/internal/runner"
)

// ErrBusy is returned when a run is requested while another is active.
var ErrBusy = errors.New("a provisioning run is already in progress")

// eventBuffer sizes the run's event channel. Large enough that a briefly
// stalled observer does not block the worker; the worker blocks instead of
// growing without bound if the observer stops consuming entirely.
const eventBuffer = 1024

// Service is the start/cancel surface exposed to the presentation layer. It
// admits at most one active run; events flow back over the channel returned
// by Start, which is closed after the terminal ProgressComplete event.
type Service struct {
	log *logger.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	// newRunner is replaceable in tests.
	newRunner func(model.Emitter) runner.Runner
}

// NewService constructs an idle provisioning service.
func NewService(log *logger.Logger) *Service {
	s := &Service{log: log}
	s.newRunner = func(emit model.Emitter) runner.Runner {
		return runner.New(emit, log)
	}
	return s
}

// Start spawns one orchestrator run for the request and returns its event
// channel. A second concurrent run is rejected with ErrBusy.
func (s *Service) Start(req Request) (<-chan model.Event, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.mu.Unlock()

	events := make(chan model.Event, eventBuffer)
	emit := func(e model.Event) { events <- e }

	go func() {
		defer func() {
			close(events)
			cancel()
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		orch := NewOrchestrator(req, emit, s.log, s.newRunner(emit))
		orch.Run(ctx)
	}()

	return events, nil
}

// Cancel requests cancellation of the active run. Idempotent, and a no-op
// when no run is active or the run already finished.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running && s.cancel != nil {
		s.cancel()
	}
}

// Active reports whether a run is currently in progress.
func (s *Service) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
