package service

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"

	"tempwatch/internal/logger"
)

// ShutdownSignals are the signals that stop the service.
var ShutdownSignals = []os.Signal{unix.SIGINT, unix.SIGTERM}

// SignalService cancels the run context on the first shutdown signal. A
// second signal makes Run return without waiting for the run function.
type SignalService struct {
	runFunc RunFunc
	cancel  context.CancelFunc
	mu      sync.Mutex
	stopped bool
}

// NewService creates a signal-driven service.
func NewService(runFunc RunFunc) *SignalService {
	return &SignalService{
		runFunc: runFunc,
	}
}

// Run starts the run function and handles signals for graceful shutdown.
func (s *SignalService) Run(ctx context.Context) error {
	log := logger.WithComponent("service")

	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()
	defer s.cancel()

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, ShutdownSignals...)
	defer signal.Stop(sigChan)

	done := make(chan error, 1)
	go func() {
		done <- s.runFunc(ctx)
	}()

	log.Debug().Msg("Service started")

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		s.Stop()

		select {
		case err := <-done:
			return err
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("Received second signal, forcing exit")
			return nil
		}

	case err := <-done:
		return err
	}
}

// Stop requests the service to stop.
func (s *SignalService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil && !s.stopped {
		s.stopped = true
		s.cancel()
	}
	return nil
}

var _ Service = (*SignalService)(nil)
