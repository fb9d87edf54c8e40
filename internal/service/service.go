// Package service turns process signals into context cancellation.
package service

import "context"

// Service runs a function until it returns or the process is interrupted.
type Service interface {
	// Run starts the service. It blocks until the service is stopped.
	Run(ctx context.Context) error

	// Stop requests the service to stop.
	Stop() error
}

// RunFunc is the main function, typically the monitor loop.
type RunFunc func(ctx context.Context) error

// Run runs fn under a SignalService.
func Run(ctx context.Context, fn RunFunc) error {
	return NewService(fn).Run(ctx)
}
