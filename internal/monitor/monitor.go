// Package monitor runs the poll, extract and render loop.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"tempwatch/internal/collector"
	"tempwatch/internal/config"
	"tempwatch/internal/display"
	"tempwatch/internal/extractor"
	"tempwatch/internal/logger"
	"tempwatch/internal/sample"
)

// Collector produces raw sensor data for one tick.
type Collector interface {
	Collect(ctx context.Context) (*collector.Raw, error)
}

// Renderer draws the dashboard. Begin runs before collection and Render
// after it.
type Renderer interface {
	Begin(header string) error
	Render(f display.Frame) error
}

// Options configures a Monitor.
type Options struct {
	Interval   float64 // seconds
	DeltaTimes bool
	Thresholds config.ThresholdConfig
	Clock      clock.Clock // defaults to the wall clock
}

// Monitor owns the polling cadence and the previous-sample slot.
type Monitor struct {
	collector Collector
	renderer  Renderer
	clock     clock.Clock
	delta     bool

	mu         sync.Mutex
	interval   float64
	thresholds config.ThresholdConfig
}

// New creates a monitor.
func New(c Collector, r Renderer, opts Options) *Monitor {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Monitor{
		collector:  c,
		renderer:   r,
		clock:      clk,
		delta:      opts.DeltaTimes,
		interval:   opts.Interval,
		thresholds: opts.Thresholds,
	}
}

// SetInterval changes the sleep between ticks, effective from the next sleep.
func (m *Monitor) SetInterval(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = seconds
}

// SetThresholds changes the color tiers, effective from the next tick.
func (m *Monitor) SetThresholds(th config.ThresholdConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.thresholds = th
}

func (m *Monitor) settings() (float64, config.ThresholdConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval, m.thresholds
}

// Run ticks until ctx is cancelled, returning nil, or until a tick fails,
// returning that error.
func (m *Monitor) Run(ctx context.Context) error {
	log := logger.WithComponent("monitor")
	log.Info().Bool("delta", m.delta).Msg("Starting monitor")

	var previous *sample.Sample
	for {
		if ctx.Err() != nil {
			log.Info().Msg("Monitor stopped")
			return nil
		}

		current, err := m.tick(ctx, previous)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Monitor stopped during collection")
				return nil
			}
			log.Error().Err(err).Msg("Tick failed")
			return err
		}
		if m.delta {
			previous = current.Clone()
		}

		interval, _ := m.settings()
		if !m.sleep(ctx, config.IntervalDuration(interval)) {
			log.Info().Msg("Monitor stopped")
			return nil
		}
	}
}

func (m *Monitor) tick(ctx context.Context, previous *sample.Sample) (*sample.Sample, error) {
	log := logger.WithComponent("monitor")
	interval, th := m.settings()

	start := m.clock.Now()
	if err := m.renderer.Begin(display.Header(interval, start)); err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}

	raw, err := m.collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect temperatures: %w", err)
	}

	current := extractor.Extract(raw.Sensors)
	if raw.HasGPU {
		extractor.WithGPU(current, raw.GPU)
	}

	var prev *sample.Sample
	if m.delta {
		prev = previous
	}
	if err := m.renderer.Render(display.BuildFrame(current, prev, th)); err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}

	log.Debug().
		Int("readings", current.Len()).
		Dur("duration", m.clock.Since(start)).
		Msg("Tick rendered")

	return current, nil
}

// sleep waits d on the monitor clock. It returns false if ctx ends first.
func (m *Monitor) sleep(ctx context.Context, d time.Duration) bool {
	timer := m.clock.Timer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
