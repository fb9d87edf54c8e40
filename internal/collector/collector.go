// Package collector invokes the external diagnostic utilities and returns
// their raw output for extraction.
package collector

import (
	"context"
	"fmt"

	"tempwatch/internal/config"
)

// SensorSource produces a `sensors -j` style document.
type SensorSource interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Read returns chip → feature → input maps.
	Read(ctx context.Context) (map[string]any, error)
}

// GPUSource produces a single GPU temperature.
type GPUSource interface {
	Name() string
	Read(ctx context.Context) (float64, error)
}

// Raw is the result of one collection.
type Raw struct {
	Sensors map[string]any
	GPU     float64
	HasGPU  bool
}

// Collector runs a sensor source and an optional GPU source, in that order.
type Collector struct {
	sensors SensorSource
	gpu     GPUSource
}

// New creates a collector. gpu may be nil.
func New(sensors SensorSource, gpu GPUSource) *Collector {
	return &Collector{sensors: sensors, gpu: gpu}
}

// NewFromConfig builds the sources named by cfg using the default registry.
func NewFromConfig(cfg *config.Config, r Runner) (*Collector, error) {
	sensors, err := DefaultRegistry().Build(cfg.SensorSource, cfg, r)
	if err != nil {
		return nil, err
	}

	var gpu GPUSource
	if cfg.GPUCommand.Enabled {
		gpu = NewNvidiaSource(r, cfg.GPUCommand)
	}
	return New(sensors, gpu), nil
}

// Collect runs both sources sequentially. Any source error is returned as is.
func (c *Collector) Collect(ctx context.Context) (*Raw, error) {
	doc, err := c.sensors.Read(ctx)
	if err != nil {
		return nil, err
	}
	raw := &Raw{Sensors: doc}

	if c.gpu != nil {
		v, err := c.gpu.Read(ctx)
		if err != nil {
			return nil, err
		}
		raw.GPU = v
		raw.HasGPU = true
	}
	return raw, nil
}

// String describes the configured sources.
func (c *Collector) String() string {
	if c.gpu == nil {
		return c.sensors.Name()
	}
	return fmt.Sprintf("%s+%s", c.sensors.Name(), c.gpu.Name())
}
