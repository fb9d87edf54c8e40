package collector

import (
	"context"
	"math"
	"strconv"
	"strings"

	"tempwatch/internal/config"
	"tempwatch/internal/logger"
)

// NvidiaSource queries the discrete GPU temperature through nvidia-smi.
type NvidiaSource struct {
	runner Runner
	cmd    config.CommandConfig
}

// NewNvidiaSource creates a GPU source running cmd through r.
func NewNvidiaSource(r Runner, cmd config.CommandConfig) *NvidiaSource {
	return &NvidiaSource{runner: r, cmd: cmd}
}

// Name returns the source name.
func (s *NvidiaSource) Name() string {
	return "nvidia-smi"
}

// Read runs the query. Only a process failure is an error; unparseable output
// reads as 0.
func (s *NvidiaSource) Read(ctx context.Context) (float64, error) {
	out, err := runCommand(ctx, s.runner, s.cmd)
	if err != nil {
		return 0, &Error{Kind: ProcessFailed, Command: commandLine(s.cmd), Err: err}
	}

	v, ok := ParseGPUTemperature(out)
	if !ok {
		log := logger.WithComponent("collector")
		log.Debug().
			Str("source", s.Name()).
			Str("output", strings.TrimSpace(string(out))).
			Msg("Unparseable GPU temperature, using 0")
	}
	return v, nil
}

// ParseGPUTemperature parses the first line of a csv,noheader query. It
// returns 0 and false when the value is not a finite number.
func ParseGPUTemperature(out []byte) (float64, bool) {
	text := strings.TrimSpace(string(out))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
