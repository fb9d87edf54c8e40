package collector

import (
	"context"
	"encoding/json"
	"errors"

	"tempwatch/internal/config"
)

// LMSensorsSource reads the JSON document printed by `sensors -j`.
type LMSensorsSource struct {
	runner Runner
	cmd    config.CommandConfig
}

// NewLMSensorsSource creates a source running cmd through r.
func NewLMSensorsSource(r Runner, cmd config.CommandConfig) *LMSensorsSource {
	return &LMSensorsSource{runner: r, cmd: cmd}
}

// Name returns the source name.
func (s *LMSensorsSource) Name() string {
	return config.SourceLMSensors
}

// Read runs the utility and decodes its output.
func (s *LMSensorsSource) Read(ctx context.Context) (map[string]any, error) {
	out, err := runCommand(ctx, s.runner, s.cmd)
	if err != nil {
		return nil, &Error{Kind: ProcessFailed, Command: commandLine(s.cmd), Err: err}
	}

	doc, err := decodeSensorsJSON(out)
	if err != nil {
		return nil, &Error{Kind: ParseFailed, Command: commandLine(s.cmd), Err: err}
	}
	return doc, nil
}

func decodeSensorsJSON(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("expected a JSON object")
	}
	return doc, nil
}
