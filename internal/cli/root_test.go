package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempwatch/internal/collector"
	"tempwatch/internal/config"
)

const sensorsJSON = `{
	"coretemp-isa-0000":{"Package id 0":{"temp1_input":48.0},"Core 0":{"temp2_input":46.0}},
	"acpitz-acpi-0":{"temp1":{"temp1_input":27.8}}
}`

type recordingRunner struct {
	mu     sync.Mutex
	calls  []string
	handle func(name string) ([]byte, error)
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, strings.Join(append([]string{name}, args...), " "))
	r.mu.Unlock()
	return r.handle(name)
}

func failingRunner() *recordingRunner {
	return &recordingRunner{handle: func(string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}}
}

func execute(t *testing.T, ctx context.Context, r collector.Runner, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand("1.2.3", Env{Stdout: &out, Runner: r})
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestRoot_IntervalBelowMinimumExitsBeforeCollection(t *testing.T) {
	r := failingRunner()

	_, err := execute(t, context.Background(), r, "-t", "0.5")

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrIntervalTooShort)
	assert.Empty(t, r.calls, "no collection attempt")
}

func TestRoot_UnparseableInterval(t *testing.T) {
	r := failingRunner()

	_, err := execute(t, context.Background(), r, "--time", "soon")

	assert.ErrorContains(t, err, "invalid time interval")
	assert.Empty(t, r.calls)
}

func TestRoot_RejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--color", "rainbow"},
		{"--source", "ipmi"},
		{"--log-level", "bogus"},
		{"unexpected-arg"},
	} {
		_, err := execute(t, context.Background(), failingRunner(), args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestRoot_CollectorErrorIsFatal(t *testing.T) {
	r := failingRunner()

	out, err := execute(t, context.Background(), r)

	require.Error(t, err)
	assert.ErrorIs(t, err, collector.ErrProcessFailed)
	assert.Contains(t, out, "Fetching temperatures, please wait...")
	assert.Equal(t, []string{"sensors -j"}, r.calls)
}

func TestRoot_RendersOneTickThenStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &recordingRunner{handle: func(name string) ([]byte, error) {
		if name == "nvidia-smi" {
			cancel()
			return []byte("39\n"), nil
		}
		return []byte(sensorsJSON), nil
	}}

	out, err := execute(t, ctx, r, "-t", "2", "-d")
	require.NoError(t, err)

	assert.Contains(t, out, "Fetching temperatures every 2s... (")
	assert.Contains(t, out, "Press Ctrl+C to exit")
	assert.Contains(t, out, "CPU\t(°C)\t>>>\t48.0\n")
	assert.Contains(t, out, "ACPI\t(°C)\t>>>\t27.8\n")
	assert.Contains(t, out, "Core#0\t(°C)\t>>>\t46.0\n")
	assert.Contains(t, out, "GPU\t(°C)\t>>>\t39.0\n")
	assert.Less(t, strings.Index(out, "CPU\t"), strings.Index(out, "GPU\t"))
}

func TestRoot_NoGPU(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &recordingRunner{handle: func(name string) ([]byte, error) {
		cancel()
		return []byte(sensorsJSON), nil
	}}

	out, err := execute(t, ctx, r, "--no-gpu")
	require.NoError(t, err)
	assert.NotContains(t, out, "GPU")
	assert.Equal(t, []string{"sensors -j"}, r.calls)
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tempwatch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"Interval": 5,
		"DeltaTimes": true,
		"Color": "always",
		"SensorsCommand": {"Path": "/opt/lm/sensors"}
	}`), 0644))

	cmd, opts := newRootCommand("dev", Env{})
	require.NoError(t, cmd.ParseFlags([]string{"-c", path, "--color", "never"}))

	cfg, err := buildConfig(cmd, opts)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Interval, "file interval kept when -t is not given")
	assert.True(t, cfg.DeltaTimes)
	assert.Equal(t, config.ColorNever, cfg.Color)
	assert.Equal(t, "/opt/lm/sensors", cfg.SensorsCommand.Path)
}

func TestBuildConfig_TimeFlagBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tempwatch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Interval": 5}`), 0644))

	cmd, opts := newRootCommand("dev", Env{})
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "-t", "1.5", "--source", "hwmon", "--no-gpu"}))

	cfg, err := buildConfig(cmd, opts)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Interval)
	assert.Equal(t, config.SourceHwmon, cfg.SensorSource)
	assert.False(t, cfg.GPUCommand.Enabled)
}

func TestBuildConfig_RejectsUnknownLogLevel(t *testing.T) {
	cmd, opts := newRootCommand("dev", Env{})
	require.NoError(t, cmd.ParseFlags([]string{"--log-level", "bogus"}))

	_, err := buildConfig(cmd, opts)
	assert.ErrorContains(t, err, "Logging.Level")
}

func TestBuildConfig_MissingFile(t *testing.T) {
	cmd, opts := newRootCommand("dev", Env{})
	require.NoError(t, cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "absent.json")}))

	_, err := buildConfig(cmd, opts)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, context.Background(), failingRunner(), "version")

	require.NoError(t, err)
	assert.Equal(t, "tempwatch 1.2.3\n", out)
}
