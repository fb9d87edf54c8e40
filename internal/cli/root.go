// Package cli implements the tempwatch command-line interface using Cobra.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tempwatch/internal/collector"
	"tempwatch/internal/config"
	"tempwatch/internal/display"
	"tempwatch/internal/logger"
	"tempwatch/internal/monitor"
	"tempwatch/internal/service"
)

// Env holds the process-level dependencies of a command.
type Env struct {
	Stdout io.Writer
	Runner collector.Runner
}

type options struct {
	interval   string
	delta      bool
	configPath string
	logFile    string
	logLevel   string
	color      string
	source     string
	noGPU      bool
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	env := Env{Stdout: os.Stdout, Runner: collector.ExecRunner{}}
	if err := NewRootCommand(version, env).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the tempwatch command tree.
func NewRootCommand(version string, env Env) *cobra.Command {
	root, _ := newRootCommand(version, env)
	return root
}

func newRootCommand(version string, env Env) (*cobra.Command, *options) {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tempwatch",
		Short: "Keep an eye on CPU, core, ACPI and GPU temperatures",
		Long: `tempwatch polls lm-sensors and nvidia-smi and redraws a color-coded
temperature dashboard every interval until interrupted.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, opts, cfg, env, version)
		},
	}

	f := root.Flags()
	f.StringVarP(&opts.interval, "time", "t", "1", "Sets the time interval for checking temperature, in seconds")
	f.BoolVarP(&opts.delta, "delta-times", "d", false, "Show the change since the previous reading")
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON configuration file (watched for changes)")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	f.StringVar(&opts.color, "color", "", "Color output: auto, always or never")
	f.StringVar(&opts.source, "source", "", "Sensor source: lm-sensors or hwmon")
	f.BoolVar(&opts.noGPU, "no-gpu", false, "Do not query the GPU")

	root.AddCommand(newVersionCmd(version))
	return root, opts
}

// buildConfig loads the optional file, applies explicit flags and validates.
func buildConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, opts, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line. The
// interval flag also applies when no config file is given.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("time") || opts.configPath == "" {
		v, err := config.ParseInterval(opts.interval)
		if err != nil {
			return err
		}
		cfg.Interval = v
	}
	if flags.Changed("delta-times") {
		cfg.DeltaTimes = opts.delta
	}
	if flags.Changed("log-file") {
		cfg.Logging.FilePath = opts.logFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}
	if flags.Changed("source") {
		cfg.SensorSource = opts.source
	}
	if flags.Changed("no-gpu") {
		cfg.GPUCommand.Enabled = !opts.noGPU
	}
	return nil
}

func run(ctx context.Context, cmd *cobra.Command, opts *options, cfg *config.Config, env Env, version string) error {
	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	log := logger.WithComponent("main")

	coll, err := collector.NewFromConfig(cfg, env.Runner)
	if err != nil {
		return err
	}

	log.Info().
		Str("version", version).
		Float64("interval", cfg.Interval).
		Bool("delta", cfg.DeltaTimes).
		Str("sources", coll.String()).
		Str("config", opts.configPath).
		Msg("Starting tempwatch")

	renderer := display.NewRenderer(env.Stdout, cfg.Color)
	mon := monitor.New(coll, renderer, monitor.Options{
		Interval:   cfg.Interval,
		DeltaTimes: cfg.DeltaTimes,
		Thresholds: cfg.Thresholds,
	})

	if opts.configPath != "" {
		stop := watchConfig(cmd, opts, mon)
		defer stop()
	}

	if err := renderer.Notice("Fetching temperatures, please wait..."); err != nil {
		return err
	}

	if err := service.Run(ctx, mon.Run); err != nil {
		return err
	}

	log.Info().Msg("tempwatch stopped")
	return nil
}

// watchConfig applies interval, threshold and log level changes from the
// config file. Flags set on the command line keep precedence.
func watchConfig(cmd *cobra.Command, opts *options, mon *monitor.Monitor) func() {
	log := logger.WithComponent("main")

	w, err := config.NewWatcher(opts.configPath, func(newCfg *config.Config) {
		if err := applyFlags(cmd, opts, newCfg); err != nil {
			log.Error().Err(err).Msg("Ignoring reloaded configuration")
			return
		}
		if err := newCfg.Validate(); err != nil {
			log.Error().Err(err).Msg("Ignoring reloaded configuration")
			return
		}

		mon.SetInterval(newCfg.Interval)
		mon.SetThresholds(newCfg.Thresholds)
		if err := logger.SetLevel(newCfg.Logging.Level); err != nil {
			log.Warn().Err(err).Msg("Keeping previous log level")
		}

		log.Info().
			Float64("interval", newCfg.Interval).
			Float64("warm", newCfg.Thresholds.Warm).
			Float64("hot", newCfg.Thresholds.Hot).
			Msg("Configuration reloaded")
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create config watcher, hot reload disabled")
		return func() {}
	}
	if err := w.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start config watcher")
		_ = w.Stop()
		return func() {}
	}

	return func() {
		if err := w.Stop(); err != nil {
			log.Error().Err(err).Msg("Error stopping config watcher")
		}
	}
}
