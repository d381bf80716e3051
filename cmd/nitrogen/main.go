package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	logAdapter "github.com/notyesbut/NitroGen/internal/adapters/log"
	"github.com/notyesbut/NitroGen/internal/cliconfig"
	"github.com/notyesbut/NitroGen/pkg/nitrogen"
)

const longHelp = `Real-time screen-to-input agent.

nitrogen captures frames from a target window at a fixed cadence, queries a
policy service for gamepad-shaped actions and injects the mapped keyboard
and mouse input. In record mode it instead captures your own play as
time-aligned frame/action pairs for training data.

Configure via flags, NITROGEN_* environment variables, or a TOML file
(default: $HOME/.nitrogen/config.toml). Flags win over env, env over file.`

var exampleUsage = `  nitrogen run --process game --service-url http://127.0.0.1:5000
  nitrogen record --process game --out ./runs --max-frames 10000
  nitrogen run --config ./nitrogen.toml --disable-input`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "nitrogen",
		Short:   "Real-time screen-to-input agent",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the target with actions from the policy service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, &cfg, cfgPath, nitrogen.ModeLive)
		},
	}
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record your own play as frame/action pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, &cfg, cfgPath, nitrogen.ModeRecord)
		},
	}
	root.AddCommand(runCmd, recordCmd)

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.nitrogen/config.toml)")
	pf.StringVar(&cfg.Process, "process", cfg.Process, "target process name (empty: capture the display origin)")
	pf.IntVar(&cfg.Width, "width", cfg.Width, "capture width in pixels")
	pf.IntVar(&cfg.Height, "height", cfg.Height, "capture height in pixels")
	pf.IntVar(&cfg.FPS, "fps", cfg.FPS, "target ticks per second")

	pf.StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "policy inference endpoint")
	pf.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-request inference timeout")

	pf.StringVar(&cfg.Adapter, "adapter", cfg.Adapter, "controller adapter: km (keyboard/mouse) or pad (virtual gamepad)")
	pf.Float64Var(&cfg.Deadzone, "deadzone", cfg.Deadzone, "stick deadzone in [0,1)")
	pf.Float64Var(&cfg.MouseSensitivity, "mouse-sensitivity", cfg.MouseSensitivity, "right-stick to mouse-delta scale")
	pf.IntVar(&cfg.MouseDeltaMax, "mouse-delta-max", cfg.MouseDeltaMax, "per-tick mouse delta cap in pixels")
	pf.Float64Var(&cfg.TriggerThreshold, "trigger-threshold", cfg.TriggerThreshold, "trigger press threshold in [0,1]")

	pf.StringVar(&cfg.TrackedKeys, "tracked-keys", cfg.TrackedKeys, "comma-separated keys to track when recording (empty: default set)")
	pf.StringVar(&cfg.TrackedMouseButtons, "tracked-mouse-buttons", cfg.TrackedMouseButtons, "comma-separated mouse buttons to track when recording (empty: default set)")

	pf.BoolVar(&cfg.DisableInput, "disable-input", cfg.DisableInput, "dry run: compute actions but inject nothing")
	pf.BoolVar(&cfg.EnableUnsafeSpeed, "enable-unsafe-speed", cfg.EnableUnsafeSpeed, "enable the unsafe process speed capability")
	pf.Float64Var(&cfg.SpeedFactor, "speed-factor", cfg.SpeedFactor, "speed factor applied when the capability is enabled")
	if err := pf.MarkHidden("enable-unsafe-speed"); err != nil {
		log.Info().Err(err).Msg("failed to hide enable-unsafe-speed flag")
	}
	if err := pf.MarkHidden("speed-factor"); err != nil {
		log.Info().Err(err).Msg("failed to hide speed-factor flag")
	}

	pf.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory for recorded runs")
	pf.StringVar(&cfg.StopFile, "stop-file", cfg.StopFile, "terminate within one tick when this file appears")
	pf.IntVar(&cfg.MaxFrames, "max-frames", cfg.MaxFrames, "stop the run after this many recorded frames (0: unbounded)")
	pf.DurationVar(&cfg.MaxDuration, "max-duration", cfg.MaxDuration, "stop the run after this duration (0: unbounded)")

	pf.IntVar(&cfg.RetentionHighMB, "retention-high-mb", cfg.RetentionHighMB, "prune old runs when the output directory exceeds this size (0: keep everything)")
	pf.IntVar(&cfg.RetentionLowMB, "retention-low-mb", cfg.RetentionLowMB, "prune down to this size")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("nitrogen")
		os.Exit(1)
	}
}

func execute(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string, mode nitrogen.Mode) error {
	log := cliconfig.Logger()

	// Load config file first (default $HOME/.nitrogen/config.toml), then
	// env; explicitly-set flags win over both.
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Info().
		Str("mode", mode.String()).
		Str("process", cfg.Process).
		Str("adapter", cfg.Adapter).
		Int("fps", cfg.FPS).
		Bool("disable_input", cfg.DisableInput).
		Msg("configuration")

	agent, err := nitrogen.New(mode, *cfg,
		nitrogen.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
	)
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := agent.Start(ctx); err != nil {
		return fmt.Errorf("start agent: %w", err)
	}

	doneCh := make(chan nitrogen.State, 1)
	go func() { doneCh <- agent.WaitUntilDone(ctx) }()

	select {
	case <-sigCh:
		log.Info().Msg("received signal, stopping...")
		if err := agent.Stop(); err != nil {
			return fmt.Errorf("stop agent: %w", err)
		}
	case s := <-doneCh:
		if s == nitrogen.StateCrashed {
			return fmt.Errorf("agent crashed")
		}
	}

	stats := agent.Stats()
	log.Info().
		Uint64("ticks", stats.Ticks).
		Uint64("degraded", stats.DegradedTicks).
		Uint64("skipped", stats.SkippedTicks).
		Uint64("recorded", stats.RecordedEntries).
		Uint64("overruns", stats.Overruns).
		Msg("done")
	return nil
}
