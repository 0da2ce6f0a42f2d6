package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, newLogger); err != nil {
		os.Exit(1)
	}
}

func parseFlags(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("handlevec-stress", flag.ContinueOnError)
	duration := fs.Duration("duration", cfg.Duration, "The total duration the test should run for.")
	elements := fs.Int("elements", cfg.Elements, "The number of values kept alive in the container.")
	seed := fs.Uint64("seed", cfg.Seed, "Seed for the random workload.")
	genLimit := fs.Int32("gen-limit", 0, "Retire slots after this many generations (0 keeps the default).")
	verify := fs.Bool("verify", false, "Check the container against a reference model after every frame.")
	configPath := fs.String("config", "", "Path to a JSONC config file.")
	out := fs.String("out", "", "Write the report to this file instead of stdout.")
	verbose := fs.BoolP("verbose", "v", false, "Enable development logging.")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "invalid arguments")
	}

	if *configPath != "" {
		var err error
		cfg, err = LoadConfigFile(*configPath, cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config %s", *configPath)
		}
	}

	// Flags given on the command line win over the file.
	if fs.Changed("duration") {
		cfg.Duration = *duration
	}
	if fs.Changed("elements") {
		cfg.Elements = *elements
	}
	if fs.Changed("seed") {
		cfg.Seed = *seed
	}
	if fs.Changed("gen-limit") {
		cfg.GenLimit = *genLimit
	}
	if fs.Changed("verify") {
		cfg.Verify = *verify
	}
	if fs.Changed("out") {
		cfg.Out = *out
	}
	if fs.Changed("verbose") {
		cfg.Verbose = *verbose
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// run parses args and runs the stress test. Every error it returns has
// already been logged.
func run(args []string, stdout io.Writer, makeLogger func(verbose bool) (*zap.Logger, error)) error {
	cfg, parseErr := parseFlags(args)

	// cfg is the zero Config when parsing failed, so errors get the production logger
	logger, err := makeLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "handlevec-stress: failed to create logger: %v\n", err)
		return errors.Wrap(err, "failed to create logger")
	}
	defer func() { _ = logger.Sync() }()

	if parseErr != nil {
		logger.Error("invalid configuration", zap.Error(parseErr))
		return parseErr
	}

	if err := execute(cfg, stdout, logger); err != nil {
		logger.Error("stress test failed", zap.Error(err), zap.Uint64("seed", cfg.Seed))
		return err
	}
	return nil
}

func execute(cfg Config, stdout io.Writer, logger *zap.Logger) error {
	logger.Info("starting handle vector stress test",
		zap.Duration("duration", cfg.Duration),
		zap.Int("elements", cfg.Elements),
		zap.Uint64("seed", cfg.Seed),
		zap.Bool("verify", cfg.Verify),
	)

	report, err := stress(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Out == "" {
		fmt.Fprintln(stdout, "\n\n--- Stress Test Report ---")
		if err := report.Generate(stdout); err != nil {
			return errors.Wrap(err, "failed to generate report")
		}
		fmt.Fprintln(stdout, "--- End of Report ---")
		return nil
	}

	var buf bytes.Buffer
	if err := report.Generate(&buf); err != nil {
		return errors.Wrap(err, "failed to generate report")
	}
	if err := atomic.WriteFile(cfg.Out, &buf); err != nil {
		return errors.Wrapf(err, "failed to write report to %s", cfg.Out)
	}
	logger.Info("report written", zap.String("path", cfg.Out))
	return nil
}

func stress(ctx context.Context, cfg Config, logger *zap.Logger) (*Report, error) {
	workload := NewWorkload(cfg)

	logger.Debug("populating container", zap.Int("elements", cfg.Elements))
	if err := workload.Populate(); err != nil {
		return nil, errors.Wrap(err, "populate failed")
	}

	report := &Report{
		Duration: cfg.Duration,
		Elements: cfg.Elements,
		Seed:     cfg.Seed,
		GenLimit: cfg.GenLimit,
		Verify:   cfg.Verify,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Debug("running simulation", zap.Duration("duration", cfg.Duration))
	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			err := workload.Frame()
			report.FrameTime.Observe(time.Since(frameStart))
			report.TotalFrames++

			if err != nil {
				logger.Error("container state", zap.String("dump", workload.Dump()))
				return nil, errors.Wrapf(err, "frame %d", report.TotalFrames)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	for i := range workload.Ops {
		workload.Ops[i].Finalize()
	}
	report.Ops = workload.Ops[:]
	report.Verifications = workload.Verifications
	report.Slots = workload.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("frames", report.TotalFrames),
		zap.Duration("elapsed", report.TotalTime),
		zap.Int("slots", report.Slots.Cap),
		zap.Int("depleted", report.Slots.Depleted),
	)
	return report, nil
}
