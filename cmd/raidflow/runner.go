package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidflow/raidflow/pkg/config"
	"github.com/raidflow/raidflow/pkg/decode"
	"github.com/raidflow/raidflow/pkg/pipeline"
	"github.com/raidflow/raidflow/pkg/report"
	"github.com/raidflow/raidflow/pkg/storage/s3"
	"github.com/raidflow/raidflow/pkg/telemetry"
	"github.com/raidflow/raidflow/pkg/tui"
	"github.com/raidflow/raidflow/pkg/watch"
)

// loadConfig builds the effective configuration: defaults, then the config
// file, then any flags the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("layout") {
		cfg.Log.Layout = layoutFlag
	}
	if flags.Changed("logger-name") {
		cfg.Log.LoggerName = loggerName
	}
	if flags.Changed("rescan") {
		cfg.Log.Rescan = rescan
	}
	if flags.Changed("min-length") {
		cfg.Encounters.MinLength = minLength
	}
	if flags.Changed("attempts") {
		cfg.Encounters.IncludeAttempts = includeAttempts
	}
	if flags.Changed("wipe-timeout") {
		cfg.Encounters.WipeTimeout = wipeTimeout
	}
	if flags.Changed("boss") {
		cfg.Encounters.Bosses = bossFlags
	}
	if flags.Changed("hints") {
		cfg.HintsFile = hintsFile
	}
	if flags.Changed("output") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("format") {
		cfg.Output.Format = formatFlag
	}
	if telemetryFlag {
		cfg.Telemetry.Enabled = true
	}
	if telemetryEndpoint != "" {
		cfg.Telemetry.Endpoint = telemetryEndpoint
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
		cancel()
	}()
	return ctx, cancel
}

// newSource resolves the log argument into a replayable source: stdin is
// buffered in memory, s3:// objects are downloaded to a temp file, and
// everything else is read from disk.
func newSource(ctx context.Context, arg string) (pipeline.Source, error) {
	if arg == "-" {
		var lines []string
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &pipeline.MemorySource{Lines: lines}, nil
	}

	if strings.HasPrefix(arg, "s3://") {
		bucket, key, err := s3.ParseURL(arg)
		if err != nil {
			return nil, err
		}

		s3cfg := s3.DefaultConfig(s3Region)
		s3cfg.Endpoint = s3Endpoint
		client, err := s3.NewClient(ctx, s3cfg)
		if err != nil {
			return nil, err
		}

		dir, err := os.MkdirTemp("", "raidflow-*")
		if err != nil {
			return nil, err
		}
		local, err := client.Fetch(ctx, bucket, key, dir)
		if err != nil {
			os.RemoveAll(dir)
			return nil, err
		}
		return &pipeline.FileSource{Path: local}, nil
	}

	if _, err := os.Stat(arg); err != nil {
		return nil, fmt.Errorf("input log does not exist: %s", arg)
	}
	return &pipeline.FileSource{Path: arg}, nil
}

// initTelemetry starts trace export when enabled. The returned function
// flushes and shuts the exporter down; it is a no-op when disabled.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(), error) {
	if !cfg.Telemetry.Enabled {
		return func() {}, nil
	}

	tcfg := telemetry.DefaultConfig("raidflow", version)
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.InsecureTLS = cfg.Telemetry.Insecure

	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start telemetry: %w", err)
	}
	return func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", err)
		}
	}, nil
}

// pipelineConfig translates file/flag configuration into the orchestrator's.
func pipelineConfig(cfg *config.Config) (pipeline.Config, error) {
	hints, err := cfg.ResolveHints()
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		Layout:             cfg.Layout(),
		LoggerName:         cfg.Log.LoggerName,
		MinEncounterLength: cfg.Encounters.MinLength,
		IncludeAttempts:    cfg.Encounters.IncludeAttempts,
		WipeTimeout:        cfg.Encounters.WipeTimeout,
		Bosses:             cfg.Encounters.Bosses,
		Hints:              hints,
		Rescan:             cfg.Log.Rescan,
	}, nil
}

// consumers builds the report writers for the configured output format.
func consumers(cfg *config.Config) []pipeline.Consumer {
	var out []pipeline.Consumer
	if cfg.Output.Format == "csv" || cfg.Output.Format == "both" {
		out = append(out, &report.DirConsumer{Root: cfg.Output.Dir})
	}
	if cfg.Output.Format == "xlsx" || cfg.Output.Format == "both" {
		out = append(out, &report.XLSXConsumer{Root: cfg.Output.Dir})
	}
	return out
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	stopTelemetry, err := initTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer stopTelemetry()

	src, err := newSource(ctx, args[0])
	if err != nil {
		return err
	}

	pcfg, err := pipelineConfig(cfg)
	if err != nil {
		return err
	}
	if verbose {
		bar := tui.ShowProgress(-1, "scanning")
		pcfg.OnProgress = func(lines int64) { bar.Set64(lines) }
	}

	start := time.Now()
	res, err := pipeline.New(pcfg).Run(ctx, src, consumers(cfg)...)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	tui.PrintRunSummary(res, time.Since(start))
	if verbose {
		tui.PrintActors(res.Actors)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	src, err := newSource(ctx, args[0])
	if err != nil {
		return err
	}

	dec := decode.New(cfg.Layout(), cfg.Log.LoggerName)
	rep, err := pipeline.Check(ctx, dec, src)
	if err != nil {
		return err
	}

	tui.PrintCheckReport(rep)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	src, err := newSource(ctx, args[0])
	if err != nil {
		return err
	}

	pcfg, err := pipelineConfig(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := pipeline.New(pcfg).Run(ctx, src)
	if err != nil {
		return err
	}

	tui.PrintRunSummary(res, time.Since(start))
	tui.PrintActors(res.Actors)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	if strings.HasPrefix(path, "s3://") || path == "-" {
		return fmt.Errorf("watch requires a local log file")
	}

	ctx, cancel := signalContext()
	defer cancel()

	stopTelemetry, err := initTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer stopTelemetry()

	pcfg, err := pipelineConfig(cfg)
	if err != nil {
		return err
	}
	sinks := consumers(cfg)

	analyze := func() error {
		start := time.Now()
		res, err := pipeline.New(pcfg).Run(ctx, &pipeline.FileSource{Path: path}, sinks...)
		if err != nil {
			return err
		}
		tui.PrintRunSummary(res, time.Since(start))
		return nil
	}

	// Analyze what is already on disk, then follow the file.
	if err := analyze(); err != nil {
		return err
	}

	watcher, err := watch.New(path)
	if err != nil {
		return err
	}
	watcher.OnChange = func(fresh bool) error {
		if fresh {
			fmt.Fprintln(os.Stderr, "log was rotated, starting over")
		}
		return analyze()
	}
	watcher.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
	}

	fmt.Printf("watching %s for changes\n", path)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
