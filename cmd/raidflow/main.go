// RaidFlow - Combat log encounter analyzer
// Segments raid combat logs into boss encounters and renders per-encounter
// statistic tables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	configPath string
	verbose    bool

	layoutFlag      string
	loggerName      string
	minLength       float64
	includeAttempts bool
	wipeTimeout     float64
	bossFlags       []string
	hintsFile       string
	rescan          bool

	outputDir  string
	formatFlag string

	telemetryFlag     bool
	telemetryEndpoint string

	s3Region   string
	s3Endpoint string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raidflow",
	Short: "RaidFlow - Analyze raid combat logs",
	Long: `RaidFlow segments a raid combat log into boss encounters, classifies
the participants, and renders per-encounter statistic tables (damage,
healing, deaths, aura uptime and more) as CSV or XLSX reports.`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse [log-file]",
	Short: "Analyze a combat log and write encounter reports",
	Long: `Parse a combat log, segment it into boss encounters and write one
report per encounter to the output directory.

The log may be plain text or gzip-compressed, a local path, "-" for
stdin, or an s3:// URL.

Examples:
  raidflow parse WoWCombatLog.txt
  raidflow parse --layout v1 --logger-name Kaelen old-client.log
  raidflow parse --attempts --min-length 30 mc-night1.txt.gz
  raidflow parse --format xlsx -o reports/ s3://raid-logs/night1.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var checkCmd = &cobra.Command{
	Use:   "check [log-file]",
	Short: "Measure decoder coverage of a combat log",
	Long: `Decode every line of a combat log without running analysis and report
how many lines were recognized and how many decoded events round-trip
through the canonical renderer.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var infoCmd = &cobra.Command{
	Use:   "info [log-file]",
	Short: "List encounters and participants without writing reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var watchCmd = &cobra.Command{
	Use:   "watch [log-file]",
	Short: "Re-analyze a live combat log as it grows",
	Long: `Watch a combat log that is being written by a running game client and
re-run the analysis after each burst of appends. Reports are republished
atomically, so a partially written encounter never replaces a complete
one.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	for _, cmd := range []*cobra.Command{parseCmd, infoCmd, watchCmd} {
		cmd.Flags().StringVar(&layoutFlag, "layout", "", "Log layout (v1, v2)")
		cmd.Flags().StringVar(&loggerName, "logger-name", "", "Actor name behind first-person pronouns in v1 logs")
		cmd.Flags().Float64Var(&minLength, "min-length", 0, "Drop encounters shorter than this many seconds")
		cmd.Flags().BoolVar(&includeAttempts, "attempts", false, "Include wipes, not just kills")
		cmd.Flags().Float64Var(&wipeTimeout, "wipe-timeout", 0, "Seconds of boss inactivity before a wipe")
		cmd.Flags().StringArrayVar(&bossFlags, "boss", nil, "Boss name to segment on (repeatable, replaces builtin list)")
		cmd.Flags().StringVar(&hintsFile, "hints", "", "YAML file mapping actor name to class")
	}
	parseCmd.Flags().BoolVar(&rescan, "rescan", false, "Re-read the log per encounter instead of buffering events")
	parseCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Report output directory")
	parseCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Report format (csv, xlsx, both)")
	watchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Report output directory")
	watchCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Report format (csv, xlsx, both)")

	checkCmd.Flags().StringVar(&layoutFlag, "layout", "", "Log layout (v1, v2)")
	checkCmd.Flags().StringVar(&loggerName, "logger-name", "", "Actor name behind first-person pronouns in v1 logs")

	rootCmd.PersistentFlags().BoolVar(&telemetryFlag, "telemetry", false, "Export pipeline traces over OTLP gRPC")
	rootCmd.PersistentFlags().StringVar(&telemetryEndpoint, "telemetry-endpoint", "", "OTLP gRPC endpoint")

	parseCmd.Flags().StringVar(&s3Region, "s3-region", "", "AWS region for s3:// inputs")
	parseCmd.Flags().StringVar(&s3Endpoint, "s3-endpoint", "", "Endpoint override for S3-compatible storage")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(watchCmd)
}
