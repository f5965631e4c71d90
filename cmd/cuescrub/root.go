package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrWong99/cuescrub/internal/config"
	"github.com/MrWong99/cuescrub/internal/runner"
	"github.com/MrWong99/cuescrub/internal/transcript"
	"github.com/MrWong99/cuescrub/internal/transcript/similarity"
)

var (
	configPath string
	threshold  float64
	metric     string
	format     string
	timestamps string
	turnMarker string
	jobs       int
	output     string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "cuescrub [flags] [file ...]",
	Short: "Clean noisy speech-to-text transcripts",
	Long: `Cuescrub cleans the output of incremental speech-to-text tooling: it merges
re-transcription prefix chains in cue-timed captions, strips markup and
speaker labels, drops near-duplicate consecutive lines and collapses word
stutter.

With no arguments it cleans stdin to stdout. With one argument it cleans
that file to stdout (or to --output). With two or more arguments it cleans
the files concurrently, writing <stem>.clean.txt next to each input.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClean,
}

func init() {
	defaults := config.Default()

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")
	rootCmd.Flags().Float64VarP(&threshold, "threshold", "t", defaults.Cleaning.Threshold, "similarity in (0,1] at which consecutive lines are dropped")
	rootCmd.Flags().StringVarP(&metric, "metric", "m", string(defaults.Cleaning.Metric), "similarity metric: ratcliff, jaro-winkler, levenshtein")
	rootCmd.Flags().StringVarP(&format, "format", "f", string(defaults.Cleaning.Format), "input format: auto, cue, plain")
	rootCmd.Flags().StringVar(&timestamps, "timestamps", string(defaults.Cleaning.Timestamps), "timestamp rendering: start, full")
	rootCmd.Flags().StringVar(&turnMarker, "turn-marker", defaults.Cleaning.TurnMarker, "inline token whose lines bypass deduplication")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", defaults.Batch.Jobs, "max files cleaned concurrently in batch mode")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output path for a single input (default: stdout)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", string(defaults.Logging.Level), "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", string(defaults.Logging.Format), "log format: text, json")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.Logging))
	slog.Debug("cuescrub: effective settings",
		"threshold", cfg.Cleaning.Threshold,
		"metric", cfg.Cleaning.Metric,
		"format", cfg.Cleaning.Format,
		"timestamps", cfg.Cleaning.Timestamps,
		"turn_marker", cfg.Cleaning.TurnMarker,
		"jobs", cfg.Batch.Jobs,
	)

	pipe := transcript.NewPipeline(
		transcript.WithThreshold(cfg.Cleaning.Threshold),
		transcript.WithMetric(cfg.Cleaning.Metric),
		transcript.WithFormat(cfg.Cleaning.Format),
		transcript.WithTimestamps(cfg.Cleaning.Timestamps),
		transcript.WithTurnMarker(cfg.Cleaning.TurnMarker),
	)

	switch len(args) {
	case 0:
		return cleanStdin(pipe)
	case 1:
		return cleanSingle(pipe, args[0])
	default:
		if output != "" {
			return fmt.Errorf("--output applies to a single input, got %d", len(args))
		}
		return cleanBatch(cmd.Context(), pipe, cfg.Batch.Jobs, args)
	}
}

// loadConfig resolves the effective configuration: the config file when
// --config is given (the defaults otherwise), overridden by whichever flags
// were set explicitly, then validated as a whole.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Cleaning.Threshold = threshold
	}
	if flags.Changed("metric") {
		cfg.Cleaning.Metric = similarity.Metric(metric)
	}
	if flags.Changed("format") {
		cfg.Cleaning.Format = transcript.Format(format)
	}
	if flags.Changed("timestamps") {
		cfg.Cleaning.Timestamps = transcript.TimestampMode(timestamps)
	}
	if flags.Changed("turn-marker") {
		cfg.Cleaning.TurnMarker = turnMarker
	}
	if flags.Changed("jobs") {
		cfg.Batch.Jobs = jobs
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = config.LogLevel(logLevel)
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = config.LogFormat(logFormat)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(lc config.LoggingConfig) *slog.Logger {
	var lvl slog.Level
	switch lc.Level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if lc.Format == config.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func cleanStdin(pipe *transcript.Pipeline) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	res, err := pipe.Clean(transcript.Document{Raw: string(raw)})
	if err != nil {
		return err
	}
	return writeResult(res)
}

func cleanSingle(pipe *transcript.Pipeline, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := pipe.Clean(transcript.Document{Raw: string(raw), Name: path})
	if err != nil {
		return fmt.Errorf("clean %q: %w", path, err)
	}
	return writeResult(res)
}

// writeResult renders res to --output or stdout and logs the run summary.
func writeResult(res transcript.Result) error {
	slog.Info("cuescrub: cleaned document",
		"lines", len(res.Lines),
		"deduplicated", res.Report.LinesDeduplicated,
		"collapsed", res.Report.LinesCollapsed,
		"candidates_merged", res.Report.CandidatesMerged,
	)

	text := res.Text()
	if text != "" {
		text += "\n"
	}
	if output != "" {
		return os.WriteFile(output, []byte(text), 0o644)
	}
	_, err := io.WriteString(os.Stdout, text)
	return err
}

func cleanBatch(ctx context.Context, pipe *transcript.Pipeline, jobs int, paths []string) error {
	results, err := runner.New(pipe, jobs).Run(ctx, paths)
	if err != nil {
		return err
	}

	var total transcript.Report
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		total.Add(res.Report)
	}
	slog.Info("cuescrub: batch finished",
		"files", len(results),
		"failed", failed,
		"deduplicated", total.LinesDeduplicated,
		"collapsed", total.LinesCollapsed,
		"candidates_merged", total.CandidatesMerged,
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(paths))
	}
	return nil
}
