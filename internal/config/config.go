// Package config provides the configuration schema and loader for the
// cuescrub transcript cleaner.
package config

import (
	"github.com/MrWong99/cuescrub/internal/transcript"
	"github.com/MrWong99/cuescrub/internal/transcript/similarity"
)

// LogLevel controls log verbosity on stderr.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// LogFormat selects the stderr log encoding.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// IsValid reports whether f is a recognised log format.
func (f LogFormat) IsValid() bool {
	return f == LogText || f == LogJSON
}

// DefaultJobs is the default number of files cleaned concurrently in batch
// mode.
const DefaultJobs = 4

// Config is the root configuration structure for cuescrub.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Cleaning CleaningConfig `yaml:"cleaning"`
	Batch    BatchConfig    `yaml:"batch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CleaningConfig controls the cleaning pipeline.
type CleaningConfig struct {
	// Threshold is the similarity score in (0, 1] at which a line counts as
	// a near-duplicate of the previously kept line and is dropped.
	Threshold float64 `yaml:"threshold"`

	// Metric selects the similarity metric scoring near-duplicate lines:
	// ratcliff, jaro-winkler or levenshtein.
	Metric similarity.Metric `yaml:"metric"`

	// Format selects the parsing path: auto detects cue-timed input per
	// document, cue and plain force it.
	Format transcript.Format `yaml:"format"`

	// Timestamps selects timestamp rendering: start truncates to HH:MM:SS,
	// full keeps millisecond precision.
	Timestamps transcript.TimestampMode `yaml:"timestamps"`

	// TurnMarker is the inline token marking a speaker change. Lines
	// carrying it are never dropped by deduplication. It must survive text
	// normalization unchanged.
	TurnMarker string `yaml:"turn_marker"`
}

// BatchConfig controls multi-file processing.
type BatchConfig struct {
	// Jobs is the maximum number of files cleaned concurrently.
	Jobs int `yaml:"jobs"`
}

// LoggingConfig controls diagnostic output. Cleaned transcript text always
// goes to stdout or files; logs always go to stderr.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file and no flags are
// given. Loading a file starts from these values, so a partial file only
// overrides what it names.
func Default() *Config {
	return &Config{
		Cleaning: CleaningConfig{
			Threshold:  transcript.DefaultThreshold,
			Metric:     similarity.MetricRatcliff,
			Format:     transcript.FormatAuto,
			Timestamps: transcript.TimestampsStart,
			TurnMarker: transcript.DefaultTurnMarker,
		},
		Batch: BatchConfig{
			Jobs: DefaultJobs,
		},
		Logging: LoggingConfig{
			Level:  LogInfo,
			Format: LogText,
		},
	}
}
