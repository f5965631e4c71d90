package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrWong99/cuescrub/internal/transcript"
)

// lowThreshold is the point below which a valid threshold is unusually
// aggressive and worth a warning: most distinct consecutive captions score
// well above it, so a lot of real text would be dropped.
const lowThreshold = 0.5

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Decoding starts from [Default], so a partial document only overrides the
// keys it names; unknown keys are rejected. Useful in tests where configs
// are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty document means all defaults.
			return cfg, Validate(cfg)
		}
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	t := cfg.Cleaning.Threshold
	if !(t > 0 && t <= 1) {
		errs = append(errs, fmt.Errorf("cleaning.threshold %v is out of range (0, 1]", t))
	} else if t < lowThreshold {
		slog.Warn("cleaning.threshold is unusually low; distinct lines may be dropped as duplicates", "threshold", t)
	}

	if !cfg.Cleaning.Metric.IsValid() {
		errs = append(errs, fmt.Errorf("cleaning.metric %q is invalid; valid values: ratcliff, jaro-winkler, levenshtein", cfg.Cleaning.Metric))
	}
	if !cfg.Cleaning.Format.IsValid() {
		errs = append(errs, fmt.Errorf("cleaning.format %q is invalid; valid values: auto, cue, plain", cfg.Cleaning.Format))
	}
	if !cfg.Cleaning.Timestamps.IsValid() {
		errs = append(errs, fmt.Errorf("cleaning.timestamps %q is invalid; valid values: start, full", cfg.Cleaning.Timestamps))
	}

	if marker := cfg.Cleaning.TurnMarker; marker == "" {
		errs = append(errs, errors.New("cleaning.turn_marker must not be empty"))
	} else if transcript.Normalize(marker) != marker {
		errs = append(errs, fmt.Errorf("cleaning.turn_marker %q would not survive text normalization", marker))
	}

	if cfg.Batch.Jobs < 1 {
		errs = append(errs, fmt.Errorf("batch.jobs %d must be at least 1", cfg.Batch.Jobs))
	}

	if !cfg.Logging.Level.IsValid() {
		errs = append(errs, fmt.Errorf("logging.level %q is invalid; valid values: debug, info, warn, error", cfg.Logging.Level))
	}
	if !cfg.Logging.Format.IsValid() {
		errs = append(errs, fmt.Errorf("logging.format %q is invalid; valid values: text, json", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
