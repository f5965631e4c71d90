package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrWong99/cuescrub/internal/config"
	"github.com/MrWong99/cuescrub/internal/transcript"
	"github.com/MrWong99/cuescrub/internal/transcript/similarity"
)

func TestLoadFromReader_FullDocument(t *testing.T) {
	t.Parallel()
	yaml := `
cleaning:
  threshold: 0.9
  metric: jaro-winkler
  format: cue
  timestamps: full
  turn_marker: "((TURN))"
batch:
  jobs: 2
logging:
  level: debug
  format: json
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.Cleaning.Threshold != 0.9 {
		t.Errorf("threshold = %v, want 0.9", cfg.Cleaning.Threshold)
	}
	if cfg.Cleaning.Metric != similarity.MetricJaroWinkler {
		t.Errorf("metric = %q, want jaro-winkler", cfg.Cleaning.Metric)
	}
	if cfg.Cleaning.Format != transcript.FormatCue {
		t.Errorf("format = %q, want cue", cfg.Cleaning.Format)
	}
	if cfg.Cleaning.Timestamps != transcript.TimestampsFull {
		t.Errorf("timestamps = %q, want full", cfg.Cleaning.Timestamps)
	}
	if cfg.Cleaning.TurnMarker != "((TURN))" {
		t.Errorf("turn_marker = %q, want ((TURN))", cfg.Cleaning.TurnMarker)
	}
	if cfg.Batch.Jobs != 2 {
		t.Errorf("jobs = %d, want 2", cfg.Batch.Jobs)
	}
	if cfg.Logging.Level != config.LogDebug || cfg.Logging.Format != config.LogJSON {
		t.Errorf("logging = %q/%q, want debug/json", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadFromReader_PartialDocumentKeepsDefaults(t *testing.T) {
	t.Parallel()
	yaml := `
cleaning:
  threshold: 0.95
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.Cleaning.Threshold != 0.95 {
		t.Errorf("threshold = %v, want 0.95", cfg.Cleaning.Threshold)
	}
	if cfg.Cleaning.Metric != similarity.MetricRatcliff {
		t.Errorf("metric = %q, want the ratcliff default", cfg.Cleaning.Metric)
	}
	if cfg.Cleaning.TurnMarker != transcript.DefaultTurnMarker {
		t.Errorf("turn_marker = %q, want the default", cfg.Cleaning.TurnMarker)
	}
	if cfg.Batch.Jobs != config.DefaultJobs {
		t.Errorf("jobs = %d, want the default %d", cfg.Batch.Jobs, config.DefaultJobs)
	}
}

func TestLoadFromReader_EmptyDocumentIsAllDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestLoadFromReader_UnknownKeyRejected(t *testing.T) {
	t.Parallel()
	yaml := `
cleaning:
  treshold: 0.9
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should mention the unknown field, got: %v", err)
	}
}

func TestValidate_JoinsAllFailures(t *testing.T) {
	t.Parallel()
	yaml := `
cleaning:
  threshold: 0
  metric: nearest
  format: srt
  timestamps: middle
  turn_marker: ""
batch:
  jobs: 0
logging:
  level: loud
  format: xml
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	for _, want := range []string{
		"cleaning.threshold",
		"cleaning.metric",
		"cleaning.format",
		"cleaning.timestamps",
		"cleaning.turn_marker",
		"batch.jobs",
		"logging.level",
		"logging.format",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error should mention %s, got: %v", want, err)
		}
	}
}

func TestValidate_TurnMarkerMustSurviveNormalization(t *testing.T) {
	t.Parallel()
	yaml := `
cleaning:
  turn_marker: "<TURN>"
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for a marker erased by normalization, got nil")
	}
	if !strings.Contains(err.Error(), "turn_marker") {
		t.Errorf("error should mention turn_marker, got: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cuescrub.yaml")
	yaml := "cleaning:\n  threshold: 0.85\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cleaning.Threshold != 0.85 {
		t.Errorf("threshold = %v, want 0.85", cfg.Cleaning.Threshold)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
