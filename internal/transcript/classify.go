package transcript

import (
	"path/filepath"
	"strings"
)

// Format selects which parsing path [Pipeline.Clean] takes.
type Format string

const (
	// FormatAuto detects cue-timed input per document via [Detect].
	FormatAuto Format = "auto"

	// FormatCue forces the cue-timed path.
	FormatCue Format = "cue"

	// FormatPlain forces the plain-text path.
	FormatPlain Format = "plain"
)

// IsValid reports whether f is a recognised format selector.
func (f Format) IsValid() bool {
	switch f {
	case FormatAuto, FormatCue, FormatPlain:
		return true
	}
	return false
}

// Detect reports whether raw looks like cue-timed caption input. It is a
// cheap sniff and never fails: true when the filename hint has a .vtt
// extension (ASCII case-insensitive), when raw begins with the WEBVTT magic
// (case-sensitive, the form real producers emit), or when raw contains an
// embedded bracketed timestamp.
func Detect(raw, filenameHint string) bool {
	if strings.EqualFold(filepath.Ext(filenameHint), ".vtt") {
		return true
	}
	if strings.HasPrefix(raw, "WEBVTT") {
		return true
	}
	return strings.Contains(raw, "[00:00:")
}
