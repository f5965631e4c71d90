// Package transcript implements the transcript cleaning pipeline used by
// cuescrub to turn noisy caption output into readable text.
//
// Incremental speech-to-text producers re-emit a growing line for the same
// utterance, wrap text in styling markup, and stutter on word boundaries
// between re-transcriptions. The [Pipeline] undoes that in stages:
//
//  1. Format detection ([Detect]): decide whether a document is cue-timed
//     caption input or plain text, unless the caller forces a path.
//  2. Cue parsing ([cue.Parse]): split cue-timed input into blocks of
//     timestamped candidates; plain input splits into physical lines.
//  3. Normalization ([Normalize]): strip markup, speaker labels, entity
//     tokens and excess whitespace from each fragment.
//  4. Candidate merging ([cue.Merge]): collapse prefix chains of
//     re-transcription guesses into one caption each.
//  5. Deduplication ([DedupeLines]): drop lines that are near-duplicates of
//     the previously kept line, scored by a configurable similarity metric.
//  6. Stutter collapse ([CollapseWordStutter]): remove repeated adjacent
//     words inside each surviving line.
//
// Every stage degrades per block, candidate or line and continues; the only
// caller-visible failure is [ErrNotText] for input that is not UTF-8 text.
//
// A Pipeline is read-only after construction and safe for concurrent use.
package transcript

import (
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/MrWong99/cuescrub/internal/transcript/cue"
	"github.com/MrWong99/cuescrub/internal/transcript/similarity"
)

// ErrNotText reports input that is not valid UTF-8 text.
var ErrNotText = errors.New("transcript: input is not valid UTF-8 text")

const (
	// DefaultThreshold is the similarity score at which a line counts as a
	// near-duplicate of the previously kept line.
	DefaultThreshold = 0.8

	// DefaultTurnMarker is the inline token marking a speaker change.
	// Lines carrying it are never dropped by deduplication.
	DefaultTurnMarker = "[SPEAKER_TURN]"
)

// TimestampMode controls how caption start timestamps are rendered.
type TimestampMode string

const (
	// TimestampsStart truncates timestamps to HH:MM:SS.
	TimestampsStart TimestampMode = "start"

	// TimestampsFull keeps millisecond precision when present.
	TimestampsFull TimestampMode = "full"
)

// IsValid reports whether m is a recognised timestamp mode.
func (m TimestampMode) IsValid() bool {
	return m == TimestampsStart || m == TimestampsFull
}

// Document is one unit of input for [Pipeline.Clean].
type Document struct {
	// Raw is the document's complete text.
	Raw string

	// Name is an optional filename hint consulted by format detection.
	Name string
}

// Line is one cleaned output line flowing through deduplication and stutter
// collapse.
type Line struct {
	// Timestamp is the line's start timestamp. Empty on the plain path.
	Timestamp string

	// Text is the cleaned caption text.
	Text string
}

// Render returns the line as written to output: "<timestamp> <text>" when a
// timestamp is present, the text alone otherwise.
func (l Line) Render() string {
	if l.Timestamp == "" {
		return l.Text
	}
	return l.Timestamp + " " + l.Text
}

// Result is the outcome of cleaning one document.
type Result struct {
	// Lines are the cleaned lines in document order. Empty input yields an
	// empty, valid result.
	Lines []Line

	// Report counts the work done per stage.
	Report Report
}

// Text renders the result's lines joined by newlines, without a trailing
// newline.
func (r Result) Text() string {
	rendered := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		rendered[i] = l.Render()
	}
	return strings.Join(rendered, "\n")
}

// Option is a functional option for configuring a [Pipeline].
type Option func(*Pipeline)

// WithThreshold sets the near-duplicate similarity threshold in (0, 1].
// Default: [DefaultThreshold].
func WithThreshold(t float64) Option {
	return func(p *Pipeline) {
		p.threshold = t
	}
}

// WithMetric selects the similarity metric scoring near-duplicate lines.
// Default: [similarity.MetricRatcliff].
func WithMetric(m similarity.Metric) Option {
	return func(p *Pipeline) {
		p.score = m.Func()
	}
}

// WithFormat forces the parsing path instead of detecting it per document.
// Default: [FormatAuto].
func WithFormat(f Format) Option {
	return func(p *Pipeline) {
		p.format = f
	}
}

// WithTimestamps sets how caption timestamps are rendered.
// Default: [TimestampsStart].
func WithTimestamps(m TimestampMode) Option {
	return func(p *Pipeline) {
		p.timestamps = m
	}
}

// WithTurnMarker sets the inline token whose lines bypass deduplication.
// Default: [DefaultTurnMarker].
func WithTurnMarker(marker string) Option {
	return func(p *Pipeline) {
		p.marker = marker
	}
}

// Pipeline cleans transcript documents. Construct it with [NewPipeline];
// the zero value is not usable.
//
// A Pipeline holds no per-document state: [Pipeline.Clean] may be called
// concurrently for different documents.
type Pipeline struct {
	threshold  float64
	score      similarity.Func
	format     Format
	timestamps TimestampMode
	marker     string
}

// NewPipeline returns a Pipeline configured with the supplied options.
// Callers are expected to pass validated settings; see the option docs for
// the defaults.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		threshold:  DefaultThreshold,
		score:      similarity.MetricRatcliff.Func(),
		format:     FormatAuto,
		timestamps: TimestampsStart,
		marker:     DefaultTurnMarker,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Clean cleans one document. It returns [ErrNotText] when doc.Raw is not
// valid UTF-8; any other input, including input producing zero lines, yields
// a valid [Result].
func (p *Pipeline) Clean(doc Document) (Result, error) {
	if !utf8.ValidString(doc.Raw) {
		return Result{}, ErrNotText
	}

	cueTimed := false
	switch p.format {
	case FormatCue:
		cueTimed = true
	case FormatPlain:
		cueTimed = false
	default:
		cueTimed = Detect(doc.Raw, doc.Name)
	}

	var rep Report
	var lines []Line
	if cueTimed {
		lines = p.cleanCue(doc.Raw, &rep)
	} else {
		lines = cleanPlain(doc.Raw)
	}

	deduped := DedupeLines(lines, p.score, p.threshold, p.marker)
	rep.LinesDeduplicated = len(lines) - len(deduped)

	for i, line := range deduped {
		collapsed := CollapseWordStutter(line.Text)
		if collapsed != line.Text {
			deduped[i].Text = collapsed
			rep.LinesCollapsed++
		}
	}

	return Result{Lines: deduped, Report: rep}, nil
}

// cleanCue runs the cue-timed path: parse blocks, normalize and merge each
// block's candidates, and assemble the caption lines.
func (p *Pipeline) cleanCue(raw string, rep *Report) []Line {
	blocks := cue.Parse(raw)
	rep.BlocksSeen = len(blocks)

	var lines []Line
	for _, b := range blocks {
		kept := make([]cue.Candidate, 0, len(b.Candidates))
		for _, c := range b.Candidates {
			text := Normalize(c.Text)
			if text == "" {
				rep.CandidatesDropped++
				slog.Debug("transcript: dropped empty candidate", "start", c.Start)
				continue
			}
			kept = append(kept, cue.Candidate{Start: c.Start, Text: text})
		}
		rep.CandidatesKept += len(kept)
		if len(kept) == 0 {
			rep.BlocksSkipped++
			slog.Debug("transcript: skipped block without candidates")
			continue
		}

		captions := cue.Merge(kept)
		rep.CandidatesMerged += len(kept) - len(captions)
		for _, caption := range captions {
			lines = append(lines, Line{
				Timestamp: p.renderTimestamp(caption.Start),
				Text:      caption.Text,
			})
		}
	}
	return lines
}

// cleanPlain runs the plain path: each physical line is normalized on its
// own and empty lines vanish.
func cleanPlain(raw string) []Line {
	var lines []Line
	for _, physical := range strings.Split(raw, "\n") {
		text := Normalize(physical)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Text: text})
	}
	return lines
}

// renderTimestamp applies the configured timestamp mode: start mode
// truncates HH:MM:SS.mmm to HH:MM:SS.
func (p *Pipeline) renderTimestamp(ts string) string {
	const hhmmss = len("00:00:00")
	if p.timestamps == TimestampsFull || len(ts) <= hhmmss {
		return ts
	}
	return ts[:hhmmss]
}
