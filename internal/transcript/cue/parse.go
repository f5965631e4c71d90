// Package cue parses cue-timed caption input into blocks of timestamped
// transcription candidates and merges candidates that grew out of the same
// utterance.
//
// Cue-timed input is blank-line delimited: an optional WEBVTT header section,
// optional NOTE/STYLE annotation blocks, then cue blocks. Streaming
// speech-to-text producers emit two block shapes. The single-cue shape carries
// one timestamp-range line followed by the cue text. The multi-candidate
// shape carries one timestamped line per incremental re-transcription guess,
// each guess usually extending the previous one; [Merge] collapses such a
// prefix chain to a single caption with the earliest timestamp and the most
// complete text.
//
// Parsing is an explicit line scan — each line is classified into one of a
// small set of kinds and timestamp tokens are validated strictly (two digits
// per group, optional dot plus exactly three millisecond digits). Anything
// malformed degrades to plain text; no input is ever an error.
package cue

import "strings"

// Candidate is one transcription guess for part of an utterance.
type Candidate struct {
	// Start is the candidate's start timestamp exactly as scanned,
	// HH:MM:SS or HH:MM:SS.mmm.
	Start string

	// Text is the candidate's raw text. It has not been normalized.
	Text string
}

// Block is one blank-line-delimited chunk of cue-timed input. It owns zero
// or more candidates in document order; a block with zero candidates is
// valid and simply produces no output.
type Block struct {
	Candidates []Candidate
}

// Parse splits raw cue-timed input into blocks and extracts each block's
// ordered candidates.
//
// A leading WEBVTT header line (matched ASCII case-insensitively) is dropped
// together with its metadata continuation lines up to and including the first
// blank line. Blocks whose first line carries the NOTE or STYLE token are
// annotation blocks and are dropped whole. The remaining content splits into
// blocks on runs of one-or-more blank lines.
//
// Each block resolves to one of three shapes:
//
//   - exactly one timestamp-range line: a single candidate whose text is the
//     range line's inline text joined with every following line. Lines before
//     the range line (cue identifiers) are discarded.
//   - two or more range lines: one candidate per range line that carries
//     inline text; bare range lines contribute nothing.
//   - no range line but at least one "timestamp text" line: one candidate
//     per such line. This is the shape incremental re-transcription produces.
//
// Any other block yields zero candidates. Parse never fails.
func Parse(raw string) []Block {
	lines := strings.Split(raw, "\n")
	lines = stripHeader(lines)

	var blocks []Block
	var current []scanned
	flush := func() {
		if len(current) == 0 {
			return
		}
		if !isAnnotation(current) {
			blocks = append(blocks, resolveBlock(current))
		}
		current = current[:0]
	}

	for _, line := range lines {
		s := scanLine(line)
		if s.kind == lineBlank {
			flush()
			continue
		}
		current = append(current, s)
	}
	flush()

	return blocks
}

// stripHeader drops a leading WEBVTT header line and its metadata
// continuation lines through the first blank line. Without a blank line the
// header section swallows the remainder of the document.
func stripHeader(lines []string) []string {
	if len(lines) == 0 || !isHeaderLine(lines[0]) {
		return lines
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			return lines[i+1:]
		}
	}
	return nil
}

// isHeaderLine reports whether line is a WEBVTT header line: the token
// matched ASCII case-insensitively, alone or followed by whitespace.
func isHeaderLine(line string) bool {
	line = strings.TrimSpace(line)
	const token = "WEBVTT"
	if len(line) < len(token) || !strings.EqualFold(line[:len(token)], token) {
		return false
	}
	return len(line) == len(token) || line[len(token)] == ' ' || line[len(token)] == '\t'
}

// isAnnotation reports whether the block is a NOTE or STYLE block: its first
// line starts with the token (case-sensitive), alone or followed by
// whitespace.
func isAnnotation(block []scanned) bool {
	first := block[0].raw
	for _, token := range [...]string{"NOTE", "STYLE"} {
		if first == token {
			return true
		}
		if rest, ok := strings.CutPrefix(first, token); ok && (rest[0] == ' ' || rest[0] == '\t') {
			return true
		}
	}
	return false
}

// resolveBlock extracts a block's candidates according to its shape.
func resolveBlock(block []scanned) Block {
	var ranges []int
	for i, s := range block {
		if s.kind == lineRangeOnly || s.kind == lineRangeText {
			ranges = append(ranges, i)
		}
	}

	var cands []Candidate
	switch {
	case len(ranges) == 1:
		at := ranges[0]
		parts := make([]string, 0, len(block)-at)
		if block[at].text != "" {
			parts = append(parts, block[at].text)
		}
		for _, s := range block[at+1:] {
			parts = append(parts, s.raw)
		}
		if text := strings.Join(parts, " "); text != "" {
			cands = append(cands, Candidate{Start: block[at].start, Text: text})
		}

	case len(ranges) > 1:
		for _, i := range ranges {
			if block[i].kind == lineRangeText {
				cands = append(cands, Candidate{Start: block[i].start, Text: block[i].text})
			}
		}

	default:
		for _, s := range block {
			if s.kind == lineTimeText {
				cands = append(cands, Candidate{Start: s.start, Text: s.text})
			}
		}
	}

	return Block{Candidates: cands}
}
