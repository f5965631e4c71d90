package cue

import (
	"strings"
	"unicode"
)

// lineKind classifies one physical line of cue-timed input.
type lineKind int

const (
	lineBlank     lineKind = iota
	linePlain              // no usable timestamp token
	lineRangeOnly          // timestamp range with nothing after it
	lineRangeText          // timestamp range followed by inline text
	lineTimeText           // single timestamp followed by text
)

// scanned is one classified line. start holds the validated start-timestamp
// token for the timestamped kinds, text the inline text after it, and raw the
// whole line with surrounding whitespace trimmed.
type scanned struct {
	kind  lineKind
	start string
	text  string
	raw   string
}

// scanLine classifies a single line. Timestamp tokens are matched strictly;
// a line whose token fails the pattern is plain text, never an error. Both
// the range and the single-timestamp forms may be wrapped in [brackets], and
// a bracket once opened must close.
func scanLine(line string) scanned {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return scanned{kind: lineBlank}
	}

	s := trimmed
	bracketed := s[0] == '['
	if bracketed {
		s = s[1:]
	}

	n, ok := scanTimestamp(s)
	if !ok {
		return scanned{kind: linePlain, text: trimmed, raw: trimmed}
	}
	start := s[:n]
	s = s[n:]

	if rest, ok := scanArrow(s); ok {
		m, ok := scanTimestamp(rest)
		if !ok {
			return scanned{kind: linePlain, text: trimmed, raw: trimmed}
		}
		rest = rest[m:]
		if bracketed {
			rest, ok = closeBracket(rest)
			if !ok {
				return scanned{kind: linePlain, text: trimmed, raw: trimmed}
			}
		}
		text := strings.TrimSpace(rest)
		if text == "" {
			return scanned{kind: lineRangeOnly, start: start, raw: trimmed}
		}
		return scanned{kind: lineRangeText, start: start, text: text, raw: trimmed}
	}

	if bracketed {
		rest, ok := closeBracket(s)
		if !ok {
			return scanned{kind: linePlain, text: trimmed, raw: trimmed}
		}
		s = rest
	} else {
		// An unbracketed timestamp needs whitespace before its text.
		if s == "" || !unicode.IsSpace(firstRune(s)) {
			return scanned{kind: linePlain, text: trimmed, raw: trimmed}
		}
	}
	text := strings.TrimSpace(s)
	if text == "" {
		// A bare timestamp carries no candidate.
		return scanned{kind: linePlain, text: trimmed, raw: trimmed}
	}
	return scanned{kind: lineTimeText, start: start, text: text, raw: trimmed}
}

// scanTimestamp reads a strict HH:MM:SS or HH:MM:SS.mmm token from the start
// of s and returns its byte length. Digit groups must be exactly two digits,
// milliseconds exactly three; a token run into by a further digit is
// rejected as malformed.
func scanTimestamp(s string) (int, bool) {
	if !digits(s, 0, 2) || !hasByte(s, 2, ':') || !digits(s, 3, 2) || !hasByte(s, 5, ':') || !digits(s, 6, 2) {
		return 0, false
	}
	n := 8
	if n < len(s) && s[n] == '.' {
		if !digits(s, n+1, 3) {
			return 0, false
		}
		n += 4
	}
	if n < len(s) && isDigit(s[n]) {
		return 0, false
	}
	return n, true
}

// scanArrow consumes optional whitespace, the --> separator, and optional
// whitespace after it, returning the remainder.
func scanArrow(s string) (string, bool) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(rest, "-->") {
		return "", false
	}
	return strings.TrimLeftFunc(rest[len("-->"):], unicode.IsSpace), true
}

// closeBracket consumes optional whitespace and the closing ] of a
// bracket-wrapped token, returning the remainder.
func closeBracket(s string) (string, bool) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(rest, "]") {
		return "", false
	}
	return rest[1:], true
}

func digits(s string, at, count int) bool {
	if at+count > len(s) {
		return false
	}
	for i := at; i < at+count; i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func hasByte(s string, at int, c byte) bool {
	return at < len(s) && s[at] == c
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
