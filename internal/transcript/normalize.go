package transcript

import (
	"strings"
	"unicode"
)

// Normalize cleans one fragment of caption text. In order it removes
// angle-bracket markup spans, strips a leading "Name:" speaker label when a
// bracketed timestamp range follows it, collapses every whitespace run
// (newlines included) to a single space, replaces HTML entity tokens such as
// &quot; with a space, and trims the result. Turn markers use none of that
// syntax and come through unchanged; already-clean text is a fixed point.
func Normalize(s string) string {
	s = stripMarkup(s)
	s = stripSpeakerPrefix(s)
	s = strings.Join(strings.Fields(s), " ")
	s = replaceEntities(s)
	return strings.TrimSpace(s)
}

// stripMarkup removes <...> markup spans using a simple state machine over
// the styling tags caption producers emit. An unterminated < swallows the
// rest of the string; a > outside a span is ordinary text and survives,
// which keeps the function stable on its own output.
func stripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripSpeakerPrefix drops a leading "Name:" speaker label, but only when
// whitespace and a bracketed timestamp range follow it. Prose that merely
// contains a colon is left alone.
func stripSpeakerPrefix(s string) string {
	w := wordLen(s)
	if w == 0 || w >= len(s) || s[w] != ':' {
		return s
	}
	after := s[w+1:]
	rest := strings.TrimLeftFunc(after, unicode.IsSpace)
	if len(rest) == len(after) {
		// The label must be separated from the range by whitespace.
		return s
	}
	if !startsWithBracketedRange(rest) {
		return s
	}
	return rest
}

// startsWithBracketedRange reports whether s begins with a bracketed
// timestamp range such as [00:00:46.360 --> 00:01:03.940].
func startsWithBracketedRange(s string) bool {
	if s == "" || s[0] != '[' {
		return false
	}
	rest, ok := cutTimestamp(s[1:])
	if !ok {
		return false
	}
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	rest, ok = strings.CutPrefix(rest, "-->")
	if !ok {
		return false
	}
	rest, ok = cutTimestamp(strings.TrimLeftFunc(rest, unicode.IsSpace))
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), "]")
}

// cutTimestamp consumes a strict HH:MM:SS or HH:MM:SS.mmm token from the
// start of s: two digits per group, exactly three millisecond digits. A
// token run into by a further digit is malformed.
func cutTimestamp(s string) (string, bool) {
	const base = len("00:00:00")
	for i := 0; i < base; i++ {
		if i >= len(s) {
			return "", false
		}
		if i == 2 || i == 5 {
			if s[i] != ':' {
				return "", false
			}
			continue
		}
		if !isASCIIDigit(s[i]) {
			return "", false
		}
	}
	n := base
	if n < len(s) && s[n] == '.' {
		for i := n + 1; i < n+4; i++ {
			if i >= len(s) || !isASCIIDigit(s[i]) {
				return "", false
			}
		}
		n += 4
	}
	if n < len(s) && isASCIIDigit(s[n]) {
		return "", false
	}
	return s[n:], true
}

// replaceEntities substitutes every &word; entity token with a single
// space. Only ASCII letters form an entity name.
func replaceEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '&' {
			if n := entityLen(s[i:]); n > 0 {
				b.WriteByte(' ')
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// entityLen returns the byte length of the &word; token at the start of s,
// or 0 when s does not start with one.
func entityLen(s string) int {
	n := 1
	for n < len(s) && isASCIILetter(s[n]) {
		n++
	}
	if n == 1 || n >= len(s) || s[n] != ';' {
		return 0
	}
	return n + 1
}

// wordLen returns the byte length of the word token at the start of s. Word
// runes are letters, digits and underscore.
func wordLen(s string) int {
	for i, r := range s {
		if !isWordRune(r) {
			return i
		}
	}
	return len(s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
