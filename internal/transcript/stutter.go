package transcript

import "strings"

// wordToken is one word of a line plus the separator text that follows it,
// up to the next word or the end of the line.
type wordToken struct {
	word string
	sep  string
}

// CollapseWordStutter removes stuttered word repetitions from one line:
// "hello hello world" becomes "hello world" and "a a a a" becomes "a". A
// word is a maximal run of letters, digits and underscore; repetitions are
// matched case-insensitively and the first occurrence's casing wins. Only
// repetitions separated by whitespace alone collapse, so deliberate ones
// like "no, no, no" survive. The function is idempotent.
func CollapseWordStutter(s string) string {
	prefix, tokens := splitWords(s)
	if len(tokens) < 2 {
		return s
	}

	for {
		var changed bool
		tokens, changed = collapsePairs(tokens)
		if !changed {
			break
		}
	}
	tokens = collapseRuns(tokens)

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(prefix)
	for _, t := range tokens {
		b.WriteString(t.word)
		b.WriteString(t.sep)
	}
	return b.String()
}

// collapsePairs performs one left-to-right sweep over the tokens, collapsing
// each adjacent pair of equal words separated by whitespace alone. The
// collapsed token keeps the first word and the second word's trailing
// separator. Matches do not overlap within a sweep; the caller loops to a
// fixed point.
func collapsePairs(ts []wordToken) ([]wordToken, bool) {
	out := ts[:0]
	changed := false
	for i := 0; i < len(ts); {
		if i+1 < len(ts) && whitespaceSep(ts[i].sep) && strings.EqualFold(ts[i].word, ts[i+1].word) {
			out = append(out, wordToken{word: ts[i].word, sep: ts[i+1].sep})
			i += 2
			changed = true
			continue
		}
		out = append(out, ts[i])
		i++
	}
	return out, changed
}

// collapseRuns is the fallback sweep: any remaining run of three or more
// equal whitespace-separated words collapses to its first word, keeping the
// run's trailing separator. Every member is compared against the run's
// first word.
func collapseRuns(ts []wordToken) []wordToken {
	out := ts[:0]
	for i := 0; i < len(ts); {
		j := i
		for j+1 < len(ts) && whitespaceSep(ts[j].sep) && strings.EqualFold(ts[i].word, ts[j+1].word) {
			j++
		}
		if j-i >= 2 {
			out = append(out, wordToken{word: ts[i].word, sep: ts[j].sep})
		} else {
			out = append(out, ts[i:j+1]...)
		}
		i = j + 1
	}
	return out
}

// splitWords splits s into word tokens. prefix is any separator text before
// the first word. Joining prefix and every token's word+sep restores s.
func splitWords(s string) (prefix string, tokens []wordToken) {
	start := 0
	inWord := false
	flush := func(end int) {
		span := s[start:end]
		start = end
		switch {
		case inWord:
			tokens = append(tokens, wordToken{word: span})
		case len(tokens) == 0:
			prefix = span
		default:
			tokens[len(tokens)-1].sep = span
		}
	}
	for i, r := range s {
		if isWordRune(r) != inWord {
			flush(i)
			inWord = !inWord
		}
	}
	flush(len(s))
	return prefix, tokens
}

// whitespaceSep reports whether sep is non-empty whitespace, the only kind
// of gap a stuttered repetition may span.
func whitespaceSep(sep string) bool {
	return sep != "" && strings.TrimSpace(sep) == ""
}
