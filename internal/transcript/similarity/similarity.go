// Package similarity provides the string-similarity metrics used to decide
// whether two transcript lines are near-duplicates.
//
// The default metric is a Ratcliff/Obershelp ratio (see [Ratio]): the total
// number of runes covered by recursively-found longest common blocks, doubled
// and divided by the combined length of both strings. It rewards long shared
// spans, which makes it a good fit for incremental re-transcription artifacts
// where one line is an edited or extended version of the previous one.
//
// Two alternative metrics are available through [Metric] for callers whose
// thresholds are tuned to other scales: Jaro-Winkler and a Levenshtein
// distance normalized into [0, 1]. Both are backed by
// github.com/antzucaro/matchr.
package similarity

import (
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Func scores the similarity of two strings in [0, 1], where 1 means
// identical. Implementations must be symmetric and deterministic.
type Func func(a, b string) float64

// Metric selects a similarity scoring function by name.
type Metric string

const (
	// MetricRatcliff is the Ratcliff/Obershelp ratio implemented by [Ratio].
	MetricRatcliff Metric = "ratcliff"

	// MetricJaroWinkler is Jaro-Winkler similarity with standard scoring.
	MetricJaroWinkler Metric = "jaro-winkler"

	// MetricLevenshtein is Levenshtein edit distance normalized to [0, 1]
	// as 1 - distance/max(len(a), len(b)), measured in runes.
	MetricLevenshtein Metric = "levenshtein"
)

// IsValid reports whether m is a recognised metric name.
func (m Metric) IsValid() bool {
	switch m {
	case MetricRatcliff, MetricJaroWinkler, MetricLevenshtein:
		return true
	}
	return false
}

// Func returns the scoring function for m. The zero value and any
// unrecognised name select [Ratio].
func (m Metric) Func() Func {
	switch m {
	case MetricJaroWinkler:
		return jaroWinkler
	case MetricLevenshtein:
		return normalizedLevenshtein
	default:
		return Ratio
	}
}

func jaroWinkler(a, b string) float64 {
	return matchr.JaroWinkler(a, b, false)
}

func normalizedLevenshtein(a, b string) float64 {
	if a == b {
		return 1
	}
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if n == 0 {
		return 1
	}
	return 1 - float64(matchr.Levenshtein(a, b))/float64(n)
}
