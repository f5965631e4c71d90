package transcript_test

import (
	"reflect"
	"testing"

	"github.com/MrWong99/cuescrub/internal/transcript"
	"github.com/MrWong99/cuescrub/internal/transcript/similarity"
)

func lines(texts ...string) []transcript.Line {
	ls := make([]transcript.Line, len(texts))
	for i, t := range texts {
		ls[i] = transcript.Line{Text: t}
	}
	return ls
}

func texts(ls []transcript.Line) []string {
	ts := make([]string, len(ls))
	for i, l := range ls {
		ts[i] = l.Text
	}
	return ts
}

func TestDedupeLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		in        []transcript.Line
		threshold float64
		want      []string
	}{
		{
			name:      "trailing punctuation dropped at default threshold",
			in:        lines("the quick fox", "the quick fox."),
			threshold: 0.8,
			want:      []string{"the quick fox"},
		},
		{
			name:      "trailing punctuation kept at strict threshold",
			in:        lines("the quick fox", "the quick fox."),
			threshold: 0.99,
			want:      []string{"the quick fox", "the quick fox."},
		},
		{
			name:      "unrelated lines kept",
			in:        lines("the quick fox", "a lazy dog instead"),
			threshold: 0.8,
			want:      []string{"the quick fox", "a lazy dog instead"},
		},
		{
			name:      "dropped lines do not shift the baseline",
			in:        lines("the quick fox", "the quick fox.", "the quick fox!"),
			threshold: 0.8,
			want:      []string{"the quick fox"},
		},
		{
			name:      "identical lines dropped even at threshold one",
			in:        lines("same line", "same line"),
			threshold: 1,
			want:      []string{"same line"},
		},
		{
			name:      "turn marker lines always kept",
			in:        lines("same line", "[SPEAKER_TURN]", "it was [SPEAKER_TURN] mid-line"),
			threshold: 0.8,
			want:      []string{"same line", "[SPEAKER_TURN]", "it was [SPEAKER_TURN] mid-line"},
		},
		{
			name:      "consecutive markers all survive",
			in:        lines("[SPEAKER_TURN]", "[SPEAKER_TURN]"),
			threshold: 0.8,
			want:      []string{"[SPEAKER_TURN]", "[SPEAKER_TURN]"},
		},
		{
			name:      "single line",
			in:        lines("only"),
			threshold: 0.8,
			want:      []string{"only"},
		},
		{
			name:      "empty input",
			in:        nil,
			threshold: 0.8,
			want:      []string{},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := transcript.DedupeLines(tc.in, nil, tc.threshold, "[SPEAKER_TURN]")
			if !reflect.DeepEqual(texts(got), tc.want) {
				t.Errorf("DedupeLines() = %q, want %q", texts(got), tc.want)
			}
		})
	}
}

func TestDedupeLines_ComparesRenderedLines(t *testing.T) {
	t.Parallel()

	// The timestamps differ by one digit; with near-identical text the
	// rendered lines still score above the default threshold.
	in := []transcript.Line{
		{Timestamp: "00:00:00", Text: "Hi there"},
		{Timestamp: "00:00:02", Text: "Hi there"},
	}
	got := transcript.DedupeLines(in, nil, 0.8, "[SPEAKER_TURN]")
	if len(got) != 1 || got[0].Timestamp != "00:00:00" {
		t.Errorf("DedupeLines() = %+v, want only the first line", got)
	}
}

func TestDedupeLines_CustomScore(t *testing.T) {
	t.Parallel()

	everythingMatches := similarity.Func(func(a, b string) float64 { return 1 })
	in := lines("one", "two", "[SPEAKER_TURN]", "three")
	got := transcript.DedupeLines(in, everythingMatches, 0.8, "[SPEAKER_TURN]")
	want := []string{"one", "[SPEAKER_TURN]"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("DedupeLines() = %q, want %q", texts(got), want)
	}
}

func TestDedupeLines_EmptyMarkerDisablesBypass(t *testing.T) {
	t.Parallel()

	in := lines("same line", "same line")
	got := transcript.DedupeLines(in, nil, 0.8, "")
	if len(got) != 1 {
		t.Errorf("DedupeLines() kept %d lines, want 1", len(got))
	}
}
