package transcript_test

import (
	"testing"

	"github.com/MrWong99/cuescrub/internal/transcript"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		hint string
		want bool
	}{
		{
			name: "vtt extension",
			raw:  "anything at all",
			hint: "talk.vtt",
			want: true,
		},
		{
			name: "vtt extension is case-insensitive",
			raw:  "anything at all",
			hint: "TALK.VTT",
			want: true,
		},
		{
			name: "vtt extension with path",
			raw:  "anything at all",
			hint: "/data/in/talk.vtt",
			want: true,
		},
		{
			name: "webvtt magic",
			raw:  "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nHi\n",
			want: true,
		},
		{
			name: "webvtt magic is case-sensitive",
			raw:  "webvtt\n\n00:00:00.000 --> 00:00:01.000\nHi\n",
			want: false,
		},
		{
			name: "embedded bracketed timestamp",
			raw:  "some log\n[00:00:46.360 --> 00:01:03.940] He picked up\n",
			want: true,
		},
		{
			name: "plain prose",
			raw:  "Just some notes.\nNothing timed here.\n",
			hint: "notes.txt",
			want: false,
		},
		{
			name: "unbracketed timestamps alone do not trigger",
			raw:  "00:00:01 BA\n00:00:02 BANA\n",
			hint: "session.log",
			want: false,
		},
		{
			name: "empty input",
			raw:  "",
			want: false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := transcript.Detect(tc.raw, tc.hint); got != tc.want {
				t.Errorf("Detect(%q, %q) = %v, want %v", tc.raw, tc.hint, got, tc.want)
			}
		})
	}
}

func TestFormatIsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []transcript.Format{transcript.FormatAuto, transcript.FormatCue, transcript.FormatPlain} {
		if !f.IsValid() {
			t.Errorf("Format(%q).IsValid() = false, want true", f)
		}
	}
	for _, f := range []transcript.Format{"", "vtt", "AUTO"} {
		if f.IsValid() {
			t.Errorf("Format(%q).IsValid() = true, want false", f)
		}
	}
}
