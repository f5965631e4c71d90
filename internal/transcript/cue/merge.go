package cue

import "strings"

// Caption is one merged caption: the earliest timestamp of a candidate group
// and the group's most complete text.
type Caption struct {
	Start string
	Text  string
}

// Merge collapses one block's ordered candidates into captions.
//
// Candidates connected by the prefix relation form a group: the group keeps
// growing while each candidate's text is a literal, case-sensitive prefix of
// the next candidate's text. A group collapses to one caption carrying the
// first candidate's timestamp and the last candidate's text. A candidate
// that breaks the prefix relation starts a new group — never an error — so a
// block whose stream restarts mid-way yields several captions.
//
// Only the first and last member of a group matter for its caption, so Merge
// tracks those two instead of buffering whole groups.
func Merge(candidates []Candidate) []Caption {
	if len(candidates) == 0 {
		return nil
	}

	var captions []Caption
	first, last := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		if strings.HasPrefix(c.Text, last.Text) {
			last = c
			continue
		}
		captions = append(captions, Caption{Start: first.Start, Text: last.Text})
		first, last = c, c
	}
	return append(captions, Caption{Start: first.Start, Text: last.Text})
}
