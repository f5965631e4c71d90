package transcript

// Report counts what one [Pipeline.Clean] call did to its document. It is
// plain data filled synchronously while the document is cleaned; aggregate
// reports over several documents with [Report.Add].
type Report struct {
	// BlocksSeen is the number of cue blocks examined. Zero on the
	// plain-text path.
	BlocksSeen int

	// BlocksSkipped counts examined blocks that produced no candidates.
	BlocksSkipped int

	// CandidatesKept counts candidates whose normalized text was non-empty.
	CandidatesKept int

	// CandidatesDropped counts candidates discarded because their text
	// normalized to nothing.
	CandidatesDropped int

	// CandidatesMerged counts kept candidates folded into an earlier
	// candidate's caption by prefix merging.
	CandidatesMerged int

	// LinesDeduplicated counts lines dropped as near-duplicates of the
	// previously kept line.
	LinesDeduplicated int

	// LinesCollapsed counts surviving lines changed by word-stutter
	// collapse.
	LinesCollapsed int
}

// Add accumulates o into r. Useful for batch totals across documents.
func (r *Report) Add(o Report) {
	r.BlocksSeen += o.BlocksSeen
	r.BlocksSkipped += o.BlocksSkipped
	r.CandidatesKept += o.CandidatesKept
	r.CandidatesDropped += o.CandidatesDropped
	r.CandidatesMerged += o.CandidatesMerged
	r.LinesDeduplicated += o.LinesDeduplicated
	r.LinesCollapsed += o.LinesCollapsed
}
