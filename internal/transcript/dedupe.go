package transcript

import (
	"strings"

	"github.com/MrWong99/cuescrub/internal/transcript/similarity"
)

// DedupeLines drops lines that read as re-renderings of the line kept just
// before them, the residue of incremental re-transcription. The first line
// is always kept; every further line is scored against the most recently
// kept one on its whitespace-trimmed rendered form and dropped once the
// score reaches threshold. A line containing the turn marker is never
// dropped. Dropped lines do not become the comparison baseline. A nil score
// selects [similarity.Ratio].
func DedupeLines(lines []Line, score similarity.Func, threshold float64, marker string) []Line {
	if score == nil {
		score = similarity.Ratio
	}

	var kept []Line
	var prev string // trimmed rendering of the most recently kept line
	for _, line := range lines {
		rendered := strings.TrimSpace(line.Render())
		keep := len(kept) == 0 ||
			(marker != "" && strings.Contains(rendered, marker)) ||
			score(prev, rendered) < threshold
		if !keep {
			continue
		}
		kept = append(kept, line)
		prev = rendered
	}
	return kept
}
