package similarity

// Ratio computes the Ratcliff/Obershelp similarity of a and b over runes.
//
// It finds the longest block of runes common to both strings, then applies
// itself recursively to the unmatched ranges on either side of that block.
// The result is 2*M/T, where M is the total number of matched runes across
// all blocks and T is the combined length of both strings. Two empty strings
// compare as identical (ratio 1).
//
// Tie-breaking between equal-length longest blocks is fixed: the block
// starting earliest in a wins, and among those, the block starting earliest
// in b. Changing this choice changes which side ranges the recursion sees,
// and therefore the final ratio, so it must stay stable.
//
// Each longest-block search costs O(len(a)·len(b)). The recursion only
// revisits disjoint subranges, keeping total work near O(len(a)·len(b)) for
// typical inputs; inputs that decompose into many short blocks degrade
// toward O(len(a)·len(b)·min(len(a), len(b))).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	m := newBlockMatcher(ra, rb)
	return 2 * float64(m.matchedRunes(0, len(ra), 0, len(rb))) / float64(total)
}

// blockMatcher carries the rune slices and the index of every rune's
// positions in b, built once per [Ratio] call and shared by the recursion.
type blockMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newBlockMatcher(a, b []rune) *blockMatcher {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	return &blockMatcher{a: a, b: b, b2j: b2j}
}

// matchedRunes returns the total length of all common blocks found in
// a[alo:ahi] vs b[blo:bhi].
func (m *blockMatcher) matchedRunes(alo, ahi, blo, bhi int) int {
	i, j, k := m.longestMatch(alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k + m.matchedRunes(alo, i, blo, j) + m.matchedRunes(i+k, ahi, j+k, bhi)
}

// longestMatch finds the longest block common to a[alo:ahi] and b[blo:bhi].
// It walks a once, extending run lengths ending at each position of b via
// the j2len table from the previous row. The strict > comparison realises
// the documented tie-break: positions are visited in ascending i, then
// ascending j, so the first block of maximal length wins.
func (m *blockMatcher) longestMatch(alo, ahi, blo, bhi int) (besti, bestj, size int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			// Positions are stored ascending, so everything past bhi can go.
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > size {
				besti, bestj, size = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, size
}
