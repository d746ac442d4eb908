package harmonics

import (
	"math"
	"sort"
)

// ConsistentGroups filters extraction results obtained from several spectral
// resolutions of the same recording, keeping only fundamentals present in
// every list within tol Hz. The returned groups are those of the first list
// with fundamentals averaged across the matching entries, ranked by score.
// With fewer than two lists the first list is returned unchanged.
func ConsistentGroups(lists [][]Group, tol float64) []Group {
	if len(lists) == 0 {
		return nil
	}
	if len(lists) == 1 {
		return lists[0]
	}

	var kept []Group
	for _, g := range lists[0] {
		sum := g.Fundamental
		count := 1
		consistent := true
		for _, other := range lists[1:] {
			m, ok := matchFundamental(other, g.Fundamental, tol)
			if !ok {
				consistent = false
				break
			}
			sum += m
			count++
		}
		if consistent {
			g.Fundamental = sum / float64(count)
			kept = append(kept, g)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	return kept
}

func matchFundamental(groups []Group, freq, tol float64) (float64, bool) {
	best := 0.0
	bestDist := tol
	found := false
	for _, g := range groups {
		if d := math.Abs(g.Fundamental - freq); d <= bestDist {
			best = g.Fundamental
			bestDist = d
			found = true
		}
	}
	return best, found
}
