package solver

import "sort"

// Grouped partitions results by word length. Within a length, results keep
// the order Solve produced.
type Grouped map[int][]Result

// Lengths returns the group keys in ascending order.
func (g Grouped) Lengths() []int {
	keys := make([]int, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Group builds the length partition of rs.
func Group(rs []Result) Grouped {
	g := make(Grouped)
	for _, r := range rs {
		g[r.Length] = append(g[r.Length], r)
	}
	return g
}

// TotalPoints sums the points of rs.
func TotalPoints(rs []Result) int {
	total := 0
	for _, r := range rs {
		total += r.Points
	}
	return total
}

// PangramCount counts pangrams in rs.
func PangramCount(rs []Result) int {
	n := 0
	for _, r := range rs {
		if r.IsPangram {
			n++
		}
	}
	return n
}

// Summary bundles the derived aggregates of one solve.
type Summary struct {
	Results      []Result `json:"results"`
	Grouped      Grouped  `json:"grouped"`
	TotalPoints  int      `json:"totalPoints"`
	PangramCount int      `json:"pangramCount"`
}

// Summarize computes every aggregate of rs at once.
func Summarize(rs []Result) Summary {
	return Summary{
		Results:      rs,
		Grouped:      Group(rs),
		TotalPoints:  TotalPoints(rs),
		PangramCount: PangramCount(rs),
	}
}
