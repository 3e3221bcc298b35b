package hints

import (
	"strings"

	"github.com/robalobadob/spellingbee/internal/solver"
)

const mask = "•"

// Totals is exposed from TotalCount onwards.
type Totals struct {
	Words        int `json:"words"`
	Points       int `json:"points"`
	PangramCount int `json:"pangrams"`
}

// Word is one entry in a length group. Word is empty until AllWords;
// Display is always safe to show.
type Word struct {
	Display   string `json:"display"`
	Word      string `json:"word,omitempty"`
	IsPangram bool   `json:"isPangram"`
}

// LengthGroup is exposed from LengthCounts onwards.
type LengthGroup struct {
	Length int    `json:"length"`
	Count  int    `json:"count"`
	Words  []Word `json:"words"`
}

// View is what a consumer may observe at a given tier.
type View struct {
	Tier          string        `json:"tier"`
	State         State         `json:"state"`
	CanRevealMore bool          `json:"canRevealMore"`
	CanHide       bool          `json:"canHide"`
	Totals        *Totals       `json:"totals,omitempty"`
	Groups        []LengthGroup `json:"groups,omitempty"`
}

// Project gates rs by t.
func Project(t Tier, rs []solver.Result) View {
	st := t.State()
	v := View{
		Tier:          t.String(),
		State:         st,
		CanRevealMore: !st.ShowAllWords,
		CanHide:       st.ShowTotalCount,
	}
	if !st.ShowTotalCount {
		return v
	}
	v.Totals = &Totals{
		Words:        len(rs),
		Points:       solver.TotalPoints(rs),
		PangramCount: solver.PangramCount(rs),
	}
	if !st.ShowLengthCounts {
		return v
	}

	g := solver.Group(rs)
	for _, n := range g.Lengths() {
		group := LengthGroup{Length: n, Count: len(g[n]), Words: make([]Word, 0, len(g[n]))}
		for _, r := range g[n] {
			group.Words = append(group.Words, project(st, r))
		}
		v.Groups = append(v.Groups, group)
	}
	return v
}

func project(st State, r solver.Result) Word {
	w := Word{IsPangram: r.IsPangram}
	switch {
	case st.ShowAllWords:
		w.Word = r.Word
		w.Display = r.Word
	case st.ShowFirstLetters:
		w.Display = strings.ToUpper(r.Word[:1]) + strings.Repeat(mask, r.Length-1)
	default:
		w.Display = strings.Repeat(mask, r.Length)
	}
	return w
}
