package scorecard

import (
	"cmp"
	"slices"

	"github.com/padraicbc/scorecard/models"
)

// Ranked is one bar of a ranking chart.
type Ranked struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// RankByTops orders contestants by total_tops, highest first.
func RankByTops(snap Snapshot) []Ranked {
	return rank(snap, models.Contestant.Tops)
}

// RankByPenalty orders contestants by total_penalty, highest first.
func RankByPenalty(snap Snapshot) []Ranked {
	return rank(snap, models.Contestant.Penalty)
}

// Ties are broken by name so the chart order is stable between renders.
func rank(snap Snapshot, value func(models.Contestant) int64) []Ranked {
	out := make([]Ranked, len(snap))
	for i, c := range snap {
		out[i] = Ranked{Name: c.Name(), Value: value(c)}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
