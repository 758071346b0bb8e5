package strategy

import (
	"math"

	"github.com/nstehr/rampart/model"
)

// Evaluator estimates how much damage a mobile unit takes walking from a
// launch cell to the far edge.
//
// The estimate is static: every route cell is charged Damage once per enemy
// structure that can fire on it at time step zero. Travel time, focus fire
// and shields are ignored.
type Evaluator struct {
	Damage float64 // single-shot damage of one reference turret
}

// Scores returns one score per candidate, aligned with the input.
// Candidates without a route score +Inf.
func (e Evaluator) Scores(g Grid, candidates []model.Cell) []float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		route := g.RouteToEdge(c)
		if route == nil {
			scores[i] = math.Inf(1)
			continue
		}
		var damage float64
		for _, step := range route {
			damage += float64(len(g.Attackers(step, 0))) * e.Damage
		}
		scores[i] = damage
	}
	return scores
}

// Safest returns the candidate with the lowest score, the first one on ties.
// ok is false when the list is empty or no candidate has a route.
func (e Evaluator) Safest(g Grid, candidates []model.Cell) (cell model.Cell, ok bool) {
	best := -1
	scores := e.Scores(g, candidates)
	for i, s := range scores {
		if math.IsInf(s, 1) {
			continue
		}
		if best < 0 || s < scores[best] {
			best = i
		}
	}
	if best < 0 {
		return model.Cell{}, false
	}
	return candidates[best], true
}
