// Package strategy decides what to build, upgrade and deploy each turn.
//
// Planners only see the board through Grid, so tests drive them with a
// deterministic fake and the agent drives them with model.GameState.
package strategy

import "github.com/nstehr/rampart/model"

// Grid is the board and wallet as the planners see them. Spawn and Upgrade
// apply the game's legality and cost checks and silently no-op when a
// request is illegal.
type Grid interface {
	Occupied(c model.Cell) bool
	StructureAt(c model.Cell) (model.Structure, bool)
	Resource(r model.Resource) float64
	Spawn(kind model.UnitKind, c model.Cell, count int) int
	Upgrade(c model.Cell) bool
	RouteToEdge(c model.Cell) []model.Cell
	Attackers(c model.Cell, timeStep int) []model.Structure
}

// Turn is a Grid bound to one turn, which the engine closes once planning
// is done.
type Turn interface {
	Grid
	TurnNumber() int
	Finalize() error
}

// Budget is one planner's running estimate of a resource. It is read fresh
// from the grid when the planner starts and only ever decreases.
type Budget struct {
	remaining float64
}

func NewBudget(g Grid, r model.Resource) *Budget {
	return &Budget{remaining: g.Resource(r)}
}

func (b *Budget) Remaining() float64 { return b.remaining }

// Covers reports whether cost fits in the estimate.
func (b *Budget) Covers(cost float64) bool { return b.remaining >= cost }

// Try runs attempt only if cost fits, and charges cost only if attempt
// reports success.
func (b *Budget) Try(cost float64, attempt func() bool) bool {
	if !b.Covers(cost) {
		return false
	}
	if !attempt() {
		return false
	}
	b.remaining -= cost
	return true
}
