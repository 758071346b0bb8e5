package strategy

import (
	"log/slog"

	"github.com/nstehr/rampart/model"
)

// StaticDefense keeps the fixed turret line standing and upgrades it in
// priority order as SP allows. Supports are laid down on the first turn only.
type StaticDefense struct {
	layout *Layout
	costs  Costs
}

func NewStaticDefense(layout *Layout, costs Costs) *StaticDefense {
	return &StaticDefense{layout: layout, costs: costs}
}

// StaticReport lists what one pass actually changed.
type StaticReport struct {
	Turrets    []model.Cell
	Supports   []model.Cell
	Upgraded   []model.Cell
	BudgetLeft float64
}

// Plan runs one pass against a fresh SP estimate. Re-running it on an
// unchanged board spends nothing.
func (s *StaticDefense) Plan(g Grid, turn int) StaticReport {
	var rep StaticReport
	budget := NewBudget(g, model.SP)

	for _, c := range s.layout.Turrets {
		if g.Occupied(c) {
			continue
		}
		if budget.Try(s.costs.Turret, func() bool { return g.Spawn(model.Turret, c, 1) > 0 }) {
			rep.Turrets = append(rep.Turrets, c)
		}
	}

	if turn == 0 {
		for _, c := range s.layout.Supports {
			if !g.Occupied(c) && budget.Try(s.costs.Support, func() bool { return g.Spawn(model.Support, c, 1) > 0 }) {
				rep.Supports = append(rep.Supports, c)
			}
			if g.Occupied(c) && budget.Try(s.costs.SupportUpgrade, func() bool { return g.Upgrade(c) }) {
				rep.Upgraded = append(rep.Upgraded, c)
			}
		}
	}

	for _, c := range s.layout.UpgradePriority {
		if !budget.Covers(s.costs.TurretUpgrade) {
			break
		}
		if !g.Occupied(c) {
			continue
		}
		if budget.Try(s.costs.TurretUpgrade, func() bool { return g.Upgrade(c) }) {
			rep.Upgraded = append(rep.Upgraded, c)
		}
	}

	rep.BudgetLeft = budget.Remaining()
	slog.Debug("static defense pass",
		"turn", turn,
		"turrets", len(rep.Turrets),
		"supports", len(rep.Supports),
		"upgraded", len(rep.Upgraded),
		"budget", rep.BudgetLeft,
	)
	return rep
}
