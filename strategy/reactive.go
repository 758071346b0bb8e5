package strategy

import (
	"log/slog"

	"github.com/nstehr/rampart/model"
)

// ReactiveDefense spends what SP is left after the static layout on the
// cells where the opponent has broken through. Spending is strictly ordered:
// patch breach cells, harden them, and only then expand.
type ReactiveDefense struct {
	layout  *Layout
	costs   Costs
	tuning  Tuning
	history *History
	gate    *Gate
}

func NewReactiveDefense(layout *Layout, tuning Tuning, history *History, gate *Gate) *ReactiveDefense {
	return &ReactiveDefense{
		layout:  layout,
		costs:   tuning.Costs,
		tuning:  tuning,
		history: history,
		gate:    gate,
	}
}

// ReactiveReport records the cells each stage changed.
type ReactiveReport struct {
	Turrets           []model.Cell // stage 1
	Supports          []model.Cell // stage 2
	Rebuilt           []model.Cell // stage 3
	UpgradedTurrets   []model.Cell // stage 4
	UpgradedSupports  []model.Cell // stage 5
	Reupgraded        []model.Cell // stage 6
	Expanded          bool         // stage 7 gate opened
	ExpansionTurrets  []model.Cell
	ExpansionSupports []model.Cell
	ExpansionUpgrades []model.Cell
	BudgetLeft        float64
}

// Plan runs the seven stages once against a fresh SP estimate. Each stage
// stops as soon as the estimate cannot cover its price.
func (r *ReactiveDefense) Plan(g Grid, turn int) ReactiveReport {
	var rep ReactiveReport
	budget := NewBudget(g, model.SP)
	c := r.costs
	breaches := r.history.Snapshot()

	spawn := func(kind model.UnitKind, cell model.Cell) func() bool {
		return func() bool { return g.Spawn(kind, cell, 1) > 0 }
	}
	upgrade := func(cell model.Cell) func() bool {
		return func() bool { return g.Upgrade(cell) }
	}

	// 1. Turrets on breach cells, oldest first.
	for _, cell := range breaches {
		if !budget.Covers(c.Turret) {
			break
		}
		if g.Occupied(cell) {
			continue
		}
		if budget.Try(c.Turret, spawn(model.Turret, cell)) {
			rep.Turrets = append(rep.Turrets, cell)
		}
	}

	// 2. Supports on new turret cells that no longer hold anything.
	for _, cell := range rep.Turrets {
		if !budget.Covers(c.Support) {
			break
		}
		if g.Occupied(cell) {
			continue
		}
		if budget.Try(c.Support, spawn(model.Support, cell)) {
			rep.Supports = append(rep.Supports, cell)
		}
	}

	// 3. Rebuild turrets lost within this pass.
	for _, cell := range rep.Turrets {
		if !budget.Covers(c.Turret) {
			break
		}
		if g.Occupied(cell) {
			continue
		}
		if budget.Try(c.Turret, spawn(model.Turret, cell)) {
			rep.Rebuilt = append(rep.Rebuilt, cell)
		}
	}

	// 4. Upgrade new turret cells.
	for _, cell := range rep.Turrets {
		if !budget.Covers(c.TurretUpgrade) {
			break
		}
		if !g.Occupied(cell) {
			continue
		}
		if budget.Try(c.TurretUpgrade, upgrade(cell)) {
			rep.UpgradedTurrets = append(rep.UpgradedTurrets, cell)
		}
	}

	// 5. Upgrade new support cells.
	for _, cell := range rep.Supports {
		if !budget.Covers(c.SupportUpgrade) {
			break
		}
		if !g.Occupied(cell) {
			continue
		}
		if budget.Try(c.SupportUpgrade, upgrade(cell)) {
			rep.UpgradedSupports = append(rep.UpgradedSupports, cell)
		}
	}

	// 6. Second sweep over both sets, priced by occupant. Catches cells whose
	// occupant only appeared in stage 3, after stages 4 and 5 had looked.
	touched := make([]model.Cell, 0, len(rep.Turrets)+len(rep.Supports))
	touched = append(touched, rep.Turrets...)
	touched = append(touched, rep.Supports...)
	cheapest := min(c.TurretUpgrade, c.SupportUpgrade)
	for _, cell := range touched {
		if !budget.Covers(cheapest) {
			break
		}
		s, ok := g.StructureAt(cell)
		if !ok {
			continue
		}
		price := c.SupportUpgrade
		if s.Kind == model.Turret {
			price = c.TurretUpgrade
		}
		if budget.Try(price, upgrade(cell)) {
			rep.Reupgraded = append(rep.Reupgraded, cell)
		}
	}

	// 7. Expansion, once everything touched above is upgraded.
	env := GateEnv{
		Turn:        turn,
		Budget:      budget.Remaining(),
		Threshold:   r.tuning.ExpansionThreshold,
		AllUpgraded: allUpgraded(g, touched),
		Breaches:    len(breaches),
		Every:       r.tuning.OffenseEvery,
	}
	if r.gate.Open(env) {
		rep.Expanded = true
		for _, cell := range r.layout.ExpansionTurrets {
			if !budget.Covers(c.Turret) {
				break
			}
			if g.Occupied(cell) {
				continue
			}
			if budget.Try(c.Turret, spawn(model.Turret, cell)) {
				rep.ExpansionTurrets = append(rep.ExpansionTurrets, cell)
			}
		}
		for _, cell := range r.layout.ExpansionSupports {
			if !budget.Covers(c.Support) {
				break
			}
			if !g.Occupied(cell) && budget.Try(c.Support, spawn(model.Support, cell)) {
				rep.ExpansionSupports = append(rep.ExpansionSupports, cell)
			}
			if g.Occupied(cell) && budget.Try(c.SupportUpgrade, upgrade(cell)) {
				rep.ExpansionUpgrades = append(rep.ExpansionUpgrades, cell)
			}
		}
	}

	rep.BudgetLeft = budget.Remaining()
	slog.Debug("reactive defense pass",
		"turn", turn,
		"breaches", len(breaches),
		"turrets", len(rep.Turrets),
		"supports", len(rep.Supports),
		"rebuilt", len(rep.Rebuilt),
		"upgraded", len(rep.UpgradedTurrets)+len(rep.UpgradedSupports)+len(rep.Reupgraded),
		"expanded", rep.Expanded,
		"budget", rep.BudgetLeft,
	)
	return rep
}

// allUpgraded is vacuously true for an empty set and skips cells whose
// structure has since been destroyed.
func allUpgraded(g Grid, cells []model.Cell) bool {
	for _, cell := range cells {
		if s, ok := g.StructureAt(cell); ok && !s.Upgraded {
			return false
		}
	}
	return true
}
