package strategy

import (
	"log/slog"

	"github.com/nstehr/rampart/model"
)

// Offense sends one saturating wave of the primary unit per turn from the
// launch cell the evaluator rates safest.
type Offense struct {
	layout    *Layout
	evaluator Evaluator
	unit      model.UnitKind
	count     int
	every     int
	gate      *Gate
}

func NewOffense(layout *Layout, evaluator Evaluator, unit model.UnitKind, count, every int, gate *Gate) *Offense {
	return &Offense{
		layout:    layout,
		evaluator: evaluator,
		unit:      unit,
		count:     count,
		every:     every,
		gate:      gate,
	}
}

// OffenseReport describes the wave sent this turn.
type OffenseReport struct {
	Skipped  bool // gate closed, nothing deployed
	Launch   model.Cell
	Safe     bool // Launch came from the evaluator, not the fallback
	Deployed int
}

// Plan deploys the wave. The first turn only considers the opening cells;
// later turns fan out across the whole front. When no candidate has a route
// the wave goes out from the fallback cell.
func (o *Offense) Plan(g Grid, turn int) OffenseReport {
	candidates := o.layout.LaunchFan
	if turn == 0 {
		candidates = o.layout.OpeningLaunch
	} else if !o.gate.Open(GateEnv{Turn: turn, Every: o.every, Budget: g.Resource(model.MP)}) {
		slog.Debug("offense gate closed", "turn", turn)
		return OffenseReport{Skipped: true}
	}

	rep := OffenseReport{Launch: o.layout.Fallback}
	if c, ok := o.evaluator.Safest(g, candidates); ok {
		rep.Launch = c
		rep.Safe = true
	} else {
		slog.Info("no safe launch cell, using fallback", "turn", turn, "cell", o.layout.Fallback.String())
	}

	rep.Deployed = g.Spawn(o.unit, rep.Launch, o.count)
	slog.Debug("offense pass",
		"turn", turn,
		"unit", o.unit.String(),
		"launch", rep.Launch.String(),
		"safe", rep.Safe,
		"deployed", rep.Deployed,
	)
	return rep
}
