package strategy

import (
	"fmt"
	"log/slog"
)

// Engine runs the planners once per turn in a fixed order: static defense,
// reactive defense, offense, then finalize. Reactive defense reads the board
// static defense just changed; offense goes last so a turn's output is
// deterministic even though MP and SP are separate pools.
//
// The engine owns the breach history for the whole match.
type Engine struct {
	History *History

	recorder *Recorder
	static   *StaticDefense
	reactive *ReactiveDefense
	offense  *Offense
}

// TurnReport collects the per-planner reports of one turn.
type TurnReport struct {
	Turn     int
	Static   StaticReport
	Reactive ReactiveReport
	Offense  OffenseReport
}

// NewEngine validates tuning and compiles its gates. Gate compile errors are
// returned here so a bad config fails before the first turn.
func NewEngine(layout *Layout, tuning Tuning) (*Engine, error) {
	if layout == nil {
		return nil, fmt.Errorf("strategy.NewEngine: layout must not be nil")
	}
	tuning.Validate()

	unit, err := tuning.primaryUnit()
	if err != nil {
		return nil, err
	}
	expansion, err := CompileGate("expansion", tuning.ExpansionGate)
	if err != nil {
		return nil, err
	}
	cadence, err := CompileGate("offense", tuning.OffenseGate)
	if err != nil {
		return nil, err
	}

	history := NewHistory()
	e := &Engine{
		History:  history,
		recorder: NewRecorder(history),
		static:   NewStaticDefense(layout, tuning.Costs),
		reactive: NewReactiveDefense(layout, tuning, history, expansion),
		offense: NewOffense(layout, Evaluator{Damage: tuning.Damage}, unit,
			tuning.SaturateCount, tuning.OffenseEvery, cadence),
	}
	slog.Info("strategy engine ready",
		"unit", unit.String(),
		"expansionGate", expansion.Src,
		"offenseGate", cadence.Src,
		"turrets", len(layout.Turrets),
		"launchFan", len(layout.LaunchFan),
	)
	return e, nil
}

// SetReferenceDamage replaces the evaluator's per-shot damage, normally with
// the turret damage from the game config. Non-positive values are ignored.
func (e *Engine) SetReferenceDamage(d float64) {
	if d <= 0 {
		return
	}
	e.offense.evaluator.Damage = d
}

// ReferenceDamage is the per-shot damage the evaluator charges.
func (e *Engine) ReferenceDamage() float64 { return e.offense.evaluator.Damage }

// Record feeds one action frame's breaches into the history.
func (e *Engine) Record(report BreachReport) int {
	return e.recorder.Record(report)
}

// PlayTurn plans one turn and finalizes it.
func (e *Engine) PlayTurn(t Turn) (TurnReport, error) {
	turn := t.TurnNumber()
	rep := TurnReport{Turn: turn}

	rep.Static = e.static.Plan(t, turn)
	rep.Reactive = e.reactive.Plan(t, turn)
	rep.Offense = e.offense.Plan(t, turn)

	if err := t.Finalize(); err != nil {
		return rep, fmt.Errorf("finalize turn %d: %w", turn, err)
	}

	slog.Info("turn planned",
		"turn", turn,
		"staticBuilt", len(rep.Static.Turrets)+len(rep.Static.Supports),
		"reactiveBuilt", len(rep.Reactive.Turrets)+len(rep.Reactive.Supports)+len(rep.Reactive.Rebuilt),
		"expanded", rep.Reactive.Expanded,
		"launch", rep.Offense.Launch.String(),
		"deployed", rep.Offense.Deployed,
		"breaches", e.History.Len(),
	)
	return rep, nil
}
