package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/rampart/ipc"
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
)

// ErrNoConfig is returned for a turn frame that arrives before the config.
var ErrNoConfig = errors.New("turn frame before config")

// Agent owns the decision-making for a single match.
type Agent struct {
	MatchID uuid.UUID
	Engine  *strategy.Engine

	table *model.UnitTable
	log   *slog.Logger
}

func New(engine *strategy.Engine) *Agent {
	id := uuid.New()
	return &Agent{
		MatchID: id,
		Engine:  engine,
		log:     slog.With("match", id.String()),
	}
}

// Register wires the agent's handlers into conn.
func (a *Agent) Register(conn *ipc.Connection) {
	conn.RegisterHandler(ipc.KindConfig, a.HandleConfig)
	conn.RegisterHandler(ipc.KindTurn, a.HandleTurn)
	conn.RegisterHandler(ipc.KindAction, a.HandleAction)
}

// HandleConfig loads the unit table. The engine expects no reply.
func (a *Agent) HandleConfig(f ipc.Frame) (*ipc.TurnCommands, error) {
	table, err := model.ParseUnitTable(f.Data)
	if err != nil {
		return nil, err
	}
	a.table = table
	a.Engine.SetReferenceDamage(table.WalkerDamage(model.Turret, false))

	a.log.Info("match configured",
		"turret", table.Shorthand(model.Turret),
		"turretCost", table.Cost(model.Turret)[model.SP],
		"turretUpgrade", table.UpgradeCost(model.Turret)[model.SP],
		"scoutCost", table.Cost(model.Scout)[model.MP],
		"referenceDamage", a.Engine.ReferenceDamage(),
	)
	return nil, nil
}

// HandleTurn plans one turn and returns the build and deploy stacks.
func (a *Agent) HandleTurn(f ipc.Frame) (*ipc.TurnCommands, error) {
	if a.table == nil {
		return nil, ErrNoConfig
	}

	var frame model.TurnFrame
	if err := json.Unmarshal(f.Data, &frame); err != nil {
		return nil, fmt.Errorf("unmarshal turn frame: %w", err)
	}
	gs, err := model.NewGameState(a.table, frame)
	if err != nil {
		return nil, err
	}

	a.log.Info("turn started",
		"turn", gs.Turn,
		"health", frame.P1Stats[0],
		"sp", gs.Resource(model.SP),
		"mp", gs.Resource(model.MP),
	)

	if _, err := a.Engine.PlayTurn(gs); err != nil {
		return nil, err
	}

	build, deploy := gs.Orders()
	return &ipc.TurnCommands{
		Build:  toPlacements(build),
		Deploy: toPlacements(deploy),
	}, nil
}

// HandleAction records the breaches of one action frame.
func (a *Agent) HandleAction(f ipc.Frame) (*ipc.TurnCommands, error) {
	report, err := DecodeBreaches(f.Data)
	if err != nil {
		return nil, err
	}
	if len(report.Events) > 0 {
		a.Engine.Record(report)
	}
	return nil, nil
}

func toPlacements(orders []model.Order) []ipc.Placement {
	out := make([]ipc.Placement, 0, len(orders))
	for _, o := range orders {
		out = append(out, ipc.Placement{Unit: o.Shorthand, X: o.Cell.X, Y: o.Cell.Y})
	}
	return out
}
