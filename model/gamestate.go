package model

import (
	"errors"
	"fmt"
	"sort"
)

// TurnFrame is the subset of a turn-start frame used to rebuild the board.
// Unit lists are indexed by UnitKind; each entry is [x, y, health, id].
type TurnFrame struct {
	TurnInfo []int     `json:"turnInfo"`
	P1Stats  []float64 `json:"p1Stats"`
	P2Stats  []float64 `json:"p2Stats"`
	P1Units  [][][]any `json:"p1Units"`
	P2Units  [][][]any `json:"p2Units"`
}

// Order is one queued build, upgrade or deploy instruction.
type Order struct {
	Shorthand string
	Cell      Cell
}

var (
	ErrMalformedFrame = errors.New("malformed turn frame")
	ErrTurnFinalized  = errors.New("turn already finalized")
)

// GameState is the board as seen at the start of one turn plus the spends
// queued during it. It applies the game's placement rules locally so callers
// get an immediate answer and an up-to-date resource estimate.
type GameState struct {
	Turn       int
	table      *UnitTable
	resources  [2]float64
	structures map[Cell]Structure
	build      []Order
	deploy     []Order
	finalized  bool
}

// NewGameState rebuilds the board from a turn frame. The local player is
// always p1; the engine mirrors coordinates for the second seat.
func NewGameState(table *UnitTable, frame TurnFrame) (*GameState, error) {
	if table == nil {
		return nil, errors.New("model.NewGameState: unit table must not be nil")
	}
	if len(frame.TurnInfo) < 2 {
		return nil, fmt.Errorf("%w: turnInfo has %d fields", ErrMalformedFrame, len(frame.TurnInfo))
	}
	if len(frame.P1Stats) < 3 {
		return nil, fmt.Errorf("%w: p1Stats has %d fields", ErrMalformedFrame, len(frame.P1Stats))
	}

	g := &GameState{
		Turn:       frame.TurnInfo[1],
		table:      table,
		structures: make(map[Cell]Structure),
	}
	g.resources[SP] = frame.P1Stats[1]
	g.resources[MP] = frame.P1Stats[2]

	if err := g.loadUnits(frame.P1Units, OwnerSelf); err != nil {
		return nil, fmt.Errorf("p1Units: %w", err)
	}
	if err := g.loadUnits(frame.P2Units, OwnerOpponent); err != nil {
		return nil, fmt.Errorf("p2Units: %w", err)
	}
	return g, nil
}

func (g *GameState) loadUnits(lists [][][]any, owner Owner) error {
	for kind, list := range lists {
		k := UnitKind(kind)
		if !k.Stationary() && k != UpgradeMarker {
			continue
		}
		for _, entry := range list {
			c, health, err := decodeUnitEntry(entry)
			if err != nil {
				return fmt.Errorf("%s entry: %w", k, err)
			}
			if k == UpgradeMarker {
				if s, ok := g.structures[c]; ok {
					s.Upgraded = true
					g.structures[c] = s
				}
				continue
			}
			g.structures[c] = Structure{Kind: k, Cell: c, Owner: owner, Health: health}
		}
	}
	return nil
}

func decodeUnitEntry(entry []any) (Cell, float64, error) {
	if len(entry) < 2 {
		return Cell{}, 0, fmt.Errorf("%w: unit entry has %d fields", ErrMalformedFrame, len(entry))
	}
	x, okX := entry[0].(float64)
	y, okY := entry[1].(float64)
	if !okX || !okY {
		return Cell{}, 0, fmt.Errorf("%w: non-numeric position %v", ErrMalformedFrame, entry[:2])
	}
	var health float64
	if len(entry) > 2 {
		h, ok := entry[2].(float64)
		if !ok {
			return Cell{}, 0, fmt.Errorf("%w: non-numeric health %v", ErrMalformedFrame, entry[2])
		}
		health = h
	}
	return Cell{X: int(x), Y: int(y)}, health, nil
}

// AddStructure places s on the board without charging for it. Used to
// seed states in tests and replays.
func (g *GameState) AddStructure(s Structure) {
	g.structures[s.Cell] = s
}

// SetResource overrides a balance. Used to seed states in tests and replays.
func (g *GameState) SetResource(r Resource, v float64) {
	g.resources[r] = v
}

// NewEmptyGameState returns a board with no units, for tests and tools.
func NewEmptyGameState(table *UnitTable, turn int, sp, mp float64) *GameState {
	g := &GameState{Turn: turn, table: table, structures: make(map[Cell]Structure)}
	g.resources[SP] = sp
	g.resources[MP] = mp
	return g
}

func (g *GameState) TurnNumber() int { return g.Turn }

func (g *GameState) Occupied(c Cell) bool {
	_, ok := g.structures[c]
	return ok
}

func (g *GameState) StructureAt(c Cell) (Structure, bool) {
	s, ok := g.structures[c]
	return s, ok
}

func (g *GameState) Resource(r Resource) float64 { return g.resources[r] }

func (g *GameState) affordable(cost [2]float64) bool {
	return cost[SP] <= g.resources[SP] && cost[MP] <= g.resources[MP]
}

func (g *GameState) pay(cost [2]float64) {
	g.resources[SP] -= cost[SP]
	g.resources[MP] -= cost[MP]
}

// CanSpawn applies the placement rules: affordable, inside the arena, on our
// half, not on a structure, and for mobile units on one of our two edges.
func (g *GameState) CanSpawn(kind UnitKind, c Cell) bool {
	if g.finalized || !(kind.Stationary() || kind.Mobile()) {
		return false
	}
	if !g.affordable(g.table.Cost(kind)) {
		return false
	}
	if !InArena(c) || c.Y >= HalfArena || g.Occupied(c) {
		return false
	}
	if kind.Mobile() && !OnEdge(c, BottomLeft) && !OnEdge(c, BottomRight) {
		return false
	}
	return true
}

// Spawn places up to count units of kind at c and returns how many were
// placed. Asking for more than is affordable saturates; illegal requests
// place nothing.
func (g *GameState) Spawn(kind UnitKind, c Cell, count int) int {
	placed := 0
	for placed < count && g.CanSpawn(kind, c) {
		g.pay(g.table.Cost(kind))
		o := Order{Shorthand: g.table.Shorthand(kind), Cell: c}
		if kind.Stationary() {
			g.structures[c] = Structure{Kind: kind, Cell: c, Owner: OwnerSelf}
			g.build = append(g.build, o)
		} else {
			g.deploy = append(g.deploy, o)
		}
		placed++
	}
	return placed
}

// Upgrade upgrades our structure at c if it is not upgraded yet and the
// upgrade is affordable.
func (g *GameState) Upgrade(c Cell) bool {
	if g.finalized {
		return false
	}
	s, ok := g.structures[c]
	if !ok || s.Owner != OwnerSelf || s.Upgraded {
		return false
	}
	cost := g.table.UpgradeCost(s.Kind)
	if !g.affordable(cost) {
		return false
	}
	g.pay(cost)
	s.Upgraded = true
	g.structures[c] = s
	g.build = append(g.build, Order{Shorthand: g.table.Shorthand(UpgradeMarker), Cell: c})
	return true
}

// RouteToEdge returns the route from c to the opposite edge, nil if none.
func (g *GameState) RouteToEdge(c Cell) []Cell {
	return RouteToEdge(c, g.Occupied)
}

// Attackers returns the enemy structures able to hit c. Only the positions at
// the start of the turn are known, so every time step sees the same board.
func (g *GameState) Attackers(c Cell, _ int) []Structure {
	var out []Structure
	for _, s := range g.structures {
		if s.Owner != OwnerOpponent {
			continue
		}
		if g.table.WalkerDamage(s.Kind, s.Upgraded) <= 0 {
			continue
		}
		if s.Cell.Distance(c) <= g.table.Range(s.Kind, s.Upgraded) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}

// Finalize closes the turn; later spends are rejected.
func (g *GameState) Finalize() error {
	if g.finalized {
		return ErrTurnFinalized
	}
	g.finalized = true
	return nil
}

// Orders returns the queued build/upgrade orders and deploy orders.
func (g *GameState) Orders() (build, deploy []Order) {
	return g.build, g.deploy
}
