package ipc

import "encoding/json"

// Placement is one entry of a build or deploy stack. The engine expects the
// compact array form [shorthand, x, y]; upgrades use the "UP" shorthand.
type Placement struct {
	Unit string
	X    int
	Y    int
}

func (p Placement) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Unit, p.X, p.Y})
}

// TurnCommands is the reply to a turn frame.
type TurnCommands struct {
	Build  []Placement
	Deploy []Placement
}
