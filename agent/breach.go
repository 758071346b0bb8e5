package agent

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
)

// ErrBadBreach marks a breach entry that cannot be decoded.
var ErrBadBreach = errors.New("bad breach event")

// actionFrame is the part of an action frame the recorder needs.
type actionFrame struct {
	TurnInfo []int `json:"turnInfo"`
	Events   struct {
		Breach []json.RawMessage `json:"breach"`
	} `json:"events"`
}

// DecodeBreaches strictly decodes the breach feed of an action frame. Each
// entry is [[x, y], damage, unitType, unitID, owner]; owner 1 is us and 2
// the opponent. Any missing or ill-typed field fails the whole frame.
func DecodeBreaches(data []byte) (strategy.BreachReport, error) {
	var f actionFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return strategy.BreachReport{}, fmt.Errorf("unmarshal action frame: %w", err)
	}
	if len(f.TurnInfo) < 2 {
		return strategy.BreachReport{}, fmt.Errorf("%w: turnInfo has %d fields", ErrBadBreach, len(f.TurnInfo))
	}

	report := strategy.BreachReport{Turn: f.TurnInfo[1]}
	for i, raw := range f.Events.Breach {
		ev, err := decodeBreach(raw)
		if err != nil {
			return strategy.BreachReport{}, fmt.Errorf("breach %d: %w", i, err)
		}
		report.Events = append(report.Events, ev)
	}
	return report, nil
}

func decodeBreach(raw json.RawMessage) (strategy.BreachEvent, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return strategy.BreachEvent{}, fmt.Errorf("%w: %v", ErrBadBreach, err)
	}
	if len(fields) < 5 {
		return strategy.BreachEvent{}, fmt.Errorf("%w: %d fields, want 5", ErrBadBreach, len(fields))
	}

	var xy []int
	if err := json.Unmarshal(fields[0], &xy); err != nil || len(xy) != 2 {
		return strategy.BreachEvent{}, fmt.Errorf("%w: impact %s", ErrBadBreach, fields[0])
	}
	var owner int
	if err := json.Unmarshal(fields[4], &owner); err != nil {
		return strategy.BreachEvent{}, fmt.Errorf("%w: owner %s", ErrBadBreach, fields[4])
	}

	ev := strategy.BreachEvent{Impact: model.Cell{X: xy[0], Y: xy[1]}}
	switch owner {
	case 1:
		ev.Owner = model.OwnerSelf
	case 2:
		ev.Owner = model.OwnerOpponent
	default:
		return strategy.BreachEvent{}, fmt.Errorf("%w: owner %d", ErrBadBreach, owner)
	}
	return ev, nil
}
