package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// UnitStats is the subset of one unitInformation entry the bot needs.
type UnitStats struct {
	Shorthand    string
	Cost         [2]float64 // indexed by Resource
	Range        float64
	WalkerDamage float64
	Upgrade      UpgradeStats
}

// UpgradeStats holds the values an upgrade switches to. Fields absent from
// the config keep the base value.
type UpgradeStats struct {
	Cost         [2]float64
	Range        float64
	WalkerDamage float64
}

// UnitTable is the cost/stat table received once per match.
type UnitTable struct {
	Units [unitKindCount]UnitStats
}

type rawUnitInfo struct {
	Shorthand          string      `json:"shorthand"`
	Cost1              *float64    `json:"cost1"`
	Cost2              *float64    `json:"cost2"`
	AttackRange        *float64    `json:"attackRange"`
	AttackDamageWalker *float64    `json:"attackDamageWalker"`
	Upgrade            *rawUpgrade `json:"upgrade"`
}

type rawUpgrade struct {
	Cost1              *float64 `json:"cost1"`
	Cost2              *float64 `json:"cost2"`
	AttackRange        *float64 `json:"attackRange"`
	AttackDamageWalker *float64 `json:"attackDamageWalker"`
}

type rawConfig struct {
	UnitInformation []rawUnitInfo `json:"unitInformation"`
}

// ErrIncompleteConfig is returned when the config frame lacks unit entries.
var ErrIncompleteConfig = errors.New("incomplete unit config")

// ParseUnitTable decodes the game config frame. The first six entries
// (three structures, three mobile units) are required; remove/upgrade
// entries default to their usual shorthands.
func ParseUnitTable(data []byte) (*UnitTable, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(raw.UnitInformation) < int(Interceptor)+1 {
		return nil, fmt.Errorf("%w: %d unit entries", ErrIncompleteConfig, len(raw.UnitInformation))
	}

	t := &UnitTable{}
	for i := range t.Units {
		t.Units[i].Shorthand = defaultShorthands[i]
	}
	for i, ri := range raw.UnitInformation {
		if i >= unitKindCount {
			break
		}
		u := &t.Units[i]
		if ri.Shorthand != "" {
			u.Shorthand = ri.Shorthand
		}
		u.Cost[SP] = deref(ri.Cost1, 0)
		u.Cost[MP] = deref(ri.Cost2, 0)
		u.Range = deref(ri.AttackRange, 0)
		u.WalkerDamage = deref(ri.AttackDamageWalker, 0)

		u.Upgrade = UpgradeStats{Cost: u.Cost, Range: u.Range, WalkerDamage: u.WalkerDamage}
		if up := ri.Upgrade; up != nil {
			u.Upgrade.Cost[SP] = deref(up.Cost1, u.Cost[SP])
			u.Upgrade.Cost[MP] = deref(up.Cost2, u.Cost[MP])
			u.Upgrade.Range = deref(up.AttackRange, u.Range)
			u.Upgrade.WalkerDamage = deref(up.AttackDamageWalker, u.WalkerDamage)
		}
	}
	return t, nil
}

func deref(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Stats returns the table entry for k.
func (t *UnitTable) Stats(k UnitKind) UnitStats {
	return t.Units[k]
}

// Cost is the price of placing one k.
func (t *UnitTable) Cost(k UnitKind) [2]float64 { return t.Units[k].Cost }

// UpgradeCost is the price of upgrading an existing k.
func (t *UnitTable) UpgradeCost(k UnitKind) [2]float64 { return t.Units[k].Upgrade.Cost }

// Range returns the attack range of k, upgraded or not.
func (t *UnitTable) Range(k UnitKind, upgraded bool) float64 {
	if upgraded {
		return t.Units[k].Upgrade.Range
	}
	return t.Units[k].Range
}

// WalkerDamage returns the single-shot damage k deals to mobile units.
func (t *UnitTable) WalkerDamage(k UnitKind, upgraded bool) float64 {
	if upgraded {
		return t.Units[k].Upgrade.WalkerDamage
	}
	return t.Units[k].WalkerDamage
}

// Shorthand returns the wire code for k.
func (t *UnitTable) Shorthand(k UnitKind) string { return t.Units[k].Shorthand }

// KindOf maps a wire shorthand back to its kind.
func (t *UnitTable) KindOf(shorthand string) (UnitKind, bool) {
	for i, u := range t.Units {
		if u.Shorthand == shorthand {
			return UnitKind(i), true
		}
	}
	return 0, false
}
