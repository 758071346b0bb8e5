package model

import (
	"fmt"
	"strings"
)

// UnitKind indexes the game's unitInformation table. The order matches the
// config and the per-player unit lists in turn frames.
type UnitKind int

const (
	Wall UnitKind = iota
	Support
	Turret
	Scout
	Demolisher
	Interceptor
	Remove
	UpgradeMarker
)

// unitKindCount is the number of unit lists in a turn frame.
const unitKindCount = 8

var kindNames = [...]string{"wall", "support", "turret", "scout", "demolisher", "interceptor", "remove", "upgrade"}

// Default shorthands used on the wire. The config may override them.
var defaultShorthands = [...]string{"FF", "EF", "DF", "PI", "EI", "SI", "RM", "UP"}

func (k UnitKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("unit(%d)", int(k))
	}
	return kindNames[k]
}

// Stationary is true for structures (walls, supports, turrets).
func (k UnitKind) Stationary() bool { return k == Wall || k == Support || k == Turret }

// Mobile is true for units that walk a route once deployed.
func (k UnitKind) Mobile() bool { return k == Scout || k == Demolisher || k == Interceptor }

// ParseUnitKind accepts either a kind name ("turret") or a default
// shorthand ("DF"), case-insensitively.
func ParseUnitKind(s string) (UnitKind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) || strings.EqualFold(s, defaultShorthands[i]) {
			return UnitKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unit kind %q", s)
}

// Owner tags who a unit or event belongs to.
type Owner int

const (
	OwnerSelf Owner = iota
	OwnerOpponent
)

func (o Owner) String() string {
	if o == OwnerSelf {
		return "self"
	}
	return "opponent"
}

// Resource selects one of the two currencies.
type Resource int

const (
	SP Resource = iota // structure points
	MP                 // mobile points
)

func (r Resource) String() string {
	if r == SP {
		return "SP"
	}
	return "MP"
}

// Structure is a stationary unit occupying one cell.
type Structure struct {
	Kind     UnitKind
	Cell     Cell
	Upgraded bool
	Owner    Owner
	Health   float64
}
