package strategy

import "github.com/nstehr/rampart/model"

// Costs are the nominal SP prices planners charge against their estimate.
// The grid applies the real prices; these only keep a pass from
// over-committing.
type Costs struct {
	Turret         float64 `mapstructure:"turret"`
	Support        float64 `mapstructure:"support"`
	TurretUpgrade  float64 `mapstructure:"turret_upgrade"`
	SupportUpgrade float64 `mapstructure:"support_upgrade"`
}

// Tuning holds the numeric knobs and gate expressions of the strategy.
type Tuning struct {
	Costs Costs `mapstructure:"costs"`

	// ExpansionThreshold is the SP estimate reactive defense must still hold
	// before it opens the expansion cells.
	ExpansionThreshold float64 `mapstructure:"expansion_threshold"`
	// ExpansionGate is evaluated against GateEnv after the six repair stages.
	ExpansionGate string `mapstructure:"expansion_gate"`

	// OffenseGate decides whether a wave goes out on turns after the first.
	OffenseGate  string `mapstructure:"offense_gate"`
	OffenseEvery int    `mapstructure:"offense_every"`

	PrimaryUnit   string `mapstructure:"primary_unit"`
	SaturateCount int    `mapstructure:"saturate_count"`
	// Damage is the turret shot the evaluator charges until the game config
	// supplies the real one.
	Damage float64 `mapstructure:"reference_damage"`
}

// DefaultTuning returns the reference configuration.
func DefaultTuning() Tuning {
	return Tuning{
		Costs: Costs{
			Turret:         4,
			Support:        2,
			TurretUpgrade:  6,
			SupportUpgrade: 2,
		},
		ExpansionThreshold: 8,
		ExpansionGate:      "AllUpgraded && Budget >= Threshold",
		OffenseGate:        "Turn % Every == 0",
		OffenseEvery:       1,
		PrimaryUnit:        "scout",
		SaturateCount:      1000,
		Damage:             6,
	}
}

// Validate clamps values into usable ranges.
func (t *Tuning) Validate() {
	t.Costs.Turret = clamp(t.Costs.Turret, 0, 1000)
	t.Costs.Support = clamp(t.Costs.Support, 0, 1000)
	t.Costs.TurretUpgrade = clamp(t.Costs.TurretUpgrade, 0, 1000)
	t.Costs.SupportUpgrade = clamp(t.Costs.SupportUpgrade, 0, 1000)
	t.ExpansionThreshold = clamp(t.ExpansionThreshold, 0, 1000)
	t.OffenseEvery = clampInt(t.OffenseEvery, 1, 100)
	t.SaturateCount = clampInt(t.SaturateCount, 1, 10000)
	t.Damage = clamp(t.Damage, 0, 1000)
	if t.Damage == 0 {
		t.Damage = DefaultTuning().Damage
	}
	if t.ExpansionGate == "" {
		t.ExpansionGate = DefaultTuning().ExpansionGate
	}
	if t.OffenseGate == "" {
		t.OffenseGate = DefaultTuning().OffenseGate
	}
	if t.PrimaryUnit == "" {
		t.PrimaryUnit = DefaultTuning().PrimaryUnit
	}
}

// primaryUnit resolves PrimaryUnit to a mobile unit kind.
func (t Tuning) primaryUnit() (model.UnitKind, error) {
	k, err := model.ParseUnitKind(t.PrimaryUnit)
	if err != nil {
		return 0, err
	}
	if !k.Mobile() {
		return 0, &TuningError{Field: "primary_unit", Reason: k.String() + " is not a mobile unit"}
	}
	return k, nil
}

// TuningError reports an unusable tuning value.
type TuningError struct {
	Field  string
	Reason string
}

func (e *TuningError) Error() string { return "tuning " + e.Field + ": " + e.Reason }

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
