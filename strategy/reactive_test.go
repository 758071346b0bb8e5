package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nstehr/rampart/model"
)

func newTestReactive(t require.TestingT, breaches ...model.Cell) *ReactiveDefense {
	gate, err := CompileGate("expansion", DefaultTuning().ExpansionGate)
	require.NoError(t, err)
	h := NewHistory()
	for _, c := range breaches {
		h.append(c)
	}
	return NewReactiveDefense(DefaultLayout(), DefaultTuning(), h, gate)
}

func TestReactiveSingleBreach(t *testing.T) {
	g := newFakeGrid(10, 0)
	rep := newTestReactive(t, cell(3, 12)).Plan(g, 2)

	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.Turrets)
	assert.Empty(t, rep.Supports, "cell is held by the new turret")
	assert.Empty(t, rep.Rebuilt)
	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.UpgradedTurrets)
	assert.False(t, rep.Expanded)
	assert.Equal(t, 0.0, rep.BudgetLeft)

	s, ok := g.StructureAt(cell(3, 12))
	require.True(t, ok)
	assert.Equal(t, model.Turret, s.Kind)
	assert.True(t, s.Upgraded)
	assert.Equal(t, 0.0, g.sp)
}

func TestReactiveZeroBudgetChangesNothing(t *testing.T) {
	g := newFakeGrid(0, 0)
	g.place(model.Turret, cell(9, 12), false)
	before := len(g.structures)

	rep := newTestReactive(t, cell(3, 12), cell(4, 11), cell(9, 12)).Plan(g, 5)

	assert.Empty(t, rep.Turrets)
	assert.Empty(t, rep.Supports)
	assert.Empty(t, rep.Rebuilt)
	assert.Empty(t, rep.UpgradedTurrets)
	assert.Empty(t, rep.UpgradedSupports)
	assert.Empty(t, rep.Reupgraded)
	assert.False(t, rep.Expanded)
	assert.Empty(t, g.spawns)
	assert.Empty(t, g.upgrades)
	assert.Len(t, g.structures, before)
}

func TestReactiveEmptyHistory(t *testing.T) {
	g := newFakeGrid(7, 0)
	rep := newTestReactive(t).Plan(g, 1)
	assert.Empty(t, g.spawns)
	assert.Equal(t, 7.0, rep.BudgetLeft)
}

func TestReactiveSkipsOccupiedBreach(t *testing.T) {
	g := newFakeGrid(4, 0)
	g.place(model.Turret, cell(3, 12), true)
	rep := newTestReactive(t, cell(3, 12), cell(4, 11)).Plan(g, 3)

	assert.Equal(t, []model.Cell{cell(4, 11)}, rep.Turrets)
	assert.Equal(t, 0.0, g.sp)
}

func TestReactiveSupportAndRebuild(t *testing.T) {
	g := newFakeGrid(30, 0)
	// The first turret and the support under it are both destroyed on
	// landing, so stage 3 has to put a turret back.
	g.vanish[cell(3, 12)] = 2

	rep := newTestReactive(t, cell(3, 12)).Plan(g, 4)

	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.Turrets)
	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.Supports)
	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.Rebuilt)
	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.UpgradedTurrets)

	s, ok := g.StructureAt(cell(3, 12))
	require.True(t, ok)
	assert.Equal(t, model.Turret, s.Kind)
	assert.True(t, s.Upgraded)
}

func TestReactiveSupportUpgradeStage(t *testing.T) {
	g := newFakeGrid(8, 0)
	// Turret destroyed on landing; the support placed in stage 2 survives.
	g.vanish[cell(3, 12)] = 1

	rep := newTestReactive(t, cell(3, 12)).Plan(g, 4)

	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.Supports)
	assert.Empty(t, rep.Rebuilt, "cell is held by the support")
	assert.Empty(t, rep.UpgradedTurrets, "estimate of 2 cannot cover a turret upgrade")
	assert.Equal(t, []model.Cell{cell(3, 12)}, rep.UpgradedSupports)
	assert.Equal(t, 0.0, rep.BudgetLeft)
}

func TestReactiveExpansionThreshold(t *testing.T) {
	t.Run("fires at threshold", func(t *testing.T) {
		g := newFakeGrid(8, 0)
		rep := newTestReactive(t).Plan(g, 6)
		assert.True(t, rep.Expanded)
		assert.Equal(t, []model.Cell{cell(12, 11), cell(15, 11)}, rep.ExpansionTurrets)
		assert.Empty(t, rep.ExpansionSupports)
	})

	t.Run("closed below threshold", func(t *testing.T) {
		g := newFakeGrid(7, 0)
		rep := newTestReactive(t).Plan(g, 6)
		assert.False(t, rep.Expanded)
		assert.Empty(t, g.spawns)
		assert.Equal(t, 7.0, g.sp)
	})

	t.Run("closed with an unupgraded tracked cell", func(t *testing.T) {
		g := newFakeGrid(30, 0)
		g.stuck[cell(3, 12)] = true
		rep := newTestReactive(t, cell(3, 12)).Plan(g, 6)
		assert.Equal(t, []model.Cell{cell(3, 12)}, rep.Turrets)
		assert.False(t, rep.Expanded)
		assert.Equal(t, 26.0, rep.BudgetLeft)
	})

	t.Run("supports get upgrade attempts", func(t *testing.T) {
		g := newFakeGrid(100, 0)
		rep := newTestReactive(t).Plan(g, 6)
		assert.True(t, rep.Expanded)
		assert.Len(t, rep.ExpansionTurrets, 4)
		assert.Equal(t, DefaultLayout().ExpansionSupports, rep.ExpansionSupports)
		assert.Equal(t, DefaultLayout().ExpansionSupports, rep.ExpansionUpgrades)
	})
}

func TestReactiveSecondUpgradeSweep(t *testing.T) {
	// (4,11) loses its turret on landing and gets a support instead. Both
	// cells refuse their first upgrade, so stage 4 spends nothing.
	setup := func(sp float64) *fakeGrid {
		g := newFakeGrid(sp, 0)
		g.vanish[cell(4, 11)] = 1
		g.flaky[cell(3, 12)] = 1
		g.flaky[cell(4, 11)] = 1
		return g
	}

	t.Run("turret priced as turret", func(t *testing.T) {
		g := setup(18)
		rep := newTestReactive(t, cell(3, 12), cell(4, 11)).Plan(g, 5)

		assert.Equal(t, []model.Cell{cell(3, 12), cell(4, 11)}, rep.Turrets)
		assert.Equal(t, []model.Cell{cell(4, 11)}, rep.Supports)
		assert.Empty(t, rep.UpgradedTurrets)
		assert.Equal(t, []model.Cell{cell(4, 11)}, rep.UpgradedSupports)
		assert.Equal(t, []model.Cell{cell(3, 12)}, rep.Reupgraded)
		assert.Equal(t, 0.0, rep.BudgetLeft, "6 left before the sweep, turret upgrade charged 6")

		s, ok := g.StructureAt(cell(3, 12))
		require.True(t, ok)
		assert.True(t, s.Upgraded)
	})

	t.Run("skips a cell priced above the estimate", func(t *testing.T) {
		g := setup(16)
		rep := newTestReactive(t, cell(3, 12), cell(4, 11)).Plan(g, 5)

		assert.Equal(t, []model.Cell{cell(4, 11)}, rep.UpgradedSupports)
		assert.Empty(t, rep.Reupgraded)
		assert.Equal(t, 4.0, rep.BudgetLeft)
		assert.Equal(t, 1, g.upgradeTries[cell(3, 12)], "no second attempt with 4 left for a 6 upgrade")
		assert.Equal(t, 4.0, g.sp)
	})

	t.Run("support priced as support", func(t *testing.T) {
		g := newFakeGrid(10, 0)
		g.vanish[cell(4, 11)] = 1
		g.flaky[cell(4, 11)] = 1
		rep := newTestReactive(t, cell(4, 11)).Plan(g, 5)

		assert.Equal(t, []model.Cell{cell(4, 11)}, rep.Supports)
		assert.Empty(t, rep.UpgradedSupports, "first attempt refused")
		assert.Equal(t, []model.Cell{cell(4, 11)}, rep.Reupgraded)
		assert.Equal(t, 2.0, rep.BudgetLeft, "4 left before the sweep, support upgrade charged 2")
	})
}

// A stage-3 rebuild lands on a cell stage 1 already tracks, so the expansion
// gate sees it through the stage 1 set.
func TestReactiveExpansionAfterRebuild(t *testing.T) {
	g := newFakeGrid(30, 0)
	g.vanish[cell(3, 12)] = 2
	rep := newTestReactive(t, cell(3, 12)).Plan(g, 7)

	require.Equal(t, []model.Cell{cell(3, 12)}, rep.Rebuilt)
	assert.True(t, rep.Expanded)
}

func TestReactiveStaysWithinBudget(t *testing.T) {
	own := []model.Cell{cell(3, 12), cell(4, 11), cell(9, 12), cell(13, 9), cell(20, 10), cell(24, 12)}
	rapid.Check(t, func(t *rapid.T) {
		start := float64(rapid.IntRange(0, 60).Draw(t, "sp"))
		g := newFakeGrid(start, 0)
		var breaches []model.Cell
		n := rapid.IntRange(0, 8).Draw(t, "breaches")
		for i := 0; i < n; i++ {
			breaches = append(breaches, rapid.SampledFrom(own).Draw(t, "breach"))
		}
		for _, c := range own {
			switch rapid.IntRange(0, 3).Draw(t, "state") {
			case 1:
				g.place(model.Turret, c, rapid.Bool().Draw(t, "upgraded"))
			case 2:
				g.vanish[c] = rapid.IntRange(1, 2).Draw(t, "vanish")
			case 3:
				g.stuck[c] = true
			}
		}

		rep := newTestReactive(t, breaches...).Plan(g, 3)
		if rep.BudgetLeft < 0 || rep.BudgetLeft > start {
			t.Fatalf("estimate %v outside [0, %v]", rep.BudgetLeft, start)
		}
		if g.sp < 0 {
			t.Fatalf("grid overspent: %v", g.sp)
		}
		for _, c := range rep.Turrets {
			if !containsCell(breaches, c) {
				t.Fatalf("turret at %v, not a breach cell", c)
			}
		}
	})
}

func containsCell(cells []model.Cell, c model.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
