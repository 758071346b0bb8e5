package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestInArena(t *testing.T) {
	tests := []struct {
		c    Cell
		want bool
	}{
		{Cell{13, 0}, true},
		{Cell{14, 0}, true},
		{Cell{12, 0}, false},
		{Cell{15, 0}, false},
		{Cell{0, 13}, true},
		{Cell{27, 13}, true},
		{Cell{0, 14}, true},
		{Cell{27, 14}, true},
		{Cell{13, 27}, true},
		{Cell{12, 27}, false},
		{Cell{3, 12}, true},
		{Cell{0, 0}, false},
		{Cell{13, -1}, false},
		{Cell{13, 28}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, InArena(tc.c), "InArena(%v)", tc.c)
	}
}

func TestEdgeCells(t *testing.T) {
	for _, e := range []Edge{TopRight, TopLeft, BottomLeft, BottomRight} {
		cells := EdgeCells(e)
		assert.Len(t, cells, HalfArena, e.String())
		for _, c := range cells {
			assert.True(t, InArena(c), "%s cell %v outside arena", e, c)
			assert.True(t, OnEdge(c, e))
		}
	}
	assert.Equal(t, Cell{13, 0}, EdgeCells(BottomLeft)[0])
	assert.Equal(t, Cell{27, 13}, EdgeCells(BottomRight)[13])
	assert.False(t, OnEdge(Cell{13, 5}, BottomLeft))
}

func TestTargetEdge(t *testing.T) {
	assert.Equal(t, TopRight, TargetEdge(Cell{13, 0}))
	assert.Equal(t, TopLeft, TargetEdge(Cell{14, 0}))
	assert.Equal(t, BottomRight, TargetEdge(Cell{5, 20}))
	assert.Equal(t, BottomLeft, TargetEdge(Cell{20, 20}))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Cell{0, 0}.Distance(Cell{3, 4}))
	assert.Equal(t, 0.0, Cell{7, 7}.Distance(Cell{7, 7}))
}

func TestProperty_ArenaIsMirrored(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := Cell{
			X: rapid.IntRange(-2, ArenaSize+1).Draw(rt, "x"),
			Y: rapid.IntRange(-2, ArenaSize+1).Draw(rt, "y"),
		}
		flipped := Cell{X: ArenaSize - 1 - c.X, Y: ArenaSize - 1 - c.Y}
		if InArena(c) != InArena(flipped) {
			rt.Fatalf("InArena(%v)=%v but InArena(%v)=%v", c, InArena(c), flipped, InArena(flipped))
		}
	})
}
