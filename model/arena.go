package model

import (
	"fmt"
	"math"
)

// ArenaSize is the width and height of the diamond arena. Each player owns
// the half with y < HalfArena (the engine mirrors coordinates for player 2).
const (
	ArenaSize = 28
	HalfArena = ArenaSize / 2
)

// Cell is one grid position. Identity is positional.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Distance is the Euclidean distance between two cells; turret ranges are
// measured with it.
func (c Cell) Distance(o Cell) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// InArena reports whether c lies inside the diamond. Rows widen by two cells
// per step toward the midline and narrow again past it.
func InArena(c Cell) bool {
	if c.Y < 0 || c.Y >= ArenaSize {
		return false
	}
	if c.Y < HalfArena {
		return c.X >= HalfArena-1-c.Y && c.X <= HalfArena+c.Y
	}
	return c.X >= c.Y-HalfArena && c.X <= ArenaSize-1+HalfArena-c.Y
}

// Edge names one of the four diagonal borders of the arena.
type Edge int

const (
	TopRight Edge = iota
	TopLeft
	BottomLeft
	BottomRight
)

func (e Edge) String() string {
	switch e {
	case TopRight:
		return "top_right"
	case TopLeft:
		return "top_left"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

// EdgeCells returns the HalfArena cells along e, ordered from the outer
// corner toward the midline.
func EdgeCells(e Edge) []Cell {
	out := make([]Cell, 0, HalfArena)
	for i := 0; i < HalfArena; i++ {
		switch e {
		case TopRight:
			out = append(out, Cell{X: HalfArena + i, Y: ArenaSize - 1 - i})
		case TopLeft:
			out = append(out, Cell{X: HalfArena - 1 - i, Y: ArenaSize - 1 - i})
		case BottomLeft:
			out = append(out, Cell{X: HalfArena - 1 - i, Y: i})
		case BottomRight:
			out = append(out, Cell{X: HalfArena + i, Y: i})
		}
	}
	return out
}

// OnEdge reports whether c is one of the cells of e.
func OnEdge(c Cell, e Edge) bool {
	for _, ec := range EdgeCells(e) {
		if ec == c {
			return true
		}
	}
	return false
}

// TargetEdge is the edge a mobile unit launched from start walks toward:
// the border of the opposite quadrant.
func TargetEdge(start Cell) Edge {
	left := start.X < HalfArena
	bottom := start.Y < HalfArena
	switch {
	case left && bottom:
		return TopRight
	case left && !bottom:
		return BottomRight
	case !left && bottom:
		return TopLeft
	default:
		return BottomLeft
	}
}
