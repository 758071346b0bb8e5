package model

// BlockedFunc reports whether a cell cannot be walked through.
type BlockedFunc func(Cell) bool

const unreachable = -1

// distanceField is a breadth-first step count toward the nearest target cell.
// Moves are the four orthogonal neighbours; every step costs one.
type distanceField struct {
	dist [ArenaSize * ArenaSize]int
}

func fieldIndex(c Cell) int { return c.Y*ArenaSize + c.X }

func (f *distanceField) at(c Cell) int {
	if !InArena(c) {
		return unreachable
	}
	return f.dist[fieldIndex(c)]
}

func (f *distanceField) compute(targets []Cell, blocked BlockedFunc) {
	for i := range f.dist {
		f.dist[i] = unreachable
	}
	queue := make([]Cell, 0, ArenaSize*ArenaSize/2)
	for _, t := range targets {
		if !InArena(t) || blocked(t) {
			continue
		}
		f.dist[fieldIndex(t)] = 0
		queue = append(queue, t)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := f.dist[fieldIndex(cur)]
		for _, step := range orthogonal {
			n := Cell{X: cur.X + step.X, Y: cur.Y + step.Y}
			if !InArena(n) || blocked(n) || f.dist[fieldIndex(n)] != unreachable {
				continue
			}
			f.dist[fieldIndex(n)] = d + 1
			queue = append(queue, n)
		}
	}
}

var orthogonal = [4]Cell{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}

// RouteToEdge returns the cells a mobile unit launched at start walks through
// to reach the opposite edge, start and final edge cell included. It returns
// nil when start is blocked or no cell of the target edge can be reached.
//
// The game walks a unit with no way to the edge to the deepest cell it can
// reach and self-destructs it there. Such routes are reported as nil, so an
// opponent who seals their half entirely makes every launch cell score +Inf.
//
// The walk descends the distance field one step at a time. Among equally
// short moves it alternates between vertical and horizontal steps, so routes
// zig-zag along the diagonal the way the game's units do.
func RouteToEdge(start Cell, blocked BlockedFunc) []Cell {
	if !InArena(start) || blocked(start) {
		return nil
	}
	edge := TargetEdge(start)

	var field distanceField
	field.compute(EdgeCells(edge), blocked)
	if field.at(start) == unreachable {
		return nil
	}

	dx, dy := 1, 1
	if edge == TopLeft || edge == BottomLeft {
		dx = -1
	}
	if edge == BottomLeft || edge == BottomRight {
		dy = -1
	}
	vertical := Cell{X: 0, Y: dy}
	horizontal := Cell{X: dx, Y: 0}
	back := [2]Cell{{X: 0, Y: -dy}, {X: -dx, Y: 0}}

	path := []Cell{start}
	cur := start
	lastVertical := false
	for field.at(cur) > 0 {
		order := [4]Cell{vertical, horizontal, back[0], back[1]}
		if lastVertical {
			order[0], order[1] = horizontal, vertical
		}
		want := field.at(cur) - 1
		moved := false
		for _, step := range order {
			n := Cell{X: cur.X + step.X, Y: cur.Y + step.Y}
			if field.at(n) == want {
				lastVertical = step.X == 0
				cur = n
				path = append(path, n)
				moved = true
				break
			}
		}
		if !moved {
			// Not reachable for a BFS field.
			return nil
		}
	}
	return path
}
