package strategy

import (
	"log/slog"
	"sync"

	"github.com/nstehr/rampart/model"
)

// BreachEvent is one unit reaching a back edge.
type BreachEvent struct {
	Impact model.Cell
	Owner  model.Owner // whose unit scored
}

// BreachReport is the decoded breach feed of one action frame.
type BreachReport struct {
	Turn   int
	Events []BreachEvent
}

// History is the match's append-only list of cells where the opponent
// scored on us. It is never pruned or deduplicated: a cell breached three
// times appears three times.
//
// The Recorder is the only writer and reactive defense the only reader;
// Snapshot hands the reader a copy taken at the start of its pass.
type History struct {
	mu    sync.Mutex
	cells []model.Cell
}

func NewHistory() *History { return &History{} }

func (h *History) append(c model.Cell) {
	h.mu.Lock()
	h.cells = append(h.cells, c)
	h.mu.Unlock()
}

// Snapshot returns the breach cells in the order they happened.
func (h *History) Snapshot() []model.Cell {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.Cell, len(h.cells))
	copy(out, h.cells)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.cells)
}

// Recorder feeds breach reports into a History.
type Recorder struct {
	history *History
}

func NewRecorder(h *History) *Recorder { return &Recorder{history: h} }

// Record appends the impact cell of every opponent breach in report, in
// event order, and returns how many were appended. Our own breaches of the
// opponent's edge are ignored.
func (r *Recorder) Record(report BreachReport) int {
	n := 0
	for _, ev := range report.Events {
		if ev.Owner != model.OwnerOpponent {
			continue
		}
		r.history.append(ev.Impact)
		n++
		slog.Info("scored on", "turn", report.Turn, "cell", ev.Impact.String())
	}
	if n > 0 {
		slog.Debug("breach history", "length", r.history.Len())
	}
	return n
}
