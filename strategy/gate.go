package strategy

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// GateEnv is what a gate expression can see.
type GateEnv struct {
	Turn        int
	Budget      float64 // planner's current estimate
	Threshold   float64 // Tuning.ExpansionThreshold
	AllUpgraded bool    // every cell repaired this pass holds an upgraded structure
	Breaches    int     // breach history length
	Every       int     // Tuning.OffenseEvery
}

// Gate is a boolean condition compiled once from an expr source, so
// thresholds can be retuned from config without touching the planners.
type Gate struct {
	Name    string
	Src     string
	program *vm.Program
}

// CompileGate compiles src against GateEnv. Non-boolean expressions and
// unknown identifiers are rejected here rather than at turn time.
func CompileGate(name, src string) (*Gate, error) {
	prog, err := expr.Compile(src, expr.Env(GateEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile gate %q: %w", name, err)
	}
	return &Gate{Name: name, Src: src, program: prog}, nil
}

// Open evaluates the gate. A runtime error (division by zero, say) counts
// as closed.
func (g *Gate) Open(env GateEnv) bool {
	result, err := vm.Run(g.program, env)
	if err != nil {
		slog.Warn("gate evaluation error", "gate", g.Name, "error", err)
		return false
	}
	open, ok := result.(bool)
	return ok && open
}
