package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpansionGate(t *testing.T) {
	g, err := CompileGate("expansion", DefaultTuning().ExpansionGate)
	require.NoError(t, err)

	tests := []struct {
		name string
		env  GateEnv
		want bool
	}{
		{"at threshold", GateEnv{Budget: 8, Threshold: 8, AllUpgraded: true}, true},
		{"above threshold", GateEnv{Budget: 30, Threshold: 8, AllUpgraded: true}, true},
		{"below threshold", GateEnv{Budget: 7, Threshold: 8, AllUpgraded: true}, false},
		{"not upgraded", GateEnv{Budget: 30, Threshold: 8, AllUpgraded: false}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Open(tt.env))
		})
	}
}

func TestOffenseGate(t *testing.T) {
	g, err := CompileGate("offense", "Turn % Every == 0")
	require.NoError(t, err)
	assert.True(t, g.Open(GateEnv{Turn: 6, Every: 3}))
	assert.False(t, g.Open(GateEnv{Turn: 7, Every: 3}))
	assert.False(t, g.Open(GateEnv{Turn: 7, Every: 0}), "runtime error counts as closed")
}

func TestCustomGate(t *testing.T) {
	g, err := CompileGate("expansion", "Breaches > 2 && Budget >= Threshold * 2")
	require.NoError(t, err)
	assert.True(t, g.Open(GateEnv{Breaches: 3, Budget: 16, Threshold: 8}))
	assert.False(t, g.Open(GateEnv{Breaches: 3, Budget: 15, Threshold: 8}))
	assert.Equal(t, "expansion", g.Name)
}

func TestCompileGateErrors(t *testing.T) {
	for _, src := range []string{"Budget >=", "Turn + 1", "Gold > 3"} {
		_, err := CompileGate("bad", src)
		assert.Error(t, err, "source %q", src)
	}
}
