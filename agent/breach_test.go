package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
)

func TestDecodeBreaches(t *testing.T) {
	report, err := DecodeBreaches([]byte(actionLine))
	require.NoError(t, err)
	assert.Equal(t, strategy.BreachReport{
		Turn: 0,
		Events: []strategy.BreachEvent{
			{Impact: model.Cell{X: 4, Y: 11}, Owner: model.OwnerOpponent},
			{Impact: model.Cell{X: 20, Y: 25}, Owner: model.OwnerSelf},
		},
	}, report)
}

func TestDecodeBreachesEmpty(t *testing.T) {
	report, err := DecodeBreaches([]byte(`{"turnInfo":[1,7,30],"events":{"breach":[]}}`))
	require.NoError(t, err)
	assert.Equal(t, 7, report.Turn)
	assert.Empty(t, report.Events)
}

func TestDecodeBreachesInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"short turnInfo", `{"turnInfo":[1],"events":{"breach":[]}}`},
		{"entry not array", `{"turnInfo":[1,2],"events":{"breach":[{"x":3}]}}`},
		{"too few fields", `{"turnInfo":[1,2],"events":{"breach":[[[3,12],1,3,"5"]]}}`},
		{"impact one coordinate", `{"turnInfo":[1,2],"events":{"breach":[[[3],1,3,"5",2]]}}`},
		{"impact not ints", `{"turnInfo":[1,2],"events":{"breach":[[["a","b"],1,3,"5",2]]}}`},
		{"owner string", `{"turnInfo":[1,2],"events":{"breach":[[[3,12],1,3,"5","2"]]}}`},
		{"owner out of range", `{"turnInfo":[1,2],"events":{"breach":[[[3,12],1,3,"5",3]]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBreaches([]byte(tt.data))
			assert.ErrorIs(t, err, ErrBadBreach)
		})
	}

	_, err := DecodeBreaches([]byte(`{turnInfo`))
	assert.Error(t, err)
}
