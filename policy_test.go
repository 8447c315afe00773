package synapserl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec/anyvec64"
)

func TestPolicyClone(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	policy := NewPolicy(c, 4, 2, []int{8, 8})
	clone, err := policy.Clone()
	require.NoError(t, err)

	state := c.MakeVectorData([]float64{0.1, -0.2, 0.3, 0.9})
	mean1, logStd1 := policy.Apply(anydiff.NewConst(state), 1)
	mean2, logStd2 := clone.Apply(anydiff.NewConst(state), 1)
	assert.Equal(t, mean1.Output().Data(), mean2.Output().Data())
	assert.Equal(t, logStd1.Output().Data(), logStd2.Output().Data())

	// The copies must not share parameter storage.
	params := clone.Parameters()
	require.NotEmpty(t, params)
	params[0].Vector.Scale(c.MakeNumeric(2))
	mean3, _ := policy.Apply(anydiff.NewConst(state), 1)
	assert.Equal(t, mean1.Output().Data(), mean3.Output().Data())
}

func TestPolicySyncFrom(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	current := NewPolicy(c, 3, 1, []int{6})
	behavior := NewPolicy(c, 3, 1, []int{6})

	state := c.MakeVectorData([]float64{0.5, -1, 0.25})
	mean1, _ := current.Apply(anydiff.NewConst(state), 1)
	mean2, _ := behavior.Apply(anydiff.NewConst(state), 1)
	require.NotEqual(t, mean1.Output().Data(), mean2.Output().Data())

	behavior.SyncFrom(current)
	for i, param := range current.Parameters() {
		assert.Equal(t, param.Vector.Data(), behavior.Parameters()[i].Vector.Data())
	}
}

func TestPolicySelectActionDeterministic(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	policy := NewPolicy(c, 2, 2, []int{4})

	state := c.MakeVectorData([]float64{1, -0.5})
	action, preSquash, logProb := policy.SelectAction(state, true)

	assert.Zero(t, logProb)
	mean, _ := policy.Apply(anydiff.NewConst(state), 1)
	for i, m := range mean.Output().Data().([]float64) {
		assert.InDelta(t, math.Tanh(m), action.Data().([]float64)[i], 1e-9)
		assert.InDelta(t, m, preSquash.Data().([]float64)[i], 1e-9)
	}
}

func TestPolicySelectActionStochastic(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	policy := NewPolicy(c, 2, 3, []int{4})

	state := c.MakeVectorData([]float64{0.3, 0.7})
	action, preSquash, logProb := policy.SelectAction(state, false)

	require.Equal(t, 3, action.Len())
	require.Equal(t, 3, preSquash.Len())
	assert.False(t, math.IsNaN(logProb))
	assert.False(t, math.IsInf(logProb, 0))
	for i, x := range action.Data().([]float64) {
		assert.InDelta(t, math.Tanh(preSquash.Data().([]float64)[i]), x, 1e-9)
		assert.Greater(t, x, -1.0)
		assert.Less(t, x, 1.0)
	}
}

func TestPolicyLogStdStartsAtZero(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	policy := NewPolicy(c, 2, 2, []int{4})

	state := c.MakeVectorData([]float64{-0.1, 0.8})
	_, logStd := policy.Apply(anydiff.NewConst(state), 1)
	for _, x := range logStd.Output().Data().([]float64) {
		assert.Zero(t, x)
	}
}
