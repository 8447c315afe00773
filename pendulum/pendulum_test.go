package pendulum

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/anyvec/anyvec64"
)

func TestEnvEpisode(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	env := NewEnv(c, rand.New(rand.NewSource(3)))

	obs, err := env.Reset()
	require.NoError(t, err)
	require.Equal(t, StateSize, obs.Len())

	action := c.MakeVectorData([]float64{0.5})
	var steps int
	for {
		obs, reward, done, err := env.Step(action)
		require.NoError(t, err)
		assert.Equal(t, StateSize, obs.Len())
		assert.LessOrEqual(t, reward, 0.0)
		steps++
		if done {
			break
		}
		require.Less(t, steps, 1000, "episode should terminate")
	}
	assert.Equal(t, 200, steps)
}

func TestEnvObservationBounds(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	env := NewEnv(c, rand.New(rand.NewSource(7)))

	obs, err := env.Reset()
	require.NoError(t, err)
	data := obs.Data().([]float64)
	assert.InDelta(t, 1, data[0]*data[0]+data[1]*data[1], 1e-9)

	action := c.MakeVectorData([]float64{2})
	for i := 0; i < 50; i++ {
		obs, _, _, err := env.Step(action)
		require.NoError(t, err)
		thetaDot := obs.Data().([]float64)[2]
		assert.LessOrEqual(t, thetaDot, 8.0)
		assert.GreaterOrEqual(t, thetaDot, -8.0)
	}
}

func TestEnvRejectsBadAction(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	env := NewEnv(c, nil)
	_, err := env.Reset()
	require.NoError(t, err)

	_, _, _, err = env.Step(c.MakeVectorData([]float64{1, 2}))
	assert.Error(t, err)
}

func TestActionRange(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	ar := ActionRange()

	mapped := ar.Map(c.MakeVectorData([]float64{1}))
	assert.Equal(t, []float64{2}, mapped.Data())
	mapped = ar.Map(c.MakeVectorData([]float64{-1}))
	assert.Equal(t, []float64{-2}, mapped.Data())
	mapped = ar.Map(c.MakeVectorData([]float64{0}))
	assert.Equal(t, []float64{0}, mapped.Data())
}
