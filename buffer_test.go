package synapserl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/anyvec/anyvec64"
)

func TestTrajectoryBufferOrder(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	buf := &TrajectoryBuffer{}

	for i := 0; i < 3; i++ {
		buf.Push(Transition{
			State:     c.MakeVectorData([]float64{float64(i), float64(i) + 0.5}),
			PreSquash: c.MakeVectorData([]float64{float64(i) * 0.1}),
			LogProb:   float64(i) * -0.5,
			Reward:    float64(i),
			Done:      i == 2,
		})
	}
	require.Equal(t, 3, buf.Len())

	batch, ok := buf.SampleAll()
	require.True(t, ok)
	assert.Equal(t, 3, batch.Num)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2, 2.5}, batch.States.Data())
	assert.Equal(t, []float64{0, 0.1, 0.2}, batch.PreSquash.Data())
	assert.Equal(t, []float64{0, -0.5, -1}, batch.LogProbs)
	assert.Equal(t, []float64{0, 1, 2}, batch.Rewards)
	assert.Equal(t, []bool{false, false, true}, batch.Dones)

	// Sampling must not consume the buffer.
	again, ok := buf.SampleAll()
	require.True(t, ok)
	assert.Equal(t, batch.Rewards, again.Rewards)
	assert.Equal(t, 3, buf.Len())

	buf.Clear()
	assert.Equal(t, 0, buf.Len())
	_, ok = buf.SampleAll()
	assert.False(t, ok)
}

func TestTrajectoryBufferEmpty(t *testing.T) {
	buf := &TrajectoryBuffer{}
	batch, ok := buf.SampleAll()
	assert.False(t, ok)
	assert.Nil(t, batch)
}

func TestTrajectoryBufferCap(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	buf := &TrajectoryBuffer{Cap: 1}
	buf.Push(Transition{
		State:     c.MakeVectorData([]float64{1}),
		PreSquash: c.MakeVectorData([]float64{0}),
	})
	assert.Panics(t, func() {
		buf.Push(Transition{
			State:     c.MakeVectorData([]float64{2}),
			PreSquash: c.MakeVectorData([]float64{0}),
		})
	})
}
