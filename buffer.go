package synapserl

import "github.com/unixpickle/anyvec"

// A Transition records a single environment step taken
// under the behavior policy.
type Transition struct {
	// State is the observation the action was chosen in.
	State anyvec.Vector

	// PreSquash is the Gaussian sample before tanh
	// squashing. The squashed action can be recovered as
	// tanh(PreSquash).
	PreSquash anyvec.Vector

	// LogProb is the squash-corrected log-probability of
	// the action under the behavior policy.
	LogProb float64

	// Reward is the immediate reward for the step.
	Reward float64

	// Done indicates that the step ended the episode.
	Done bool
}

// A Batch holds one episode's transitions as parallel
// sequences, aligned index for index in temporal order.
type Batch struct {
	Num       int
	States    anyvec.Vector
	PreSquash anyvec.Vector
	LogProbs  []float64
	Rewards   []float64
	Dones     []bool
}

// A TrajectoryBuffer stores the transitions of the
// current episode-update cycle in insertion order.
//
// The buffer is drained in full by every update, so it
// grows without eviction. Cap, if non-zero, bounds the
// growth as a sanity check; exceeding it means the
// caller stopped draining and is a programmer error.
type TrajectoryBuffer struct {
	Cap int

	transitions []Transition
}

// Len returns the number of stored transitions.
func (t *TrajectoryBuffer) Len() int {
	return len(t.transitions)
}

// Push appends a transition.
func (t *TrajectoryBuffer) Push(trans Transition) {
	if t.Cap > 0 && len(t.transitions) >= t.Cap {
		panic("trajectory buffer over capacity")
	}
	t.transitions = append(t.transitions, trans)
}

// SampleAll returns the stored transitions as parallel
// sequences in insertion order, without mutating the
// buffer. The states and pre-squash samples are packed
// into one vector each.
//
// If the buffer is empty, ok is false and the caller
// should skip its update.
func (t *TrajectoryBuffer) SampleAll() (batch *Batch, ok bool) {
	if len(t.transitions) == 0 {
		return nil, false
	}
	batch = &Batch{Num: len(t.transitions)}
	states := make([]anyvec.Vector, 0, len(t.transitions))
	pres := make([]anyvec.Vector, 0, len(t.transitions))
	for _, trans := range t.transitions {
		states = append(states, trans.State)
		pres = append(pres, trans.PreSquash)
		batch.LogProbs = append(batch.LogProbs, trans.LogProb)
		batch.Rewards = append(batch.Rewards, trans.Reward)
		batch.Dones = append(batch.Dones, trans.Done)
	}
	c := states[0].Creator()
	batch.States = c.Concat(states...)
	batch.PreSquash = c.Concat(pres...)
	return batch, true
}

// Clear empties the buffer for the next episode.
func (t *TrajectoryBuffer) Clear() {
	t.transitions = t.transitions[:0]
}
