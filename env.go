package synapserl

import "github.com/unixpickle/anyvec"

// Env is an instance of an RL environment.
type Env interface {
	Reset() (observation anyvec.Vector, err error)
	Step(action anyvec.Vector) (observation anyvec.Vector,
		reward float64, done bool, err error)
}

// An ActionRange describes the native action bounds of
// an environment with a continuous action space.
type ActionRange struct {
	Low  []float64
	High []float64
}

// Map linearly rescales a squashed action from [-1, 1]
// into the native bounds.
func (a *ActionRange) Map(action anyvec.Vector) anyvec.Vector {
	comps := vectorToComponents(action)
	if len(comps) != len(a.Low) || len(comps) != len(a.High) {
		panic("action size does not match range")
	}
	mapped := make([]float64, len(comps))
	for i, x := range comps {
		mapped[i] = a.Low[i] + (x+1)/2*(a.High[i]-a.Low[i])
	}
	c := action.Creator()
	return c.MakeVectorData(c.MakeNumericList(mapped))
}
