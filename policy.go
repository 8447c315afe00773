package synapserl

import (
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/serializer"
)

// A Policy is a stochastic Gaussian policy network: a
// shared feed-forward trunk with separate mean and
// log-std heads.
//
// Two Policy instances of identical structure play the
// roles of the current and behavior policies. They only
// ever differ in parameter values, which SyncFrom
// overwrites wholesale.
type Policy struct {
	Trunk  anynet.Net
	Mean   *anynet.FC
	LogStd *anynet.FC
	Dist   *Gaussian
}

// NewPolicy creates a randomly initialized policy.
//
// hidden lists the trunk layer sizes. The log-std head
// is zero-initialized so that exploration starts at unit
// standard deviation.
func NewPolicy(c anyvec.Creator, stateSize, actionSize int, hidden []int) *Policy {
	var trunk anynet.Net
	inSize := stateSize
	for _, h := range hidden {
		trunk = append(trunk, anynet.NewFC(c, inSize, h), anynet.Tanh)
		inSize = h
	}
	return &Policy{
		Trunk:  trunk,
		Mean:   anynet.NewFC(c, inSize, actionSize),
		LogStd: anynet.NewFCZero(c, inSize, actionSize),
		Dist:   &Gaussian{Dim: actionSize},
	}
}

// Apply runs the network on a batch of states, producing
// the mean and log-std tensors of the action
// distribution.
func (p *Policy) Apply(states anydiff.Res, batch int) (mean, logStd anydiff.Res) {
	out := p.Trunk.Apply(states, batch)
	return p.Mean.Apply(out, batch), p.LogStd.Apply(out, batch)
}

// SelectAction picks an action for a single state.
//
// In deterministic mode the action is tanh(mean) and the
// log-probability is defined as zero. Otherwise the
// action is sampled from the squashed Gaussian and its
// corrected log-probability is returned alongside the
// pre-squash sample.
func (p *Policy) SelectAction(state anyvec.Vector, deterministic bool) (action,
	preSquash anyvec.Vector, logProb float64) {
	mean, logStd := p.Apply(anydiff.NewConst(state), 1)
	if deterministic {
		preSquash = mean.Output().Copy()
		squashed := make([]float64, preSquash.Len())
		for i, x := range vectorToComponents(preSquash) {
			squashed[i] = math.Tanh(x)
		}
		c := state.Creator()
		action = c.MakeVectorData(c.MakeNumericList(squashed))
		return
	}
	preSquash, action = p.Dist.Sample(mean.Output(), logStd.Output(), 1)
	lp := p.Dist.LogProb(mean, logStd, preSquash, 1)
	logProb = vectorToComponents(lp.Output())[0]
	return
}

// Parameters returns the trainable parameters.
func (p *Policy) Parameters() []*anydiff.Var {
	return anynet.AllParameters(p.Trunk, p.Mean, p.LogStd)
}

// Clone creates a structurally identical deep copy of
// the policy via serialization.
func (p *Policy) Clone() (*Policy, error) {
	trunk, err := serializer.Copy(p.Trunk)
	if err != nil {
		return nil, err
	}
	mean, err := serializer.Copy(p.Mean)
	if err != nil {
		return nil, err
	}
	logStd, err := serializer.Copy(p.LogStd)
	if err != nil {
		return nil, err
	}
	return &Policy{
		Trunk:  trunk.(anynet.Net),
		Mean:   mean.(*anynet.FC),
		LogStd: logStd.(*anynet.FC),
		Dist:   &Gaussian{Dim: p.Dist.Dim},
	}, nil
}

// SyncFrom overwrites this policy's parameters with an
// exact copy of src's.
//
// Both policies must share a structure; partial copies
// are impossible.
func (p *Policy) SyncFrom(src *Policy) {
	dst := p.Parameters()
	params := src.Parameters()
	if len(dst) != len(params) {
		panic("policy structures do not match")
	}
	for i, param := range params {
		dst[i].Vector.Set(param.Vector)
	}
}
