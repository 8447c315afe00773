// Package ppo implements Proximal Policy Optimization
// for continuous action spaces.
// See https://arxiv.org/abs/1707.06347.
package ppo

import (
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"

	synapserl "github.com/arbit3rr/Synapse-RL"
)

const (
	DefaultClipRatio    = 0.2
	DefaultEntropyCoeff = 0.01
	DefaultDiscount     = 0.99
	DefaultStepSize     = 3e-4
)

// An Agent trains a tanh-squashed Gaussian policy and a
// value estimator with Proximal Policy Optimization.
//
// Rollout collection and learning alternate strictly:
// one episode fills the buffer, then Learn consumes it
// in full. Nothing else may touch the parameter sets or
// the buffer in between.
type Agent struct {
	// Current is the policy being optimized.
	// Behavior is the frozen snapshot that generates
	// rollouts; it is overwritten wholesale at the end of
	// every update and never drifts on its own.
	Current  *synapserl.Policy
	Behavior *synapserl.Policy

	// Critic estimates state values.
	Critic anynet.Net

	// Buffer holds the current episode's transitions.
	Buffer *synapserl.TrajectoryBuffer

	// ActionRange maps squashed actions into the
	// environment's native bounds.
	// If nil, actions are passed through unchanged.
	ActionRange *synapserl.ActionRange

	// Discount is the reward discount factor.
	Discount float64

	// ClipRatio bounds the probability ratio during the
	// surrogate update.
	// If 0, DefaultClipRatio is used.
	ClipRatio float64

	// EntropyCoeff scales the entropy bonus.
	// If 0, DefaultEntropyCoeff is used.
	EntropyCoeff float64

	// StepSize is the Adam step size for both networks.
	// If 0, DefaultStepSize is used.
	StepSize float64

	// Sink receives scalar training metrics.
	// If nil, they go to the standard logrus logger.
	Sink synapserl.Sink

	policyAdam *anysgd.Adam
	criticAdam *anysgd.Adam
	updates    int
}

// NewAgent creates an agent with freshly initialized
// networks. The behavior policy starts as an exact copy
// of the current one.
func NewAgent(c anyvec.Creator, stateSize, actionSize int,
	hidden []int) (*Agent, error) {
	current := synapserl.NewPolicy(c, stateSize, actionSize, hidden)
	behavior, err := current.Clone()
	if err != nil {
		return nil, essentials.AddCtx("new agent", err)
	}
	return &Agent{
		Current:    current,
		Behavior:   behavior,
		Critic:     synapserl.NewValueNet(c, stateSize, hidden),
		Buffer:     &synapserl.TrajectoryBuffer{},
		Discount:   DefaultDiscount,
		policyAdam: &anysgd.Adam{},
		criticAdam: &anysgd.Adam{},
	}, nil
}

// Updates returns the number of learning steps performed
// so far.
func (a *Agent) Updates() int {
	return a.updates
}

// Save writes the policy and critic networks to a file.
func (a *Agent) Save(path string) (err error) {
	defer essentials.AddCtxTo("save agent", &err)
	return serializer.SaveAny(path, a.Current.Trunk, a.Current.Mean,
		a.Current.LogStd, a.Critic)
}

// Load restores networks written by Save and
// re-synchronizes the behavior policy.
func (a *Agent) Load(path string) (err error) {
	defer essentials.AddCtxTo("load agent", &err)
	err = serializer.LoadAny(path, &a.Current.Trunk, &a.Current.Mean,
		&a.Current.LogStd, &a.Critic)
	if err != nil {
		return
	}
	a.Behavior.SyncFrom(a.Current)
	return
}

func (a *Agent) clipRatio() float64 {
	if a.ClipRatio == 0 {
		return DefaultClipRatio
	}
	return a.ClipRatio
}

func (a *Agent) entropyCoeff() float64 {
	if a.EntropyCoeff == 0 {
		return DefaultEntropyCoeff
	}
	return a.EntropyCoeff
}

func (a *Agent) stepSize() float64 {
	if a.StepSize == 0 {
		return DefaultStepSize
	}
	return a.StepSize
}

func (a *Agent) sink() synapserl.Sink {
	if a.Sink == nil {
		return &synapserl.LogrusSink{}
	}
	return a.Sink
}
