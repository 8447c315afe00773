// Package pendulum implements the classic pendulum
// swing-up control problem as an in-process environment.
package pendulum

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/unixpickle/anyvec"

	synapserl "github.com/arbit3rr/Synapse-RL"
)

const (
	maxSpeed  = 8.0
	maxTorque = 2.0
	dt        = 0.05
	gravity   = 10.0
	mass      = 1.0
	length    = 1.0
	maxSteps  = 200

	// StateSize and ActionSize describe the observation
	// and action vectors.
	StateSize  = 3
	ActionSize = 1
)

// An Env is a single pendulum instance.
//
// Observations are (cos th, sin th, th dot); actions are
// a 1-vector torque in [-maxTorque, maxTorque]. Episodes
// last a fixed number of steps.
type Env struct {
	Creator anyvec.Creator
	Rand    *rand.Rand

	theta    float64
	thetaDot float64
	steps    int
}

// NewEnv creates an environment backed by the given
// random source. A nil rng falls back to a fresh one.
func NewEnv(c anyvec.Creator, rng *rand.Rand) *Env {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Env{Creator: c, Rand: rng}
}

// ActionRange returns the native torque bounds, for use
// with a tanh-squashed policy.
func ActionRange() *synapserl.ActionRange {
	return &synapserl.ActionRange{
		Low:  []float64{-maxTorque},
		High: []float64{maxTorque},
	}
}

// Reset starts a new episode from a random state.
func (e *Env) Reset() (anyvec.Vector, error) {
	e.theta = e.Rand.Float64()*2*math.Pi - math.Pi
	e.thetaDot = e.Rand.Float64()*2 - 1
	e.steps = 0
	return e.observe(), nil
}

// Step applies a torque for one timestep.
//
// The reward penalizes angle, angular velocity, and
// control effort; it is always non-positive.
func (e *Env) Step(action anyvec.Vector) (anyvec.Vector, float64, bool, error) {
	if action.Len() != ActionSize {
		return nil, 0, false, fmt.Errorf("expected action size %d but got %d",
			ActionSize, action.Len())
	}
	var torque float64
	switch data := action.Data().(type) {
	case []float32:
		torque = float64(data[0])
	case []float64:
		torque = data[0]
	default:
		return nil, 0, false, fmt.Errorf("unsupported numeric type: %T", data)
	}
	torque = clamp(torque, -maxTorque, maxTorque)

	angle := normalizeAngle(e.theta)
	cost := angle*angle + 0.1*e.thetaDot*e.thetaDot + 0.001*torque*torque

	e.thetaDot += (3*gravity/(2*length)*math.Sin(e.theta) +
		3/(mass*length*length)*torque) * dt
	e.thetaDot = clamp(e.thetaDot, -maxSpeed, maxSpeed)
	e.theta += e.thetaDot * dt
	e.steps++

	return e.observe(), -cost, e.steps >= maxSteps, nil
}

func (e *Env) observe() anyvec.Vector {
	obs := []float64{math.Cos(e.theta), math.Sin(e.theta), e.thetaDot}
	return e.Creator.MakeVectorData(e.Creator.MakeNumericList(obs))
}

// normalizeAngle wraps an angle into [-pi, pi).
func normalizeAngle(theta float64) float64 {
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

func clamp(x, min, max float64) float64 {
	return math.Max(min, math.Min(max, x))
}
