package ppo

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"

	synapserl "github.com/arbit3rr/Synapse-RL"
)

// Learn performs one full PPO update from the buffered
// episode: a value-network step against returns-to-go,
// then a clipped-surrogate policy step, followed by the
// behavior-policy synchronization and an unconditional
// buffer clear.
//
// An empty buffer is a no-op, not an error.
func (a *Agent) Learn() {
	batch, ok := a.Buffer.SampleAll()
	if !ok {
		return
	}
	c := batch.States.Creator()
	n := batch.Num

	returns := synapserl.DiscountedReturns(batch.Rewards, batch.Dones, a.Discount)
	returnsVec := c.MakeVectorData(c.MakeNumericList(returns))

	// One critic forward pass serves both the value loss
	// and the advantages, so the advantages see the
	// pre-update value estimates.
	states := anydiff.NewConst(batch.States)
	values := a.Critic.Apply(states, n)
	estimates := vectorToComponents(values.Output())

	valueLoss := meanSquaredError(values, returnsVec, n)
	a.step(valueLoss, anynet.AllParameters(a.Critic), a.criticAdam)

	advantages := make([]float64, n)
	for i, g := range returns {
		advantages[i] = g - estimates[i]
	}
	advantages = synapserl.StandardizeAdvantages(advantages)
	advVec := c.MakeVectorData(c.MakeNumericList(advantages))

	// Log-probabilities of the rollout's actions under
	// the current parameters; the stored behavior
	// log-probs enter as constants.
	mean, logStd := a.Current.Apply(states, n)
	dist := a.Current.Dist
	logProbs := dist.LogProb(mean, logStd, batch.PreSquash, n)
	entropy := dist.Entropy(logStd, n)

	oldVec := c.MakeVectorData(c.MakeNumericList(batch.LogProbs))
	ratios := anydiff.Exp(anydiff.Sub(logProbs, anydiff.NewConst(oldVec)))

	surrogate := clippedSurrogate(ratios, advVec, a.clipRatio())
	policyLoss := anydiff.Scale(batchMean(surrogate, n), c.MakeNumeric(-1))
	entropyLoss := anydiff.Scale(batchMean(entropy, n), c.MakeNumeric(-1))
	totalLoss := anydiff.Add(policyLoss,
		anydiff.Scale(entropyLoss, c.MakeNumeric(a.entropyCoeff())))
	a.step(totalLoss, a.Current.Parameters(), a.policyAdam)

	a.Behavior.SyncFrom(a.Current)
	a.Buffer.Clear()

	sink := a.sink()
	sink.Scalar("loss/policy", scalarValue(policyLoss.Output()), a.updates)
	sink.Scalar("loss/entropy", scalarValue(entropyLoss.Output()), a.updates)
	sink.Scalar("loss/value", scalarValue(valueLoss.Output()), a.updates)
	a.updates++
}

// step computes gradients of loss with respect to params
// and applies one Adam update.
func (a *Agent) step(loss anydiff.Res, params []*anydiff.Var, adam *anysgd.Adam) {
	grad := anydiff.NewGrad(params...)
	if len(grad) == 0 {
		return
	}
	c := loss.Output().Creator()
	loss.Propagate(anyvec.Ones(c, 1), grad)
	g := adam.Transform(grad)
	g.Scale(c.MakeNumeric(-a.stepSize()))
	g.AddToVars()
}

// clippedSurrogate computes min(ratio*adv,
// clip(ratio, 1-clip, 1+clip)*adv) per batch entry.
// The advantages are constants.
func clippedSurrogate(ratios anydiff.Res, advantages anyvec.Vector,
	clip float64) anydiff.Res {
	c := ratios.Output().Creator()
	adv := anydiff.NewConst(advantages)
	return anydiff.Pool(ratios, func(ratios anydiff.Res) anydiff.Res {
		clipped := anydiff.ClipRange(ratios, c.MakeNumeric(1-clip),
			c.MakeNumeric(1+clip))
		return anydiff.ElemMin(
			anydiff.Mul(clipped, adv),
			anydiff.Mul(ratios, adv),
		)
	})
}

func meanSquaredError(predicted anydiff.Res, targets anyvec.Vector,
	n int) anydiff.Res {
	diff := anydiff.Sub(predicted, anydiff.NewConst(targets))
	return batchMean(anydiff.Square(diff), n)
}

// batchMean reduces a length-n vector to its mean.
func batchMean(v anydiff.Res, n int) anydiff.Res {
	sum := anydiff.SumCols(&anydiff.Matrix{Data: v, Rows: 1, Cols: n})
	return anydiff.Scale(sum, v.Output().Creator().MakeNumeric(1/float64(n)))
}

func scalarValue(vec anyvec.Vector) float64 {
	return vectorToComponents(vec)[0]
}

func vectorToComponents(vec anyvec.Vector) []float64 {
	switch data := vec.Data().(type) {
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	case []float64:
		return data
	default:
		panic(fmt.Sprintf("unsupported numeric type: %T", data))
	}
}
