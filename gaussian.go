package synapserl

import (
	"fmt"
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

const (
	// LogStdMin and LogStdMax bound the policy's log
	// standard deviations before exponentiation, keeping
	// exploration noise from collapsing or blowing up.
	LogStdMin = -10
	LogStdMax = 2

	// squashEpsilon keeps the tanh Jacobian term away
	// from log(0).
	squashEpsilon = 1e-6
)

// A Gaussian is a batch of diagonal Gaussian
// distributions squashed through tanh.
//
// Mean and log-std tensors are batch-major with Dim
// components per batch entry. Log standard deviations
// are clamped to [LogStdMin, LogStdMax] before use.
type Gaussian struct {
	Dim int
}

// Sample draws one reparameterized sample per batch
// entry, returning both the pre-squash value and the
// squashed action in [-1, 1].
func (g *Gaussian) Sample(mean, logStd anyvec.Vector, batch int) (preSquash,
	action anyvec.Vector) {
	g.assertShape(mean.Len(), batch)
	c := mean.Creator()

	std := make([]float64, logStd.Len())
	for i, x := range vectorToComponents(logStd) {
		std[i] = math.Exp(clampLogStd(x))
	}
	noise := c.MakeVector(mean.Len())
	anyvec.Rand(noise, anyvec.Normal, nil)
	noise.Mul(c.MakeVectorData(c.MakeNumericList(std)))

	preSquash = mean.Copy()
	preSquash.Add(noise)

	squashed := make([]float64, preSquash.Len())
	for i, x := range vectorToComponents(preSquash) {
		squashed[i] = math.Tanh(x)
	}
	action = c.MakeVectorData(c.MakeNumericList(squashed))
	return
}

// LogProb computes the squash-corrected log-density of
// the given pre-squash samples, one scalar per batch
// entry.
//
// The result is differentiable with respect to mean and
// logStd; the samples themselves are treated as
// constants.
func (g *Gaussian) LogProb(mean, logStd anydiff.Res, preSquash anyvec.Vector,
	batch int) anydiff.Res {
	g.assertShape(preSquash.Len(), batch)
	c := preSquash.Creator()
	clamped := anydiff.ClipRange(logStd, c.MakeNumeric(LogStdMin),
		c.MakeNumeric(LogStdMax))
	sample := anydiff.NewConst(preSquash)
	return anydiff.Pool(clamped, func(clamped anydiff.Res) anydiff.Res {
		invStd := anydiff.Exp(anydiff.Scale(clamped, c.MakeNumeric(-1)))
		z := anydiff.Mul(anydiff.Sub(sample, mean), invStd)
		normConst := c.MakeVector(preSquash.Len())
		normConst.AddScalar(c.MakeNumeric(-0.5 * math.Log(2*math.Pi)))
		density := anydiff.Add(
			anydiff.Sub(
				anydiff.Scale(anydiff.Square(z), c.MakeNumeric(-0.5)),
				clamped,
			),
			anydiff.NewConst(normConst),
		)
		corrected := anydiff.Sub(density,
			anydiff.NewConst(g.squashCorrection(preSquash)))
		return sumDims(corrected, batch, g.Dim)
	})
}

// Entropy computes the analytic entropy of the
// pre-squash Gaussians, one scalar per batch entry,
// differentiable with respect to logStd.
func (g *Gaussian) Entropy(logStd anydiff.Res, batch int) anydiff.Res {
	g.assertShape(logStd.Output().Len(), batch)
	c := logStd.Output().Creator()
	clamped := anydiff.ClipRange(logStd, c.MakeNumeric(LogStdMin),
		c.MakeNumeric(LogStdMax))
	base := c.MakeVector(logStd.Output().Len())
	base.AddScalar(c.MakeNumeric(0.5 * (1 + math.Log(2*math.Pi))))
	return sumDims(anydiff.Add(clamped, anydiff.NewConst(base)), batch, g.Dim)
}

// squashCorrection computes log(1 - tanh(x)^2 + eps) per
// component as a constant vector.
func (g *Gaussian) squashCorrection(preSquash anyvec.Vector) anyvec.Vector {
	comps := vectorToComponents(preSquash)
	res := make([]float64, len(comps))
	for i, x := range comps {
		th := math.Tanh(x)
		res[i] = math.Log(1 - th*th + squashEpsilon)
	}
	c := preSquash.Creator()
	return c.MakeVectorData(c.MakeNumericList(res))
}

func (g *Gaussian) assertShape(n, batch int) {
	if n != batch*g.Dim {
		panic("batch size times dimension must equal component count")
	}
}

func clampLogStd(x float64) float64 {
	return math.Max(LogStdMin, math.Min(LogStdMax, x))
}

func sumDims(v anydiff.Res, batch, dim int) anydiff.Res {
	return anydiff.SumCols(&anydiff.Matrix{Data: v, Rows: batch, Cols: dim})
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
