package synapserl

import (
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
)

// NewValueNet creates a state-value estimator: a
// feed-forward network ending in a single linear output.
//
// It is trained against discounted returns-to-go with a
// mean-squared error loss.
func NewValueNet(c anyvec.Creator, stateSize int, hidden []int) anynet.Net {
	var net anynet.Net
	inSize := stateSize
	for _, h := range hidden {
		net = append(net, anynet.NewFC(c, inSize, h), anynet.Tanh)
		inSize = h
	}
	return append(net, anynet.NewFC(c, inSize, 1))
}
