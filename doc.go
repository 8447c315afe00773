// Package synapserl provides building blocks for
// on-policy reinforcement learning: an environment
// contract, single-episode trajectory storage, a
// tanh-squashed Gaussian action distribution, and
// reward processing.
//
// The training algorithm itself lives in the ppo
// sub-package.
package synapserl
