package ppo

import (
	"github.com/unixpickle/essentials"

	synapserl "github.com/arbit3rr/Synapse-RL"
)

// Train runs the full rollout/update cycle for the given
// number of episodes and returns the per-episode return
// totals.
//
// Rollouts are collected under the frozen behavior
// policy; one synchronous update runs at each episode
// end. Environment errors abort training.
func (a *Agent) Train(env synapserl.Env, episodes int) ([]float64, error) {
	returns := make([]float64, 0, episodes)
	for episode := 0; episode < episodes; episode++ {
		score, length, err := a.RunEpisode(env)
		if err != nil {
			return returns, essentials.AddCtx("train", err)
		}
		a.Learn()
		sink := a.sink()
		sink.Scalar("episode/return", score, episode)
		sink.Scalar("episode/length", float64(length), episode)
		returns = append(returns, score)
	}
	return returns, nil
}

// RunEpisode rolls out a single episode under the
// behavior policy, filling the trajectory buffer. It
// returns the total reward and the episode length.
func (a *Agent) RunEpisode(env synapserl.Env) (score float64, length int, err error) {
	defer essentials.AddCtxTo("run episode", &err)
	state, err := env.Reset()
	if err != nil {
		return 0, 0, err
	}
	for {
		action, preSquash, logProb := a.Behavior.SelectAction(state, false)
		if a.ActionRange != nil {
			action = a.ActionRange.Map(action)
		}
		next, reward, done, err := env.Step(action)
		if err != nil {
			return score, length, err
		}
		a.Buffer.Push(synapserl.Transition{
			State:     state,
			PreSquash: preSquash,
			LogProb:   logProb,
			Reward:    reward,
			Done:      done,
		})
		state = next
		score += reward
		length++
		if done {
			return score, length, nil
		}
	}
}
