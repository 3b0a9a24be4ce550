package sim

import (
	"fmt"
	"math/rand"
)

// Observation is what an agent sees of the bandit environment on a decision
// step: its own running value estimate and pull count per arm.
type Observation struct {
	NumArms        int
	ValueEstimates []float64
	PullCounts     []int
}

// Policy maps an observation to an arm index in [0, NumArms).
type Policy interface {
	Name() string
	Decide(obs Observation, rng *rand.Rand) int
}

// NewPolicy returns the policy registered under name. An empty name selects
// the random policy.
func NewPolicy(name string) (Policy, error) {
	switch name {
	case "", "random":
		return RandomPolicy{}, nil
	case "greedy":
		return GreedyPolicy{Epsilon: 0.1}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (supported: random, greedy)", name)
	}
}

// RandomPolicy picks a uniformly random arm on every decision.
type RandomPolicy struct{}

func (RandomPolicy) Name() string { return "random" }

func (RandomPolicy) Decide(obs Observation, rng *rand.Rand) int {
	return rng.Intn(obs.NumArms)
}

// GreedyPolicy is epsilon-greedy: with probability Epsilon it explores a
// random arm, otherwise it exploits the arm with the highest value estimate.
// Ties resolve to the lowest arm index.
type GreedyPolicy struct {
	Epsilon float64
}

func (GreedyPolicy) Name() string { return "greedy" }

func (p GreedyPolicy) Decide(obs Observation, rng *rand.Rand) int {
	if p.Epsilon > 0 && rng.Float64() < p.Epsilon {
		return rng.Intn(obs.NumArms)
	}
	best := 0
	for arm := 1; arm < obs.NumArms; arm++ {
		if obs.ValueEstimates[arm] > obs.ValueEstimates[best] {
			best = arm
		}
	}
	return best
}
