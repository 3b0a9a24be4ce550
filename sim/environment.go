package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Environment is a multi-armed bandit: each arm pays its configured mean
// reward plus Gaussian noise. It keeps a per-agent running value estimate
// and pull count per arm, which form the agent's observation.
type Environment struct {
	armMeans []float64
	noise    float64
	rng      *rand.Rand

	estimates map[string][]float64
	pulls     map[string][]int
}

// NewEnvironment builds a bandit with the given arm means and reward noise
// standard deviation. rng drives the reward noise only.
func NewEnvironment(armMeans []float64, noise float64, rng *rand.Rand) *Environment {
	return &Environment{
		armMeans:  armMeans,
		noise:     noise,
		rng:       rng,
		estimates: make(map[string][]float64),
		pulls:     make(map[string][]int),
	}
}

// NumArms returns the number of arms.
func (e *Environment) NumArms() int {
	return len(e.armMeans)
}

// RegisterAgent initializes per-agent statistics. Registering an already
// known agent resets its statistics.
func (e *Environment) RegisterAgent(id string) {
	e.estimates[id] = make([]float64, len(e.armMeans))
	e.pulls[id] = make([]int, len(e.armMeans))
}

// DeregisterAgent drops an agent's statistics.
func (e *Environment) DeregisterAgent(id string) {
	delete(e.estimates, id)
	delete(e.pulls, id)
}

// Observe returns the agent's view of the bandit. Unknown agents observe
// zeroed estimates. The slices are copies; mutating them cannot corrupt the
// environment's running statistics.
func (e *Environment) Observe(id string) Observation {
	obs := Observation{
		NumArms:        len(e.armMeans),
		ValueEstimates: make([]float64, len(e.armMeans)),
		PullCounts:     make([]int, len(e.armMeans)),
	}
	if est, ok := e.estimates[id]; ok {
		copy(obs.ValueEstimates, est)
		copy(obs.PullCounts, e.pulls[id])
	}
	return obs
}

// Step applies the agent's chosen arm and returns the sampled reward,
// updating the agent's running estimate for that arm. An out-of-range arm
// is dropped with a warning and pays nothing.
func (e *Environment) Step(id string, arm int) float64 {
	if arm < 0 || arm >= len(e.armMeans) {
		logrus.Warnf("agent %s pulled out-of-range arm %d; ignored", id, arm)
		return 0
	}
	reward := e.armMeans[arm]
	if e.noise > 0 {
		reward += e.noise * e.rng.NormFloat64()
	}
	if est, ok := e.estimates[id]; ok {
		e.pulls[id][arm]++
		n := float64(e.pulls[id][arm])
		est[arm] += (reward - est[arm]) / n
	}
	return reward
}
