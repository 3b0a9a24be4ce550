package sim

import (
	"math/rand"
	"testing"
)

func newTestEnv(arms []float64, noise float64) *Environment {
	return NewEnvironment(arms, noise, rand.New(rand.NewSource(1)))
}

func TestEnvironment_NoNoiseRewardEqualsMean(t *testing.T) {
	env := newTestEnv([]float64{0.2, 0.8}, 0)
	env.RegisterAgent("a")

	if got := env.Step("a", 1); got != 0.8 {
		t.Errorf("Step reward: got %v, want 0.8", got)
	}
	if got := env.Step("a", 0); got != 0.2 {
		t.Errorf("Step reward: got %v, want 0.2", got)
	}
}

func TestEnvironment_EstimateTracksMean(t *testing.T) {
	env := newTestEnv([]float64{0.5}, 0)
	env.RegisterAgent("a")

	for i := 0; i < 10; i++ {
		env.Step("a", 0)
	}

	obs := env.Observe("a")
	if obs.PullCounts[0] != 10 {
		t.Errorf("pull count: got %d, want 10", obs.PullCounts[0])
	}
	if diff := obs.ValueEstimates[0] - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("estimate: got %v, want 0.5", obs.ValueEstimates[0])
	}
}

func TestEnvironment_OutOfRangeArmIgnored(t *testing.T) {
	env := newTestEnv([]float64{0.5}, 0)
	env.RegisterAgent("a")

	if got := env.Step("a", 3); got != 0 {
		t.Errorf("out-of-range arm reward: got %v, want 0", got)
	}
	if got := env.Step("a", -1); got != 0 {
		t.Errorf("negative arm reward: got %v, want 0", got)
	}
	if n := env.Observe("a").PullCounts[0]; n != 0 {
		t.Errorf("invalid pulls must not update stats, pull count %d", n)
	}
}

func TestEnvironment_ObservationDoesNotAliasInternalState(t *testing.T) {
	env := newTestEnv([]float64{0.5}, 0)
	env.RegisterAgent("a")
	env.Step("a", 0)

	obs := env.Observe("a")
	obs.ValueEstimates[0] = 99
	obs.PullCounts[0] = 99

	fresh := env.Observe("a")
	if fresh.ValueEstimates[0] == 99 {
		t.Error("mutating an observation must not corrupt the running estimates")
	}
	if fresh.PullCounts[0] != 1 {
		t.Errorf("pull count: got %d, want 1", fresh.PullCounts[0])
	}
}

func TestEnvironment_ObserveUnknownAgentZeroed(t *testing.T) {
	env := newTestEnv([]float64{0.1, 0.2, 0.3}, 0)

	obs := env.Observe("ghost")
	if obs.NumArms != 3 {
		t.Fatalf("NumArms: got %d, want 3", obs.NumArms)
	}
	for arm, v := range obs.ValueEstimates {
		if v != 0 {
			t.Errorf("estimate[%d]: got %v, want 0", arm, v)
		}
	}
}

func TestEnvironment_DeregisterDropsStats(t *testing.T) {
	env := newTestEnv([]float64{0.5}, 0)
	env.RegisterAgent("a")
	env.Step("a", 0)
	env.DeregisterAgent("a")

	if n := env.Observe("a").PullCounts[0]; n != 0 {
		t.Errorf("deregistered agent must observe zeroed stats, pull count %d", n)
	}
	// stepping a deregistered agent still pays reward, just untracked
	if got := env.Step("a", 0); got != 0.5 {
		t.Errorf("reward after deregistration: got %v, want 0.5", got)
	}
}
