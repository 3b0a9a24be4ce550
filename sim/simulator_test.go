package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoAgentScenario(seed int64) *ScenarioSpec {
	return &ScenarioSpec{
		Version: "1",
		Seed:    seed,
		Horizon: 300,
		Environment: EnvironmentSpec{
			Arms:  []float64{0.1, 0.5, 0.9},
			Noise: 0.1,
		},
		Agents: []AgentSpec{
			{ID: "scout", Policy: "random", DecisionPeriod: 3, TakeActionsBetweenDecisions: true},
			{ID: "exploiter", Policy: "greedy", DecisionPeriod: 1},
		},
	}
}

func runScenario(t *testing.T, spec *ScenarioSpec) *Metrics {
	t.Helper()
	DisposeAcademy()
	s, err := NewSimulator(spec)
	require.NoError(t, err)
	s.Run()
	DisposeAcademy()
	return s.Metrics
}

func TestSimulator_SameSeedSameResults(t *testing.T) {
	first := runScenario(t, twoAgentScenario(7))
	second := runScenario(t, twoAgentScenario(7))

	assert.Equal(t, first.PerAgent, second.PerAgent)
	assert.Equal(t, first.SimEndedStep, second.SimEndedStep)
}

func TestSimulator_DifferentSeedDifferentRewards(t *testing.T) {
	first := runScenario(t, twoAgentScenario(7))
	second := runScenario(t, twoAgentScenario(8))

	// cadence counts are seed-independent; sampled rewards are not
	assert.Equal(t, first.Stats("scout").Decisions, second.Stats("scout").Decisions)
	assert.NotEqual(t, first.Stats("scout").TotalReward, second.Stats("scout").TotalReward)
}

func TestSimulator_CadenceCountsOverHorizon(t *testing.T) {
	spec := &ScenarioSpec{
		Seed:        1,
		Horizon:     20,
		Environment: EnvironmentSpec{Arms: []float64{1.0}, Noise: 0},
		Agents: []AgentSpec{
			{ID: "a", Policy: "random", DecisionPeriod: 5, TakeActionsBetweenDecisions: true},
		},
	}
	m := runScenario(t, spec)

	st := m.Stats("a")
	// decisions at steps 0, 5, 10, 15; actions on every step
	assert.Equal(t, 4, st.Decisions)
	assert.Equal(t, 20, st.StepsActed)
	assert.Equal(t, 16, st.RepeatedActions)
	// single arm paying 1.0 with no noise
	assert.InDelta(t, 20.0, st.TotalReward, 1e-9)
	assert.Equal(t, int64(20), m.SimEndedStep)
}

func TestSimulator_FlagOffActsOnlyOnDecisionSteps(t *testing.T) {
	spec := &ScenarioSpec{
		Seed:        1,
		Horizon:     8,
		Environment: EnvironmentSpec{Arms: []float64{1.0}, Noise: 0},
		Agents: []AgentSpec{
			{ID: "a", Policy: "random", DecisionPeriod: 4},
		},
	}
	m := runScenario(t, spec)

	st := m.Stats("a")
	assert.Equal(t, 2, st.Decisions, "decisions at steps 0 and 4")
	assert.Equal(t, 2, st.StepsActed)
	assert.Equal(t, 0, st.RepeatedActions)
	assert.Equal(t, int64(8), m.SimEndedStep, "a full run completes exactly horizon steps")
}

func TestSimulator_SpawnAndRemoveLifecycle(t *testing.T) {
	spec := &ScenarioSpec{
		Seed:        1,
		Horizon:     20,
		Environment: EnvironmentSpec{Arms: []float64{1.0}, Noise: 0},
		Agents: []AgentSpec{
			{ID: "transient", Policy: "random", DecisionPeriod: 1,
				SpawnStep: 5, RemoveStep: 10},
			{ID: "resident", Policy: "random", DecisionPeriod: 1},
		},
	}

	DisposeAcademy()
	s, err := NewSimulator(spec)
	require.NoError(t, err)
	assert.False(t, s.AgentLive("transient"), "not yet spawned")
	assert.True(t, s.AgentLive("resident"))

	s.Run()
	DisposeAcademy()

	// participates in steps 5..9 only: spawn and remove events at a tick
	// execute before that tick's step event
	st := s.Metrics.Stats("transient")
	assert.Equal(t, 5, st.Decisions)
	assert.Equal(t, 5, st.StepsActed)
	assert.False(t, s.AgentLive("transient"))

	assert.Equal(t, 20, s.Metrics.Stats("resident").StepsActed)
}

func TestNewSimulator_RejectsInvalidScenario(t *testing.T) {
	DisposeAcademy()
	defer DisposeAcademy()

	_, err := NewSimulator(&ScenarioSpec{Horizon: 0})
	assert.Error(t, err)

	_, err = NewSimulator(&ScenarioSpec{
		Horizon:     10,
		Environment: EnvironmentSpec{Arms: []float64{1.0}},
		Agents:      []AgentSpec{{ID: "a", DecisionPeriod: 21}},
	})
	assert.Error(t, err)
}

func TestSimulator_RunIDsAreUnique(t *testing.T) {
	first := runScenario(t, twoAgentScenario(7))
	second := runScenario(t, twoAgentScenario(7))
	assert.NotEqual(t, first.RunID, second.RunID)
}
