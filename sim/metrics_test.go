package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordCounts(t *testing.T) {
	m := NewMetrics("test-run")

	m.Record("a", true, true, 1.0)  // fresh decision, acted
	m.Record("a", false, true, 2.0) // repeated action
	m.Record("a", false, true, 3.0)
	m.Record("a", false, false, 0) // idle step, no counters move

	st := m.Stats("a")
	assert.Equal(t, 1, st.Decisions)
	assert.Equal(t, 2, st.RepeatedActions)
	assert.Equal(t, 3, st.StepsActed)
	assert.InDelta(t, 6.0, st.TotalReward, 1e-9)
}

func TestMetrics_StatsUnknownAgentZeroValued(t *testing.T) {
	m := NewMetrics("test-run")
	assert.Equal(t, AgentStats{}, m.Stats("ghost"))
}

func TestMetrics_AgentsTrackedIndependently(t *testing.T) {
	m := NewMetrics("test-run")
	m.Record("a", true, true, 1.0)
	m.Record("b", false, true, 5.0)

	assert.Equal(t, 1, m.Stats("a").Decisions)
	assert.Equal(t, 0, m.Stats("b").Decisions)
	assert.Equal(t, 1, m.Stats("b").RepeatedActions)
}
