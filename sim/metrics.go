// Tracks per-agent decision/action counts and rewards for final reporting.

package sim

import (
	"fmt"
	"sort"
	"time"
)

// AgentStats aggregates one agent's activity over a run.
type AgentStats struct {
	Decisions       int     // new decisions requested and taken
	RepeatedActions int     // steps where the previous action was replayed
	StepsActed      int     // total steps with an applied action
	TotalReward     float64 // sum of rewards received
}

// Metrics aggregates statistics about the simulation for final reporting.
// Useful for evaluating policy performance and debugging cadence behavior
// over time.
type Metrics struct {
	RunID        string
	PerAgent     map[string]*AgentStats
	SimEndedStep int64
}

// NewMetrics creates an empty Metrics tagged with the run ID.
func NewMetrics(runID string) *Metrics {
	return &Metrics{
		RunID:    runID,
		PerAgent: make(map[string]*AgentStats),
	}
}

// Record books one agent step. Steps where the agent neither decided nor
// acted leave the counters untouched.
func (m *Metrics) Record(agentID string, decided, acted bool, reward float64) {
	if !decided && !acted {
		return
	}
	st := m.PerAgent[agentID]
	if st == nil {
		st = &AgentStats{}
		m.PerAgent[agentID] = st
	}
	if decided {
		st.Decisions++
	}
	if acted {
		st.StepsActed++
		st.TotalReward += reward
		if !decided {
			st.RepeatedActions++
		}
	}
}

// Stats returns the stats recorded for the agent, zero-valued if none.
func (m *Metrics) Stats(agentID string) AgentStats {
	if st := m.PerAgent[agentID]; st != nil {
		return *st
	}
	return AgentStats{}
}

// Print displays aggregated metrics at the end of the simulation, one row
// per agent in ID order.
func (m *Metrics) Print(horizon int64, startTime time.Time) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Run ID               : %s\n", m.RunID)
	fmt.Printf("Steps Simulated      : %d / %d\n", m.SimEndedStep, horizon)

	ids := make([]string, 0, len(m.PerAgent))
	for id := range m.PerAgent {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		st := m.PerAgent[id]
		avg := 0.0
		if st.StepsActed > 0 {
			avg = st.TotalReward / float64(st.StepsActed)
		}
		fmt.Printf("Agent %-12s : decisions=%d repeats=%d acted=%d avgReward=%.4f\n",
			id, st.Decisions, st.RepeatedActions, st.StepsActed, avg)
	}
	fmt.Printf("Wall Time            : %s\n", time.Since(startTime).Round(time.Millisecond))
}
