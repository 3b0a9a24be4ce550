package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in steps) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// queuedEvent pairs an event with the sequence number it was scheduled
// under, used to break timestamp ties deterministically.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// breaking ties by scheduling order.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].ev.Timestamp() != eq[j].ev.Timestamp() {
		return eq[i].ev.Timestamp() < eq[j].ev.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// EnvironmentStepEvent drives one academy step: pre-step callbacks fire
// (decision requesters flag their agents), then every live agent acts. The
// event reschedules itself until the step budget is spent.
type EnvironmentStepEvent struct {
	time int64
}

// Timestamp returns the scheduled time of the EnvironmentStepEvent.
func (e *EnvironmentStepEvent) Timestamp() int64 {
	return e.time
}

// Execute runs one environment step and reschedules for the next tick.
func (e *EnvironmentStepEvent) Execute(sim *Simulator) {
	sim.stepOnce()
	if next := e.time + 1; next < sim.Horizon {
		sim.Schedule(&EnvironmentStepEvent{time: next})
	}
}

// AgentSpawnEvent attaches an agent (and its decision requester) mid-run.
type AgentSpawnEvent struct {
	time int64
	Spec AgentSpec
}

// Timestamp returns the scheduled time of the AgentSpawnEvent.
func (e *AgentSpawnEvent) Timestamp() int64 {
	return e.time
}

// Execute spawns the agent before the step event at the same tick fires.
func (e *AgentSpawnEvent) Execute(sim *Simulator) {
	logrus.Infof("[step %07d] << Spawn: agent %s", e.time, e.Spec.ID)
	sim.spawnAgent(e.Spec)
}

// AgentRemoveEvent detaches an agent, deregistering its decision requester
// from the academy.
type AgentRemoveEvent struct {
	time    int64
	AgentID string
}

// Timestamp returns the scheduled time of the AgentRemoveEvent.
func (e *AgentRemoveEvent) Timestamp() int64 {
	return e.time
}

// Execute removes the agent before the step event at the same tick fires.
func (e *AgentRemoveEvent) Execute(sim *Simulator) {
	logrus.Infof("[step %07d] << Remove: agent %s", e.time, e.AgentID)
	sim.removeAgent(e.AgentID)
}
