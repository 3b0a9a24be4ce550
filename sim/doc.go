// Package sim provides a deterministic step-driven harness for scheduling
// reinforcement-learning decision requests.
//
// # Reading Guide
//
// Start with these three files to understand the core:
//   - academy.go: the global step notifier (subscribe/unsubscribe, EnvironmentStep)
//   - requester.go: the DecisionRequester cadence gate driven by academy pre-step callbacks
//   - simulator.go: the event loop that steps the academy and acts the agents
//
// # Architecture
//
// The Academy is a process-wide singleton firing one pre-step callback round
// per environment step. A DecisionRequester subscribes on Attach and, each
// step, either delegates to its Override or applies the built-in cadence:
// request a new decision when stepCount mod DecisionPeriod == 0, and request
// continuation of the previous action whenever TakeActionsBetweenDecisions
// is set. Agents only flag intent in the callbacks; the Simulator consumes
// the flags when it acts each live agent, so at most one action is applied
// per agent per step.
//
// The Simulator itself is a small discrete-event loop (container/heap event
// queue): a self-rescheduling step event plus spawn/remove events that
// exercise requester registration mid-run. Scenarios are YAML
// (ScenarioSpec); all randomness flows through a PartitionedRNG so equal
// seeds give bit-identical runs.
//
// # Key Interfaces
//
//   - Agent: RequestDecision / RequestAction, the surface a requester drives
//   - Policy: maps an Observation to an action (random, greedy)
//   - Event: timestamped unit of work executed by the Simulator
package sim
