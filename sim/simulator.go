package sim

import (
	"container/heap"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// agentBinding ties a live agent to its decision requester.
type agentBinding struct {
	agent     *PolicyAgent
	requester *DecisionRequester
	live      bool
}

// Simulator is the core object that holds the step clock, the environment,
// the live agents, and the event loop. It drives the global Academy: one
// EnvironmentStepEvent per step fires the registered decision requesters,
// then each live agent consumes its pending requests in spawn order.
//
// The Simulator does not dispose the Academy; the caller owns that
// lifecycle (see DisposeAcademy).
type Simulator struct {
	Clock   int64
	Horizon int64
	// RunID tags every run for log correlation.
	RunID    string
	Env      *Environment
	Metrics  *Metrics
	Scenario *ScenarioSpec

	events EventQueue
	seq    uint64
	rng    *PartitionedRNG
	// environment steps completed, for end-of-run reporting; the clock
	// alone can't tell a finished step from a merely scheduled one
	stepsCompleted int64
	agents         map[string]*agentBinding
	// spawn order, for deterministic per-step iteration
	order []string
}

// NewSimulator validates the scenario and builds a ready-to-run simulator.
// Agents with spawn_step 0 are attached immediately; later spawns and
// removals are scheduled as events.
func NewSimulator(spec *ScenarioSpec) (*Simulator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(spec.Seed))
	runID := uuid.New().String()
	s := &Simulator{
		Horizon:  spec.Horizon,
		RunID:    runID,
		Env:      NewEnvironment(spec.Environment.Arms, spec.Environment.Noise, rng.ForSubsystem(SubsystemEnvironment)),
		Metrics:  NewMetrics(runID),
		Scenario: spec,
		events:   make(EventQueue, 0),
		rng:      rng,
		agents:   make(map[string]*agentBinding),
	}

	for _, as := range spec.Agents {
		if as.SpawnStep == 0 {
			s.spawnAgent(as)
		} else {
			s.Schedule(&AgentSpawnEvent{time: as.SpawnStep, Spec: as})
		}
		if as.RemoveStep > 0 {
			s.Schedule(&AgentRemoveEvent{time: as.RemoveStep, AgentID: as.ID})
		}
	}
	s.Schedule(&EnvironmentStepEvent{time: 0})

	return s, nil
}

// Schedule pushes an event into the simulator's event queue. Events with
// equal timestamps execute in scheduling order.
func (s *Simulator) Schedule(ev Event) {
	s.seq++
	heap.Push(&s.events, queuedEvent{ev: ev, seq: s.seq})
}

// Run drains the event queue, advancing the clock until the queue empties
// or the horizon is reached.
func (s *Simulator) Run() {
	logrus.Infof("[run %s] starting: horizon=%d steps, agents=%d", s.RunID, s.Horizon, len(s.Scenario.Agents))
	for s.events.Len() > 0 {
		qe := heap.Pop(&s.events).(queuedEvent)
		ev := qe.ev
		s.Clock = ev.Timestamp()
		logrus.Debugf("[step %07d] executing %T", s.Clock, ev)
		ev.Execute(s)
		if s.Clock > s.Horizon {
			break
		}
	}
	s.Metrics.SimEndedStep = s.stepsCompleted
	logrus.Infof("[run %s] simulation ended at step %d", s.RunID, s.Clock)
}

// stepOnce runs one environment step: academy pre-step callbacks first
// (decision requesters flag their agents), then agents act in spawn order.
func (s *Simulator) stepOnce() {
	ac := GetAcademy()
	step := ac.StepCount()
	ac.EnvironmentStep()
	s.stepsCompleted++

	for _, id := range s.order {
		b := s.agents[id]
		if b == nil || !b.live {
			continue
		}
		decided, acted, reward := b.agent.Act(s.Env, s.rng.ForSubsystem(SubsystemAgent(id)))
		s.Metrics.Record(id, decided, acted, reward)
		if decided {
			logrus.Debugf("[step %07d] agent %s decided arm %d", step, id, b.agent.LastAction())
		}
	}
}

// spawnAgent attaches a new agent and its decision requester. The agent
// participates starting with the step event at the same tick.
func (s *Simulator) spawnAgent(as AgentSpec) {
	pol, err := NewPolicy(as.Policy)
	if err != nil {
		// scenario validation rejects unknown policies before this point
		logrus.Errorf("spawn of agent %s skipped: %v", as.ID, err)
		return
	}
	agent := NewPolicyAgent(as.ID, pol)
	req, err := NewDecisionRequester(agent, as.DecisionPeriod, as.TakeActionsBetweenDecisions)
	if err != nil {
		logrus.Errorf("spawn of agent %s skipped: %v", as.ID, err)
		return
	}
	req.Attach()
	s.Env.RegisterAgent(as.ID)
	s.agents[as.ID] = &agentBinding{agent: agent, requester: req, live: true}
	s.order = append(s.order, as.ID)
	logrus.Infof("agent %s spawned: policy=%s period=%d takeBetween=%v",
		as.ID, pol.Name(), as.DecisionPeriod, as.TakeActionsBetweenDecisions)
}

// removeAgent detaches an agent. Removing an unknown or already removed
// agent is a no-op.
func (s *Simulator) removeAgent(id string) {
	b := s.agents[id]
	if b == nil || !b.live {
		return
	}
	b.live = false
	b.requester.Detach()
	s.Env.DeregisterAgent(id)
}

// AgentLive reports whether the named agent is currently attached.
func (s *Simulator) AgentLive(id string) bool {
	b := s.agents[id]
	return b != nil && b.live
}
