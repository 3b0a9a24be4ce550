package sim

import "math/rand"

// Agent is the decision-making collaborator a DecisionRequester drives.
// Both operations only flag intent; the host consumes the flags when it
// steps the agent.
type Agent interface {
	// RequestDecision asks the agent to compute a new action on its next
	// step. Implies RequestAction for the same step.
	RequestDecision()
	// RequestAction asks the agent to continue its most recently decided
	// action on its next step.
	RequestAction()
}

// PolicyAgent is the concrete agent used by the simulator. It buffers the
// last action its Policy decided and replays it on steps where only a
// continuation was requested. At most one action is applied per step,
// regardless of how many requests were flagged.
type PolicyAgent struct {
	ID string

	policy          Policy
	lastAction      int
	hasDecided      bool
	decisionPending bool
	actionPending   bool
}

// NewPolicyAgent builds an agent that decides with the given policy.
func NewPolicyAgent(id string, policy Policy) *PolicyAgent {
	return &PolicyAgent{ID: id, policy: policy}
}

// RequestDecision flags the agent to ask its policy for a fresh action on
// the next Act. A new decision is always acted on, so the action flag is
// set as well.
func (a *PolicyAgent) RequestDecision() {
	a.decisionPending = true
	a.actionPending = true
}

// RequestAction flags the agent to replay its buffered action on the next Act.
func (a *PolicyAgent) RequestAction() {
	a.actionPending = true
}

// Act consumes the pending request flags: if a decision is pending the
// policy picks a new action, then the (new or buffered) action is applied to
// the environment. Returns whether a fresh decision was made, whether an
// action was applied, and the reward received. An action request with no
// prior decision is dropped since there is nothing to repeat yet.
func (a *PolicyAgent) Act(env *Environment, rng *rand.Rand) (decided, acted bool, reward float64) {
	if a.decisionPending {
		a.lastAction = a.policy.Decide(env.Observe(a.ID), rng)
		a.hasDecided = true
		a.decisionPending = false
		decided = true
	}
	if !a.actionPending {
		return decided, false, 0
	}
	a.actionPending = false
	if !a.hasDecided {
		return decided, false, 0
	}
	reward = env.Step(a.ID, a.lastAction)
	return decided, true, reward
}

// LastAction returns the most recently decided action.
func (a *PolicyAgent) LastAction() int {
	return a.lastAction
}
