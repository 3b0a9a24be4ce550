package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Decision period bounds. The period is an integer cadence: a new decision
// is requested whenever the academy step count is a multiple of it.
const (
	MinDecisionPeriod = 1
	MaxDecisionPeriod = 20

	// DefaultDecisionPeriod is applied when a scenario omits the period.
	DefaultDecisionPeriod = 5
)

// DecisionRequestOverride replaces the built-in cadence logic entirely.
// When installed, it receives the exact academy step count, the configured
// period, and the take-actions-between-decisions flag; the requester itself
// takes no further action on that step.
type DecisionRequestOverride func(stepCount, period int, takeActionsBetween bool)

// DecisionRequester schedules decision and action requests for a single
// agent. Once attached it is driven by the Academy's pre-step callback: on
// steps where StepCount mod DecisionPeriod == 0 it asks the agent for a new
// decision, and on every step where TakeActionsBetweenDecisions is true it
// asks the agent to continue its current action.
type DecisionRequester struct {
	// DecisionPeriod is the step cadence at which new decisions are
	// requested. Must be in [MinDecisionPeriod, MaxDecisionPeriod].
	// A period of 1 requests a decision every step, which makes
	// TakeActionsBetweenDecisions a no-op for decision cadence.
	DecisionPeriod int

	// TakeActionsBetweenDecisions requests continuation of the previous
	// action on every step, independently of whether a new decision was
	// also requested on that step.
	TakeActionsBetweenDecisions bool

	// Override, when non-nil, delegates the whole per-step choice to the
	// caller. Neither built-in branch runs while it is set.
	Override DecisionRequestOverride

	agent    Agent
	handle   PreStepHandle
	attached bool
}

// NewDecisionRequester builds a requester for agent. The period is validated
// against [MinDecisionPeriod, MaxDecisionPeriod]; the requester is returned
// detached and takes no effect until Attach is called.
func NewDecisionRequester(agent Agent, period int, takeActionsBetween bool) (*DecisionRequester, error) {
	if err := ValidateDecisionPeriod(period); err != nil {
		return nil, err
	}
	return &DecisionRequester{
		DecisionPeriod:              period,
		TakeActionsBetweenDecisions: takeActionsBetween,
		agent:                       agent,
	}, nil
}

// ValidateDecisionPeriod checks period against the allowed cadence range.
func ValidateDecisionPeriod(period int) error {
	if period < MinDecisionPeriod || period > MaxDecisionPeriod {
		return fmt.Errorf("decision period %d out of range [%d,%d]",
			period, MinDecisionPeriod, MaxDecisionPeriod)
	}
	return nil
}

// Attach subscribes the requester to the global Academy's pre-step callback.
// A missing agent is reported as a diagnostic but tolerated: the requester
// still registers and its per-step requests become no-ops. Attaching twice
// is a no-op.
func (r *DecisionRequester) Attach() {
	if r.attached {
		return
	}
	if r.agent == nil {
		logrus.Error("DecisionRequester attached without an agent; requests will be dropped")
	}
	r.handle = GetAcademy().SubscribePreStep(r.makeRequests)
	r.attached = true
}

// Detach unsubscribes the requester from the Academy. Safe to call when
// already detached, and when the Academy itself has been torn down.
func (r *DecisionRequester) Detach() {
	if !r.attached {
		return
	}
	r.attached = false
	if !AcademyInitialized() {
		return
	}
	GetAcademy().UnsubscribePreStep(r.handle)
}

// makeRequests is the per-step cadence gate.
func (r *DecisionRequester) makeRequests(stepCount int) {
	if r.Override != nil {
		r.Override(stepCount, r.DecisionPeriod, r.TakeActionsBetweenDecisions)
		return
	}
	if stepCount%r.DecisionPeriod == 0 && r.agent != nil {
		r.agent.RequestDecision()
	}
	if r.TakeActionsBetweenDecisions && r.agent != nil {
		r.agent.RequestAction()
	}
}
