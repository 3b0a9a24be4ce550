package sim

import "github.com/sirupsen/logrus"

// PreStepHandle identifies a registered pre-step callback so it can be
// removed later. Handles are never reused within the lifetime of an Academy.
type PreStepHandle int

type preStepSub struct {
	handle PreStepHandle
	fn     func(stepCount int)
}

// Academy is the process-wide step notifier. Once per environment step it
// fires every registered pre-step callback with the current step count, then
// advances the counter. Components that want to react to steps (decision
// requesters, sensors) subscribe on creation and unsubscribe on destruction.
//
// Single-threaded, synchronous, callback-driven: EnvironmentStep must only be
// called from the goroutine driving the simulation. No locking.
type Academy struct {
	stepCount  int
	nextHandle PreStepHandle
	preStep    []preStepSub
}

var academy *Academy

// GetAcademy returns the global Academy, lazily creating it on first use.
func GetAcademy() *Academy {
	if academy == nil {
		academy = &Academy{}
		logrus.Debug("academy initialized")
	}
	return academy
}

// AcademyInitialized reports whether the global Academy currently exists.
// Components deregistering during teardown use this to skip unsubscribing
// when the Academy itself is already gone.
func AcademyInitialized() bool {
	return academy != nil
}

// DisposeAcademy tears down the global Academy, dropping all subscribers and
// the step counter. Safe to call when no Academy exists.
func DisposeAcademy() {
	if academy == nil {
		return
	}
	logrus.Debugf("academy disposed after %d steps", academy.stepCount)
	academy = nil
}

// StepCount returns the number of environment steps completed so far.
func (a *Academy) StepCount() int {
	return a.stepCount
}

// SubscribePreStep registers fn to be called once per environment step with
// the step count current at the time of the call. Callbacks fire in
// registration order.
func (a *Academy) SubscribePreStep(fn func(stepCount int)) PreStepHandle {
	a.nextHandle++
	h := a.nextHandle
	a.preStep = append(a.preStep, preStepSub{handle: h, fn: fn})
	return h
}

// UnsubscribePreStep removes the callback registered under h. Removing an
// unknown or already-removed handle is a no-op.
func (a *Academy) UnsubscribePreStep(h PreStepHandle) {
	for i, sub := range a.preStep {
		if sub.handle == h {
			a.preStep = append(a.preStep[:i], a.preStep[i+1:]...)
			return
		}
	}
}

// EnvironmentStep fires all pre-step callbacks with the current step count,
// then increments the counter. Callbacks may subscribe or unsubscribe during
// the step: the list is snapshotted before firing, and each entry is checked
// against the live list so a callback removed mid-step never fires again.
func (a *Academy) EnvironmentStep() {
	subs := make([]preStepSub, len(a.preStep))
	copy(subs, a.preStep)
	for _, sub := range subs {
		if a.subscribed(sub.handle) {
			sub.fn(a.stepCount)
		}
	}
	a.stepCount++
}

func (a *Academy) subscribed(h PreStepHandle) bool {
	for _, sub := range a.preStep {
		if sub.handle == h {
			return true
		}
	}
	return false
}
