package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioSpec is the top-level scenario configuration.
// Loaded from YAML via LoadScenarioSpec(path).
type ScenarioSpec struct {
	Version     string          `yaml:"version"`
	Seed        int64           `yaml:"seed"`
	Horizon     int64           `yaml:"horizon"`
	Environment EnvironmentSpec `yaml:"environment"`
	Agents      []AgentSpec     `yaml:"agents"`
}

// EnvironmentSpec configures the bandit environment.
type EnvironmentSpec struct {
	// Arms lists the mean reward of each arm.
	Arms []float64 `yaml:"arms"`
	// Noise is the standard deviation of the Gaussian reward noise.
	Noise float64 `yaml:"noise"`
}

// AgentSpec defines a single agent and its decision cadence.
type AgentSpec struct {
	ID     string `yaml:"id"`
	Policy string `yaml:"policy"` // "random" (default) or "greedy"
	// DecisionPeriod is the cadence at which new decisions are requested;
	// 0 means DefaultDecisionPeriod.
	DecisionPeriod int `yaml:"decision_period"`
	// TakeActionsBetweenDecisions repeats the last action on steps where
	// no new decision is requested.
	TakeActionsBetweenDecisions bool `yaml:"take_actions_between_decisions"`
	// SpawnStep is the step at which the agent attaches (0 = at start).
	SpawnStep int64 `yaml:"spawn_step,omitempty"`
	// RemoveStep is the step at which the agent detaches; it does not
	// participate in that step. 0 = never removed.
	RemoveStep int64 `yaml:"remove_step,omitempty"`
}

// LoadScenarioSpec reads and validates a scenario file. Unknown YAML fields
// are rejected to catch typos in hand-written scenarios.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec ScenarioSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks the scenario and normalizes defaults in place: an omitted
// decision period becomes DefaultDecisionPeriod and an omitted policy
// becomes "random". Idempotent.
func (s *ScenarioSpec) Validate() error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported scenario version %q", s.Version)
	}
	if s.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", s.Horizon)
	}
	if len(s.Environment.Arms) == 0 {
		return fmt.Errorf("environment needs at least one arm")
	}
	if s.Environment.Noise < 0 {
		return fmt.Errorf("noise must be non-negative, got %f", s.Environment.Noise)
	}
	if len(s.Agents) == 0 {
		return fmt.Errorf("scenario defines no agents")
	}

	seen := make(map[string]bool, len(s.Agents))
	for i := range s.Agents {
		a := &s.Agents[i]
		if a.ID == "" {
			return fmt.Errorf("agent %d has no id", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate agent id %q", a.ID)
		}
		seen[a.ID] = true

		if a.DecisionPeriod == 0 {
			a.DecisionPeriod = DefaultDecisionPeriod
		}
		if err := ValidateDecisionPeriod(a.DecisionPeriod); err != nil {
			return fmt.Errorf("agent %q: %w", a.ID, err)
		}
		if a.Policy == "" {
			a.Policy = "random"
		}
		if _, err := NewPolicy(a.Policy); err != nil {
			return fmt.Errorf("agent %q: %w", a.ID, err)
		}
		if a.SpawnStep < 0 {
			return fmt.Errorf("agent %q: spawn_step must be non-negative", a.ID)
		}
		if a.RemoveStep != 0 && a.RemoveStep <= a.SpawnStep {
			return fmt.Errorf("agent %q: remove_step %d must be after spawn_step %d",
				a.ID, a.RemoveStep, a.SpawnStep)
		}
	}
	return nil
}
