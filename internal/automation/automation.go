package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/registry"
	"github.com/san-kum/algoviz/internal/stepper"
	"github.com/san-kum/algoviz/internal/trace"
)

// Scenario defines a scripted batch of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Preset is applied first, then any input
// fields set on the step.
type ScenarioStep struct {
	Algorithm     string                 `yaml:"algorithm"`
	Preset        string                 `yaml:"preset"`
	Values        []int                  `yaml:"values"`
	Amount        *int                   `yaml:"amount"`
	Denominations []int                  `yaml:"denominations"`
	Size          int                    `yaml:"size"`
	Knapsack      *config.KnapsackConfig `yaml:"knapsack"`
	SaveAs        string                 `yaml:"save_as"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Algorithm  string
	Transcript *trace.Transcript
	SavedTo    string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the step's input on top of base.
func (s ScenarioStep) Config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if s.Preset != "" {
		if err := cfg.ApplyPreset(s.Algorithm, s.Preset); err != nil {
			return nil, err
		}
	}
	if len(s.Values) > 0 {
		cfg.MergeSort.Values = append([]int(nil), s.Values...)
	}
	if s.Amount != nil {
		cfg.Coins.Amount = *s.Amount
	}
	if len(s.Denominations) > 0 {
		cfg.Coins.Denominations = append([]int(nil), s.Denominations...)
	}
	if s.Size > 0 {
		cfg.NQueens.Size = s.Size
	}
	if s.Knapsack != nil {
		if s.Knapsack.Capacity > 0 {
			cfg.Knapsack.Capacity = s.Knapsack.Capacity
		}
		if len(s.Knapsack.Items) > 0 {
			cfg.Knapsack.Items = append(cfg.Knapsack.Items[:0:0], s.Knapsack.Items...)
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario without pacing. A step
// with SaveAs also writes its transcript as JSON.
func RunScenario(ctx context.Context, scenario *Scenario, reg *registry.Registry, base *config.Config, logger *slog.Logger) ([]StepResult, error) {
	if base == nil {
		base = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "algorithm", step.Algorithm, "preset", step.Preset)

		cfg, err := step.Config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		seq, err := reg.New(step.Algorithm, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		tr := trace.Record(seq, cfg.Section(step.Algorithm))
		res := StepResult{Algorithm: step.Algorithm, Transcript: tr}
		if step.SaveAs != "" {
			if err := trace.ExportJSON(step.SaveAs, tr); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.SavedTo = step.SaveAs
		}
		logger.Debug("step complete", "step", i+1, "events", tr.Steps)
		results = append(results, res)
	}

	return results, nil
}

// Summary tallies event kinds across every step.
func Summary(results []StepResult) map[stepper.Kind]int {
	total := make(map[stepper.Kind]int)
	for _, r := range results {
		for k, n := range trace.Count(r.Transcript.Events) {
			total[k] += n
		}
	}
	return total
}
