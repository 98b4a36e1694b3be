// Package automation runs scripted batches of sorts: YAML scenarios and
// sweeps over random inputs of growing size.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pace"
	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/sorting"
)

var ErrEmptyScenario = errors.New("scenario has no steps")

// Scenario defines a scripted sequence of sorts
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Seed        int64          `yaml:"seed"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep sorts Input, or a random array of RandomSize values when Input
// is empty.
type ScenarioStep struct {
	Algorithm  string `yaml:"algorithm"`
	Input      string `yaml:"input"`
	RandomSize int    `yaml:"random_size"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Algorithm catalog.ID
	Input     []float64
	Outcome   sorting.Outcome
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Runner executes batches without pacing.
type Runner struct {
	registry *sorting.Registry
	engine   *sorting.Engine
	maxSize  int
	log      logrus.FieldLogger
}

func NewRunner(maxSize int, log logrus.FieldLogger) *Runner {
	if maxSize <= 0 {
		maxSize = scale.DefaultMaxSize
	}
	if log == nil {
		log = logging.Discard()
	}
	eng := sorting.New(pace.Instant{}, 0)
	eng.AddMetric(func() metrics.Metric { return metrics.NewPeakDisorder() })
	return &Runner{
		registry: sorting.NewRegistry(),
		engine:   eng,
		maxSize:  maxSize,
		log:      log,
	}
}

// RunScenario executes all steps in a scenario, stopping at the first error.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	rng := rand.New(rand.NewSource(scenario.Seed))
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		alg, err := r.registry.Lookup(step.Algorithm)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		var values []float64
		if step.Input != "" {
			values, err = scale.Parse(step.Input, r.maxSize)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		} else {
			values = scale.Random(rng, step.RandomSize, scale.DefaultRandomMax)
		}

		r.log.WithFields(logrus.Fields{
			"scenario":  scenario.Name,
			"step":      i + 1,
			"of":        len(scenario.Steps),
			"algorithm": alg.ID(),
		}).Info("running scenario step")

		out, err := r.sort(ctx, alg, values)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Algorithm: alg.ID(), Input: values, Outcome: out})
	}

	return results, nil
}

func (r *Runner) sort(ctx context.Context, alg sorting.Algorithm, values []float64) (sorting.Outcome, error) {
	seq, err := sorting.NewSequence(values, r.maxSize)
	if err != nil {
		return sorting.Outcome{}, err
	}
	return r.engine.Sort(ctx, alg, seq, nil)
}

// SizeSweep runs every algorithm over random inputs of sizes MinSize..MaxSize.
type SizeSweep struct {
	Algorithms []catalog.ID
	MinSize    int
	MaxSize    int
	Stride     int
	Trials     int
	Seed       int64
}

// SweepResult holds averaged counters for one algorithm at one size.
type SweepResult struct {
	Algorithm   catalog.ID
	Size        int
	Comparisons float64
	Swaps       float64
	Steps       float64
}

// RunSweep executes a size sweep. Every algorithm sees the same inputs.
func (r *Runner) RunSweep(ctx context.Context, sweep SizeSweep) ([]SweepResult, error) {
	if sweep.MinSize <= 0 || sweep.MaxSize < sweep.MinSize || sweep.MaxSize > r.maxSize {
		return nil, fmt.Errorf("sweep sizes must satisfy 0 < min <= max <= %d", r.maxSize)
	}
	if sweep.Stride <= 0 {
		sweep.Stride = 1
	}
	if sweep.Trials <= 0 {
		sweep.Trials = 1
	}
	if len(sweep.Algorithms) == 0 {
		sweep.Algorithms = catalog.IDs()
	}

	algs := make([]sorting.Algorithm, len(sweep.Algorithms))
	for i, id := range sweep.Algorithms {
		alg, err := r.registry.Get(id)
		if err != nil {
			return nil, err
		}
		algs[i] = alg
	}

	rng := rand.New(rand.NewSource(sweep.Seed))
	var results []SweepResult

	for size := sweep.MinSize; size <= sweep.MaxSize; size += sweep.Stride {
		inputs := make([][]float64, sweep.Trials)
		for t := range inputs {
			inputs[t] = scale.Random(rng, size, scale.DefaultRandomMax)
		}

		for _, alg := range algs {
			res := SweepResult{Algorithm: alg.ID(), Size: size}
			for _, values := range inputs {
				out, err := r.sort(ctx, alg, values)
				if err != nil {
					return results, err
				}
				res.Comparisons += float64(out.Counts.Comparisons)
				res.Swaps += float64(out.Counts.Swaps)
				res.Steps += float64(out.Steps)
			}
			n := float64(sweep.Trials)
			res.Comparisons /= n
			res.Swaps /= n
			res.Steps /= n
			results = append(results, res)
		}

		r.log.WithField("size", size).Debug("sweep size done")
	}

	return results, nil
}
