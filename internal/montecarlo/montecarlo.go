// Package montecarlo quantifies forecast-input uncertainty by running a
// caller-supplied valuation pipeline over many independently perturbed copies
// of a weather series.
package montecarlo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sagm07/SolarOS/internal/analysis"
	"github.com/sagm07/SolarOS/internal/model"
)

// Pipeline maps one perturbed weather series to a scalar outcome (typically
// an optimized net value). Each trial receives its own copy of the series,
// so implementations must not rely on shared mutable state.
type Pipeline func(steps []model.WeatherStep) (float64, error)

type Config struct {
	// Trials is the number of perturbed runs. Default 50.
	Trials int

	// IrradianceSigma is the standard deviation of the multiplicative noise
	// applied to irradiance (mean 1.0). Default 0.10.
	IrradianceSigma float64

	// TemperatureSigma is the standard deviation of the additive noise
	// applied to temperature, in degrees C. Default 1.5.
	TemperatureSigma float64

	// Seed fixes the noise streams. Two runs with the same seed and inputs
	// produce identical outcomes.
	Seed uint64

	// Workers caps pipeline concurrency. Default is the CPU count, capped
	// at Trials.
	Workers int
}

func (c Config) withDefaults() Config {
	if c.Trials <= 0 {
		c.Trials = 50
	}
	if c.IrradianceSigma <= 0 {
		c.IrradianceSigma = 0.10
	}
	if c.TemperatureSigma <= 0 {
		c.TemperatureSigma = 1.5
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Workers > c.Trials {
		c.Workers = c.Trials
	}
	return c
}

// Outcome is the empirical distribution digest over completed trials.
// SimulationsRun can be lower than Config.Trials when the context is
// cancelled mid-run.
type Outcome struct {
	Band           model.UncertaintyBand `json:"band"`
	Mean           float64               `json:"mean"`
	StdDev         float64               `json:"std_dev"`
	SimulationsRun int                   `json:"simulations_run"`
	Outcomes       []float64             `json:"-"`
}

// Run executes cfg.Trials perturbed pipeline evaluations.
//
// Each trial draws from its own PCG stream keyed by (Seed, trial index), so
// outcomes are deterministic for a fixed seed regardless of worker count or
// scheduling. Cancellation stops dispatching new trials; trials already in
// flight finish and are included.
func Run(ctx context.Context, base []model.WeatherStep, cfg Config, pipeline Pipeline) (*Outcome, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline is nil")
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("empty weather series")
	}
	cfg = cfg.withDefaults()

	results := make([]float64, cfg.Trials)
	done := make([]bool, cfg.Trials)

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range jobs {
				v, err := runTrial(base, cfg, uint64(trial), pipeline)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("trial %d: %w", trial, err)
					}
				} else {
					results[trial] = v
					done[trial] = true
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for trial := 0; trial < cfg.Trials; trial++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- trial:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	outcomes := make([]float64, 0, cfg.Trials)
	for i, ok := range done {
		if ok {
			outcomes = append(outcomes, results[i])
		}
	}
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("no trials completed: %w", ctx.Err())
	}

	s := analysis.Summarize(outcomes)
	return &Outcome{
		Band:           model.NewUncertaintyBand(s.P10, s.P50, s.P90),
		Mean:           s.Mean,
		StdDev:         s.StdDev,
		SimulationsRun: len(outcomes),
		Outcomes:       outcomes,
	}, nil
}

func runTrial(base []model.WeatherStep, cfg Config, trial uint64, pipeline Pipeline) (float64, error) {
	src := rand.NewPCG(cfg.Seed, trial)
	irrNoise := distuv.Normal{Mu: 1.0, Sigma: cfg.IrradianceSigma, Src: src}
	tempNoise := distuv.Normal{Mu: 0.0, Sigma: cfg.TemperatureSigma, Src: src}

	perturbed := make([]model.WeatherStep, len(base))
	copy(perturbed, base)
	for i := range perturbed {
		perturbed[i].IrradianceWM2 *= irrNoise.Rand()
		if perturbed[i].IrradianceWM2 < 0 {
			perturbed[i].IrradianceWM2 = 0
		}
		perturbed[i].TemperatureC += tempNoise.Rand()
	}
	return pipeline(perturbed)
}

// RiskAdjustedValue converts a conservative (10th percentile) outcome into a
// monetary figure for reporting alongside the median.
func RiskAdjustedValue(p10Outcome, price float64) float64 {
	return p10Outcome * price
}
