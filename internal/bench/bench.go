// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bench runs every selected inference pipeline over a synthetic
// workload, times each call and checks every prediction against the
// sequential pipeline.
package bench

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/klauspost/cpuid/v2"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/infer"
	"github.com/ajroetker/go-hdc/hdc/contrib/synth"
	"github.com/ajroetker/go-hdc/hdc/contrib/workerpool"
	"github.com/ajroetker/go-hdc/internal/config"
)

// Recorder receives per-call observations. *metrics.Recorder implements it.
type Recorder interface {
	ObserveInference(strategy string, d time.Duration)
	ObserveError(strategy string)
	IncMismatch(strategy string)
	SetWorkers(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveInference(string, time.Duration) {}
func (nopRecorder) ObserveError(string)                    {}
func (nopRecorder) IncMismatch(string)                     {}
func (nopRecorder) SetWorkers(int)                         {}

// HostInfo describes the machine a report was produced on.
type HostInfo struct {
	Brand         string
	PhysicalCores int
	LogicalCores  int
	Dispatch      string
}

// Host returns the current machine's HostInfo.
func Host() HostInfo {
	return HostInfo{
		Brand:         cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		Dispatch:      hdc.CurrentName(),
	}
}

// StrategyReport summarizes one pipeline's runs.
type StrategyReport struct {
	Strategy   infer.Strategy
	Runs       int
	Mean       time.Duration
	StdDev     time.Duration
	Min        time.Duration
	Max        time.Duration
	Mismatches int
}

// Report is the outcome of Run.
type Report struct {
	Host       HostInfo
	Workers    int
	Inputs     int
	Strategies []StrategyReport
}

// TotalMismatches sums mismatches over all strategies.
func (r *Report) TotalMismatches() int {
	return lo.SumBy(r.Strategies, func(s StrategyReport) int { return s.Mismatches })
}

// Write prints the report in human readable form.
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "CPU: %s (%d physical / %d logical cores), dispatch %s\n",
		r.Host.Brand, r.Host.PhysicalCores, r.Host.LogicalCores, r.Host.Dispatch)
	for _, s := range r.Strategies {
		name := s.Strategy.String()
		fmt.Fprintf(&b, "%s average: %v (stddev %v, min %v, max %v, %d runs)\n",
			strings.ToUpper(name[:1])+name[1:], s.Mean, s.StdDev, s.Min, s.Max, s.Runs)
	}
	for _, s := range r.Strategies {
		if s.Mismatches > 0 {
			fmt.Fprintf(&b, "%s mismatches: %d of %d\n", s.Strategy, s.Mismatches, r.Inputs)
		}
	}
	fmt.Fprintf(&b, "Number of workers: %d\n", r.Workers)
	_, err := io.WriteString(w, b.String())
	return err
}

// Run builds a synthetic model and workload from cfg and runs every
// configured strategy on every input through RunModel. rec may be nil.
func Run(ctx context.Context, cfg *config.Config, log logr.Logger, rec Recorder) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategies, err := cfg.ParseStrategies()
	if err != nil {
		return nil, err
	}

	pool := workerpool.New(cfg.Runtime.Workers)
	defer pool.Close()

	gen := synth.Generator{Seed: cfg.Model.Seed, Pool: pool}
	model, err := gen.Model(cfg.Model.Alphabet, cfg.Model.Classes, cfg.Model.Dims)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	inputs := gen.Inputs(cfg.Workload.Inputs, cfg.Workload.InputLength, cfg.Model.Alphabet)
	log.Info("workload ready", "config", cfg.String(), "workers", pool.NumWorkers())

	return RunModel(ctx, pool, model, inputs, strategies, cfg.Runtime.MaxClasses, log, rec)
}

// RunModel runs every strategy on every input against model, sharing pool.
// Predictions that differ from the sequential pipeline are logged and
// counted; they do not fail the run. maxClasses bounds the fused pipeline
// (<= 0 selects infer.DefaultMaxClasses). rec may be nil.
func RunModel(ctx context.Context, pool *workerpool.Pool, model *hdc.Model, inputs [][]hdc.Symbol,
	strategies []infer.Strategy, maxClasses int, log logr.Logger, rec Recorder) (*Report, error) {
	if rec == nil {
		rec = nopRecorder{}
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: nil worker pool", hdc.ErrInvalidInput)
	}
	rec.SetWorkers(pool.NumWorkers())

	engines := make([]*infer.Engine, len(strategies))
	for i, s := range strategies {
		eng, err := infer.New(model,
			infer.WithStrategy(s),
			infer.WithPool(pool),
			infer.WithMaxClasses(maxClasses),
			infer.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s engine: %w", s, err)
		}
		defer eng.Close()
		engines[i] = eng
	}

	timings := make([][]float64, len(strategies))
	mismatches := make([]int, len(strategies))

	for n, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		baseline, err := infer.Sequential(model, input)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", n, err)
		}

		for i, eng := range engines {
			name := eng.Strategy().String()
			start := time.Now()
			res, err := eng.Infer(input)
			elapsed := time.Since(start)
			if err != nil {
				rec.ObserveError(name)
				return nil, fmt.Errorf("%s input %d: %w", name, n, err)
			}
			rec.ObserveInference(name, elapsed)
			timings[i] = append(timings[i], elapsed.Seconds())

			if res.Class != baseline.Class {
				mismatches[i]++
				rec.IncMismatch(name)
				log.Info("prediction mismatch",
					"input", n,
					"strategy", name,
					"class", res.Class,
					"score", res.Score,
					"sequentialClass", baseline.Class,
					"sequentialScore", baseline.Score)
				log.V(1).Info("mismatched input", "input", n, "symbols", input)
			}
		}
	}

	report := &Report{
		Host:    Host(),
		Workers: pool.NumWorkers(),
		Inputs:  len(inputs),
	}
	for i, s := range strategies {
		report.Strategies = append(report.Strategies, summarize(s, timings[i], mismatches[i]))
	}
	log.Info("run complete", "inputs", len(inputs), "mismatches", report.TotalMismatches())
	return report, nil
}

func summarize(s infer.Strategy, seconds []float64, mismatches int) StrategyReport {
	r := StrategyReport{Strategy: s, Runs: len(seconds), Mismatches: mismatches}
	if len(seconds) == 0 {
		return r
	}
	mean, std := stat.MeanStdDev(seconds, nil)
	if len(seconds) < 2 {
		std = 0
	}
	r.Mean = toDuration(mean)
	r.StdDev = toDuration(std)
	r.Min = toDuration(lo.Min(seconds))
	r.Max = toDuration(lo.Max(seconds))
	return r
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
