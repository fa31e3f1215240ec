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

package infer

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/workerpool"
)

// Engine runs one strategy against one model. It is safe for concurrent use.
type Engine struct {
	model    *hdc.Model
	strategy Strategy
	pool     *workerpool.Pool
	ownsPool bool
	fused    *Fused
	log      logr.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	strategy   Strategy
	workers    int
	pool       *workerpool.Pool
	maxClasses int
	log        logr.Logger
}

func defaultOptions() engineOptions {
	return engineOptions{
		strategy:   StrategySequential,
		maxClasses: DefaultMaxClasses,
		log:        logr.Discard(),
	}
}

// WithStrategy selects the pipeline (default StrategySequential).
func WithStrategy(s Strategy) Option { return func(o *engineOptions) { o.strategy = s } }

// WithWorkers sets the size of the pool the Engine creates and owns.
// n <= 0 means runtime.GOMAXPROCS(0). Ignored when WithPool is given.
func WithWorkers(n int) Option { return func(o *engineOptions) { o.workers = n } }

// WithPool shares an existing pool. The Engine never closes it.
func WithPool(p *workerpool.Pool) Option { return func(o *engineOptions) { o.pool = p } }

// WithMaxClasses sets the class bound of the fused pipeline (default 16).
func WithMaxClasses(n int) Option { return func(o *engineOptions) { o.maxClasses = n } }

// WithLogger sets the logger. V(1) logs every inference, V(2) every class
// score.
func WithLogger(l logr.Logger) Option { return func(o *engineOptions) { o.log = l } }

// New builds an Engine for model. With StrategyFused it fails with
// hdc.ErrCapacityExceeded when the model has more classes than the bound.
func New(model *hdc.Model, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateModel(model); err != nil {
		return nil, err
	}
	switch o.strategy {
	case StrategySequential, StrategyParallel, StrategyFused:
	default:
		return nil, fmt.Errorf("infer: unknown strategy %d", int(o.strategy))
	}

	e := &Engine{
		model:    model,
		strategy: o.strategy,
		pool:     o.pool,
		log:      o.log.WithName("infer").WithValues("strategy", o.strategy.String()),
	}
	if e.pool == nil {
		workers := o.workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		e.pool = workerpool.New(workers)
		e.ownsPool = true
	}

	if o.strategy == StrategyFused {
		f, err := NewFused(e.pool, model, o.maxClasses)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.fused = f
	}

	e.log.Info("engine ready",
		"dims", model.Dims(),
		"alphabet", model.Basis.Alphabet(),
		"classes", model.Classes(),
		"workers", e.pool.NumWorkers(),
		"dispatch", hdc.CurrentName())
	return e, nil
}

// Strategy returns the pipeline the Engine runs.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Workers returns the worker count of the Engine's pool.
func (e *Engine) Workers() int { return e.pool.NumWorkers() }

// Infer classifies one input.
func (e *Engine) Infer(input []hdc.Symbol) (Result, error) {
	var (
		res Result
		err error
	)
	switch e.strategy {
	case StrategyParallel:
		res, err = Parallel(e.pool, e.model, input)
	case StrategyFused:
		res, err = e.fused.Infer(input)
	default:
		res, err = Sequential(e.model, input)
	}
	if err != nil {
		return Result{}, err
	}

	if v := e.log.V(1); v.Enabled() {
		v.Info("inferred", "length", len(input), "class", res.Class, "score", res.Score)
	}
	if v := e.log.V(2); v.Enabled() {
		for c, s := range res.Scores {
			v.Info("class score", "class", c, "score", s)
		}
	}
	return res, nil
}

// InferBatch classifies inputs concurrently, at most Workers() at a time.
// Results are in input order. The first error cancels the remaining inputs
// and is returned; ctx cancellation is checked between inputs.
func (e *Engine) InferBatch(ctx context.Context, inputs [][]hdc.Symbol) ([]Result, error) {
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers())
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Infer(input)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases the pool if the Engine created it. Safe to call more than
// once.
func (e *Engine) Close() {
	if e.ownsPool {
		e.pool.Close()
	}
}
