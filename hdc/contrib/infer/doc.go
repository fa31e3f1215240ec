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

// Package infer composes encoding and classification into complete
// inference pipelines.
//
// # Pipelines
//
// Three interchangeable realizations are provided:
//   - Sequential encodes the full hypervector, then scores every class in
//     ascending order on the calling goroutine. It is the reference for
//     scores and tie-breaks.
//   - Parallel encodes dimensions concurrently on a worker pool into a
//     shared hypervector (each dimension written once), then scores classes
//     concurrently and reduces per-worker best-class partials.
//   - Fused encodes and scores in a single parallel pass over dimensions.
//     Each worker thresholds a dimension and immediately adds its
//     contribution to a private length-C score buffer; buffers are summed at
//     the end. The hypervector is never materialized. The class count is
//     bounded when a Fused is constructed.
//
// All three produce identical score vectors for the same input. Selected
// classes agree except where Parallel's reduction resolves a tie
// differently, see Parallel.
//
// # Errors
//
// Inputs are validated before any work starts. Symbols outside the
// alphabet yield an error matching hdc.ErrInvalidInput; a class count above
// the fused bound yields hdc.ErrCapacityExceeded at construction.
//
// # Engine
//
// Engine binds a model, a strategy and a worker pool, and adds batch
// inference:
//
//	eng, err := infer.New(model, infer.WithStrategy(infer.StrategyFused), infer.WithWorkers(8))
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	res, err := eng.Infer(input)
//	all, err := eng.InferBatch(ctx, inputs)
package infer
