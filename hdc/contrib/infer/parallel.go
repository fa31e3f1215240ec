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
	"fmt"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/classify"
	"github.com/ajroetker/go-hdc/hdc/contrib/encode"
	"github.com/ajroetker/go-hdc/hdc/contrib/workerpool"
)

// EncodeParallel encodes input with the dimensions split into contiguous
// ranges across the pool. Every dimension is computed independently and
// written exactly once; the call returns after all ranges are done.
// Symbols must already be validated.
func EncodeParallel(pool *workerpool.Pool, basis *hdc.BasisTable, input []hdc.Symbol) hdc.BipolarVector {
	h := make(hdc.BipolarVector, basis.Dims())
	pool.ParallelFor(basis.Dims(), func(start, end int) {
		encode.EncodeRange(basis, input, start, end, h)
	})
	return h
}

// Parallel classifies input on the pool in two barrier-separated stages:
// the hypervector is encoded with EncodeParallel, then classes are scored in
// contiguous ranges, one per worker slot.
//
// Each slot writes the scores of its own classes and folds them, in
// ascending order, into a private best-class partial that starts from the
// reduction identity classify.Identity(0). After the join the partials are
// combined in ascending slot order with classify.Combine.
//
// Scores always equal Sequential's. The selected class is reproducible for a
// given worker count, but may differ from Sequential's when scores tie:
//   - a slot that saw no class scoring >= 0 contributes the identity
//     (class 0, score 0), which wins a tie against an earlier slot's class
//     that scored exactly 0;
//   - when every class scores below zero the result is class 0, not
//     classify.NoClass.
func Parallel(pool *workerpool.Pool, model *hdc.Model, input []hdc.Symbol) (Result, error) {
	if pool == nil {
		return Result{}, fmt.Errorf("%w: nil worker pool", hdc.ErrInvalidInput)
	}
	if err := validate(model, input); err != nil {
		return Result{}, err
	}

	h := EncodeParallel(pool, model.Basis, input)

	c := model.Classes()
	scores := make([]int64, c)
	partials := make([]classify.Result, pool.Slots(c))
	for s := range partials {
		partials[s] = classify.Identity(0)
	}
	pool.ParallelForWorker(c, func(slot, start, end int) {
		partials[slot] = classify.ScoreRange(h, model.Prototypes, start, end, scores, partials[slot])
	})

	best := classify.Identity(0)
	for _, p := range partials {
		best = classify.Combine(best, p)
	}

	return Result{
		Result:      best,
		Scores:      scores,
		Hypervector: h,
		Strategy:    StrategyParallel,
	}, nil
}
