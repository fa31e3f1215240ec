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
	"sync"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/classify"
	"github.com/ajroetker/go-hdc/hdc/contrib/encode"
	"github.com/ajroetker/go-hdc/hdc/contrib/workerpool"
)

// DefaultMaxClasses bounds the per-worker score buffers of a Fused when no
// explicit bound is given.
const DefaultMaxClasses = 16

// Fused is the fused encode-and-score pipeline bound to one model.
//
// Dimensions are split into contiguous ranges, one per worker slot. A slot
// computes the accumulator of each of its dimensions, thresholds it and adds
// bit*prototype[c][j] to its private score buffer for every class c. After
// the join the buffers are summed in ascending slot order and the best class
// is selected exactly as Sequential does. No hypervector is allocated.
//
// A Fused is safe for concurrent use.
type Fused struct {
	pool       *workerpool.Pool
	model      *hdc.Model
	protoRows  []hdc.PrototypeVector
	maxClasses int

	// stride is the padded length of one slot buffer, so neighbouring slots
	// do not write the same cache line.
	stride int
	bufs   sync.Pool
}

// NewFused binds model to pool for fused inference. maxClasses <= 0 selects
// DefaultMaxClasses. It fails with hdc.ErrCapacityExceeded if the model has
// more classes than maxClasses.
func NewFused(pool *workerpool.Pool, model *hdc.Model, maxClasses int) (*Fused, error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: nil worker pool", hdc.ErrInvalidInput)
	}
	if err := validateModel(model); err != nil {
		return nil, err
	}
	if maxClasses <= 0 {
		maxClasses = DefaultMaxClasses
	}
	if c := model.Classes(); c > maxClasses {
		return nil, fmt.Errorf("%w: %d classes, fused bound is %d", hdc.ErrCapacityExceeded, c, maxClasses)
	}

	return &Fused{
		pool:       pool,
		model:      model,
		protoRows:  classify.Rows(model.Prototypes),
		maxClasses: maxClasses,
		stride:     (model.Classes() + 7) &^ 7,
	}, nil
}

// MaxClasses returns the class bound the Fused was built with.
func (f *Fused) MaxClasses() int {
	return f.maxClasses
}

// getBuffers returns n zeroed slot buffers backed by one allocation.
func (f *Fused) getBuffers(n int) *[]int64 {
	size := n * f.stride
	if v := f.bufs.Get(); v != nil {
		buf := v.(*[]int64)
		if cap(*buf) >= size {
			*buf = (*buf)[:size]
			clear(*buf)
			return buf
		}
	}
	buf := make([]int64, size)
	return &buf
}

// Infer classifies input. Scores and selected class always equal
// Sequential's; Hypervector is nil.
func (f *Fused) Infer(input []hdc.Symbol) (Result, error) {
	if err := f.model.ValidateInput(input); err != nil {
		return Result{}, err
	}

	d := f.model.Dims()
	c := f.model.Classes()
	rows := encode.Rows(f.model.Basis, input)

	slots := f.pool.Slots(d)
	bufp := f.getBuffers(slots)
	defer f.bufs.Put(bufp)
	all := *bufp

	f.pool.ParallelForWorker(d, func(slot, start, end int) {
		local := all[slot*f.stride : slot*f.stride+c]
		for j := start; j < end; j++ {
			bit := hdc.Sign(encode.RowsDimension(rows, d, j))
			classify.AddColumn(local, f.protoRows, j, bit)
		}
	})

	scores := make([]int64, c)
	for s := range slots {
		local := all[s*f.stride : s*f.stride+c]
		for k, v := range local {
			scores[k] += v
		}
	}

	return Result{
		Result:   classify.Argmax(scores, classify.NoClass),
		Scores:   scores,
		Strategy: StrategyFused,
	}, nil
}

// InferFused is a one-shot NewFused followed by Infer with
// DefaultMaxClasses.
func InferFused(pool *workerpool.Pool, model *hdc.Model, input []hdc.Symbol) (Result, error) {
	f, err := NewFused(pool, model, DefaultMaxClasses)
	if err != nil {
		return Result{}, err
	}
	return f.Infer(input)
}
