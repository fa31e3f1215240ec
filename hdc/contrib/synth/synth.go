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

// Package synth generates reproducible synthetic basis tables, prototype
// tables and input sequences for tests and benchmarks.
//
// Every row is drawn from its own PCG stream derived from (Seed, kind, row),
// so the output depends only on the seed and the requested shape, never on
// how rows are spread over the worker pool.
package synth

import (
	"math/rand/v2"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/workerpool"
)

// Stream identifiers keep basis, prototype and input rows of the same index
// on unrelated streams.
const (
	streamBasis uint64 = iota + 1
	streamPrototype
	streamInput
)

// Generator draws synthetic data. The zero value is usable and generates
// rows on the calling goroutine with seed 0.
type Generator struct {
	// Seed selects the data set; equal seeds give equal data.
	Seed uint64

	// Pool, if set, generates rows in parallel.
	Pool *workerpool.Pool
}

// rng returns the stream for one row.
func (g Generator) rng(stream uint64, row int) *rand.Rand {
	return rand.New(rand.NewPCG(g.Seed, stream<<48^uint64(row)))
}

func (g Generator) forEach(n int, fn func(i int)) {
	if g.Pool == nil {
		for i := range n {
			fn(i)
		}
		return
	}
	g.Pool.ParallelForAtomic(n, fn)
}

// inputBatch is the number of input rows a worker claims at once. A row
// costs only length draws, so single-row stealing would be dominated by the
// atomic counter.
const inputBatch = 8

// forEachBatched is forEach for cheap rows, claimed inputBatch at a time.
func (g Generator) forEachBatched(n int, fn func(i int)) {
	if g.Pool == nil {
		for i := range n {
			fn(i)
		}
		return
	}
	g.Pool.ParallelForAtomicBatched(n, inputBatch, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// BasisVectors returns alphabet uniformly random bipolar vectors of length
// dims.
func (g Generator) BasisVectors(alphabet, dims int) [][]int8 {
	out := make([][]int8, alphabet)
	g.forEach(alphabet, func(s int) {
		r := g.rng(streamBasis, s)
		v := make([]int8, dims)
		for j := range v {
			if r.IntN(2) == 1 {
				v[j] = 1
			} else {
				v[j] = -1
			}
		}
		out[s] = v
	})
	return out
}

// PrototypeVectors returns classes random prototypes of length dims. Like
// the basis they are bipolar, which gives scores spread around zero.
func (g Generator) PrototypeVectors(classes, dims int) [][]int32 {
	out := make([][]int32, classes)
	g.forEach(classes, func(c int) {
		r := g.rng(streamPrototype, c)
		v := make([]int32, dims)
		for j := range v {
			if r.IntN(2) == 1 {
				v[j] = 1
			} else {
				v[j] = -1
			}
		}
		out[c] = v
	})
	return out
}

// Inputs returns count sequences of length symbols drawn uniformly from
// [0, alphabet).
func (g Generator) Inputs(count, length, alphabet int) [][]hdc.Symbol {
	out := make([][]hdc.Symbol, count)
	g.forEachBatched(count, func(n int) {
		r := g.rng(streamInput, n)
		in := make([]hdc.Symbol, length)
		for i := range in {
			in[i] = hdc.Symbol(r.IntN(alphabet))
		}
		out[n] = in
	})
	return out
}

// Model builds validated basis and prototype tables of the given shape.
func (g Generator) Model(alphabet, classes, dims int) (*hdc.Model, error) {
	basis, err := hdc.NewBasisTable(g.BasisVectors(alphabet, dims))
	if err != nil {
		return nil, err
	}
	protos, err := hdc.NewPrototypeTable(g.PrototypeVectors(classes, dims))
	if err != nil {
		return nil, err
	}
	return hdc.NewModel(basis, protos)
}
