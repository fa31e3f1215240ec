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

// Package hdc provides the data model for hyperdimensional-computing
// classifier inference.
//
// An input sequence of symbols is encoded into a single bipolar hypervector
// by rotating each symbol's basis vector by its position and accumulating
// the results. The hypervector is then scored against integer class
// prototypes by dot product.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-hdc/hdc"
//
//	basis, err := hdc.NewBasisTable(bases)          // A x D, entries +1/-1
//	protos, err := hdc.NewPrototypeTable(classes)   // C x D, int32
//	model, err := hdc.NewModel(basis, protos)
//
//	res, err := infer.Sequential(model, []hdc.Symbol{0, 1, 0})
//
// Tables are immutable after construction and safe to share between
// goroutines. The encode, classify and infer packages under contrib build
// the pipelines on top of this package.
package hdc

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Lanes is a constraint for all types that can be packed into a kernel block.
type Lanes interface {
	SignedInts | UnsignedInts
}

// Symbol is one element of an input sequence, a value in [0, A) where A is
// the alphabet size of the basis table (e.g. a pixel intensity).
type Symbol int

// BipolarVector is a hypervector whose elements are exactly +1 or -1.
type BipolarVector []int8

// Dims returns the dimensionality of the vector.
func (v BipolarVector) Dims() int { return len(v) }

// PrototypeVector is a class reference vector. Unlike basis vectors its
// elements are arbitrary signed integers.
type PrototypeVector []int32

// Dims returns the dimensionality of the vector.
func (v PrototypeVector) Dims() int { return len(v) }

// Sign maps an accumulator value onto a bipolar element.
// Zero maps to +1: the threshold is biased positive, not symmetric.
func Sign(acc int) int8 {
	if acc < 0 {
		return -1
	}
	return 1
}
