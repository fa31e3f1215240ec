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

// Package encode turns symbol sequences into bipolar hypervectors.
//
// # Algorithm
//
// The symbol at position i contributes its basis vector rotated right by i:
// the last i elements move to the front, so dimension j of the rotated
// vector is dimension (j - i) mod D of the basis vector. Contributions are
// summed per dimension into word-sized accumulators and each sum is
// thresholded: negative sums become -1, everything else (including zero)
// becomes +1.
//
// Two equivalent forms are provided:
//   - Encode / Accumulate rotate whole basis vectors and add them, one
//     position at a time (the sequential baseline).
//   - Dimension / EncodeRange compute single output dimensions by reading
//     rotated positions in place. Dimensions are independent, so disjoint
//     ranges can be encoded concurrently into one shared output.
//
// None of the functions validate symbols; callers are expected to check
// inputs with hdc.Model.ValidateInput first. An out-of-range symbol panics.
package encode

import "github.com/ajroetker/go-hdc/hdc"

// Rotate writes v cyclically rotated right by k positions into dst:
// dst[j] = v[(j - k) mod len(v)]. k may be any non-negative value.
// Panics if dst is shorter than v.
func Rotate(v hdc.BipolarVector, k int, dst hdc.BipolarVector) {
	d := len(v)
	if len(dst) < d {
		panic("encode: dst slice too small")
	}
	if d == 0 {
		return
	}
	k %= d
	copy(dst[k:d], v[:d-k])
	copy(dst[:k], v[d-k:])
}

// Accumulate adds the rotated basis vector of every input position into acc.
// acc is not cleared first; pass a zeroed slice for a fresh encoding.
// After the call |acc[j]| grows by at most len(input).
//
// Panics if len(acc) < basis.Dims().
func Accumulate(basis *hdc.BasisTable, input []hdc.Symbol, acc []int) {
	d := basis.Dims()
	if len(acc) < d {
		panic("encode: accumulator slice too small")
	}
	acc = acc[:d]

	rotated := make(hdc.BipolarVector, d)
	for i, s := range input {
		Rotate(basis.Vector(s), i, rotated)
		for j, x := range rotated {
			acc[j] += int(x)
		}
	}
}

// Threshold maps accumulators onto bipolar values: dst[j] = -1 if
// acc[j] < 0, else +1.
// Panics if dst is shorter than acc.
func Threshold(acc []int, dst hdc.BipolarVector) {
	if len(dst) < len(acc) {
		panic("encode: dst slice too small")
	}
	for j, a := range acc {
		dst[j] = hdc.Sign(a)
	}
}

// Encode returns the hypervector of input. An empty input yields an
// all +1 vector.
func Encode(basis *hdc.BasisTable, input []hdc.Symbol) hdc.BipolarVector {
	acc := make([]int, basis.Dims())
	Accumulate(basis, input, acc)

	out := make(hdc.BipolarVector, len(acc))
	Threshold(acc, out)
	return out
}

// Rows resolves the basis vector of every input position once, so per
// dimension loops avoid repeated table lookups.
func Rows(basis *hdc.BasisTable, input []hdc.Symbol) []hdc.BipolarVector {
	rows := make([]hdc.BipolarVector, len(input))
	for i, s := range input {
		rows[i] = basis.Vector(s)
	}
	return rows
}

// Dimension returns the accumulator value of output dimension j, before
// thresholding.
// Panics if j is outside [0, basis.Dims()).
func Dimension(basis *hdc.BasisTable, input []hdc.Symbol, j int) int {
	d := basis.Dims()
	if j < 0 || j >= d {
		panic("encode: dimension out of range")
	}
	return RowsDimension(Rows(basis, input), d, j)
}

// RowsDimension is Dimension over rows already resolved with Rows.
// d is the dimensionality of every row.
func RowsDimension(rows []hdc.BipolarVector, d, j int) int {
	acc := 0
	// idx tracks (j - i) mod d without a division per position.
	idx := j
	for _, row := range rows {
		acc += int(row[idx])
		idx--
		if idx < 0 {
			idx = d - 1
		}
	}
	return acc
}

// EncodeRange writes the thresholded value of every dimension in
// [start, end) into dst. Each dst index in the range is written exactly once
// and no other index is touched, so disjoint ranges may run concurrently.
//
// Panics if the range is invalid or dst is shorter than basis.Dims().
func EncodeRange(basis *hdc.BasisTable, input []hdc.Symbol, start, end int, dst hdc.BipolarVector) {
	d := basis.Dims()
	if start < 0 || end > d || start > end {
		panic("encode: invalid dimension range")
	}
	if len(dst) < d {
		panic("encode: dst slice too small")
	}

	rows := Rows(basis, input)
	for j := start; j < end; j++ {
		dst[j] = hdc.Sign(RowsDimension(rows, d, j))
	}
}
