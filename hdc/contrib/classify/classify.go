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

package classify

import "github.com/ajroetker/go-hdc/hdc"

// NoClass is the sentinel class index reported when no class qualifies.
const NoClass = -1

// Result is the outcome of a classification: the selected class and its
// score. Class is NoClass when no class scored at least the initial best
// score of 0.
type Result struct {
	Class int
	Score int64
}

// Found reports whether r names an actual class.
func (r Result) Found() bool {
	return r.Class >= 0
}

// Identity returns the starting point of a best-class scan: score 0 with
// class initial (NoClass for the sequential scan, 0 for the parallel
// reduction identity).
func Identity(initial int) Result {
	return Result{Class: initial, Score: 0}
}

// Combine is the pairwise reduction operator for best-class search: in
// replaces out when in.Score >= out.Score. On equal scores the right-hand
// operand wins, so folding candidates left to right keeps the last of
// several tied classes.
func Combine(out, in Result) Result {
	if in.Score >= out.Score {
		return in
	}
	return out
}

// Argmax scans scores in ascending class order starting from
// Identity(initial) and returns the best class. Among tied maximum scores
// the highest index wins; if every score is negative the result is
// Identity(initial).
func Argmax(scores []int64, initial int) Result {
	best := Identity(initial)
	for c, s := range scores {
		best = Combine(best, Result{Class: c, Score: s})
	}
	return best
}

// Scores writes the dot product of h with every prototype into dst.
// Panics if dst is shorter than protos.Classes() or h does not have
// protos.Dims() elements.
func Scores(h hdc.BipolarVector, protos *hdc.PrototypeTable, dst []int64) {
	ScoreRange(h, protos, 0, protos.Classes(), dst, Identity(NoClass))
}

// ScoreRange scores classes [start, end) into dst[start:end] and folds each
// of them, in ascending order, into partial with Combine. The updated
// partial is returned. Disjoint ranges touch disjoint dst indices, so they
// may run concurrently.
func ScoreRange(h hdc.BipolarVector, protos *hdc.PrototypeTable, start, end int, dst []int64, partial Result) Result {
	if start < 0 || end > protos.Classes() || start > end {
		panic("classify: invalid class range")
	}
	if len(dst) < protos.Classes() {
		panic("classify: dst slice too small")
	}
	for c := start; c < end; c++ {
		s := Dot(h, protos.Vector(c))
		dst[c] = s
		partial = Combine(partial, Result{Class: c, Score: s})
	}
	return partial
}

// Rows resolves every prototype of the table once for column-wise loops.
func Rows(protos *hdc.PrototypeTable) []hdc.PrototypeVector {
	rows := make([]hdc.PrototypeVector, protos.Classes())
	for c := range rows {
		rows[c] = protos.Vector(c)
	}
	return rows
}

// AddColumn adds the contribution of one hypervector dimension j with value
// bit to every class score: dst[c] += rows[c][j] * bit. It is the inner
// step of scoring without materializing the hypervector.
func AddColumn(dst []int64, rows []hdc.PrototypeVector, j int, bit int8) {
	if len(dst) < len(rows) {
		panic("classify: dst slice too small")
	}
	b := int64(bit)
	for c, row := range rows {
		dst[c] += int64(row[j]) * b
	}
}
