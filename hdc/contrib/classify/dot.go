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

// maxLanes bounds the per-lane partial sums kept on the stack.
const maxLanes = hdc.MaxBlockWidth / 4

// Dot computes the exact dot product of a hypervector and a prototype:
// sum(h[j] * p[j]).
//
// The loop runs in blocks of hdc.MaxLanes[int32]() elements with one int64
// partial sum per lane, then reduces the partials and adds the scalar tail.
// Integer addition is associative, so the block width never changes the
// result.
//
// Panics if the vectors differ in length.
//
// Example:
//
//	h := hdc.BipolarVector{1, -1, -1, 1}
//	p := hdc.PrototypeVector{3, 2, 1, 5}
//	s := Dot(h, p)  // 3 - 2 - 1 + 5 = 5
func Dot(h hdc.BipolarVector, p hdc.PrototypeVector) int64 {
	if len(h) != len(p) {
		panic("classify: dot product length mismatch")
	}

	n := len(h)
	lanes := min(hdc.MaxLanes[int32](), maxLanes)
	var acc [maxLanes]int64

	// Process full blocks
	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hb := h[i : i+lanes]
		pb := p[i : i+lanes]
		for l := range lanes {
			acc[l] += int64(hb[l]) * int64(pb[l])
		}
	}

	// Reduce block sums to scalar
	var result int64
	for l := range lanes {
		result += acc[l]
	}

	// Handle tail elements with scalar code
	for ; i < n; i++ {
		result += int64(h[i]) * int64(p[i])
	}

	return result
}
