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

// Package classify scores hypervectors against class prototypes.
//
// # Scoring
//
// The score of class c is the exact integer dot product of the encoded
// hypervector H with prototype c:
//
//	score[c] = sum over j of H[j] * prototype[c][j]
//
// Scores are int64, so no realistic D or prototype magnitude overflows, and
// the summation order never changes a score.
//
// # Best class and tie-break
//
// Argmax scans classes in ascending index order, starting from score 0 and a
// caller-chosen initial index. A class replaces the current best whenever
// its score is greater than OR EQUAL to it. Consequences:
//   - among classes tying for the maximum, the last one (highest index) wins;
//   - if every class scores below zero the initial index is returned, which
//     for NoClass means "no qualifying class".
//
// Combine is the same rule as a pairwise operator, for reductions that fold
// per-worker partial results. It is associative, but a reduction whose
// partials start from an identity value can still select a different tied
// class than the sequential scan. Callers document their fixed combination
// order.
//
// # Example Usage
//
//	scores := make([]int64, protos.Classes())
//	classify.Scores(h, protos, scores)
//	best := classify.Argmax(scores, classify.NoClass)
//	if best.Found() {
//	    fmt.Println(best.Class, best.Score)
//	}
package classify
