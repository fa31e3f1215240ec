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
	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/classify"
	"github.com/ajroetker/go-hdc/hdc/contrib/encode"
)

// Sequential classifies input on the calling goroutine: it encodes the full
// hypervector, scores every class in ascending order and selects the best
// with classify.Argmax seeded with classify.NoClass.
//
// Among tied best scores the highest class index wins. If every class
// scores below zero the result has Class == classify.NoClass.
func Sequential(model *hdc.Model, input []hdc.Symbol) (Result, error) {
	if err := validate(model, input); err != nil {
		return Result{}, err
	}

	h := encode.Encode(model.Basis, input)

	scores := make([]int64, model.Classes())
	classify.Scores(h, model.Prototypes, scores)

	return Result{
		Result:      classify.Argmax(scores, classify.NoClass),
		Scores:      scores,
		Hypervector: h,
		Strategy:    StrategySequential,
	}, nil
}
