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
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/classify"
)

// Strategy selects a pipeline realization.
type Strategy int

const (
	// StrategySequential runs Sequential.
	StrategySequential Strategy = iota

	// StrategyParallel runs Parallel (materialized hypervector).
	StrategyParallel

	// StrategyFused runs Fused.
	StrategyFused
)

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategySequential, StrategyParallel, StrategyFused}
}

// String returns the strategy name accepted by ParseStrategy.
func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyParallel:
		return "parallel"
	case StrategyFused:
		return "fused"
	default:
		return "unknown"
	}
}

var strategyAliases = map[string]Strategy{
	"serial":       StrategySequential,
	"materialized": StrategyParallel,
}

// ParseStrategy resolves a strategy name, case-insensitively. Besides the
// String forms it accepts "serial" and "materialized".
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if s, ok := strategyAliases[name]; ok {
		return s, nil
	}
	s, ok := lo.Find(Strategies(), func(s Strategy) bool {
		return s.String() == name
	})
	if !ok {
		return 0, fmt.Errorf("infer: unknown strategy %q", name)
	}
	return s, nil
}

// Result is the outcome of one inference call.
type Result struct {
	classify.Result

	// Scores holds the dot product of the hypervector with every class
	// prototype, index = class id.
	Scores []int64

	// Hypervector is the encoded input. It is nil for StrategyFused, which
	// never materializes it.
	Hypervector hdc.BipolarVector

	// Strategy is the pipeline that produced the result.
	Strategy Strategy
}

func validateModel(model *hdc.Model) error {
	if model == nil {
		return fmt.Errorf("%w: nil model", hdc.ErrInvalidInput)
	}
	return model.Validate()
}

func validate(model *hdc.Model, input []hdc.Symbol) error {
	if err := validateModel(model); err != nil {
		return err
	}
	return model.ValidateInput(input)
}
