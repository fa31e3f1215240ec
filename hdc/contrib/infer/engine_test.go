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
	"context"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-hdc/hdc"
	"github.com/ajroetker/go-hdc/hdc/contrib/synth"
)

func TestEngineStrategies(t *testing.T) {
	gen := synth.Generator{Seed: 11}
	model, err := gen.Model(16, 8, 500)
	require.NoError(t, err)
	input := gen.Inputs(1, 60, 16)[0]

	want, err := Sequential(model, input)
	require.NoError(t, err)

	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			eng, err := New(model, WithStrategy(s), WithWorkers(3))
			require.NoError(t, err)
			defer eng.Close()

			assert.Equal(t, s, eng.Strategy())
			assert.Equal(t, 3, eng.Workers())

			got, err := eng.Infer(input)
			require.NoError(t, err)
			assert.Equal(t, s, got.Strategy)
			assert.Equal(t, want.Scores, got.Scores)
		})
	}
}

func TestEngineSharedPool(t *testing.T) {
	gen := synth.Generator{Seed: 12}
	model, err := gen.Model(4, 4, 64)
	require.NoError(t, err)
	pool := newPool(t, 2)

	eng, err := New(model, WithStrategy(StrategyParallel), WithPool(pool))
	require.NoError(t, err)
	eng.Close()
	eng.Close()

	// The shared pool stays usable after the Engine is closed.
	assert.Equal(t, 2, pool.Slots(4))
}

func TestEngineErrors(t *testing.T) {
	gen := synth.Generator{Seed: 13}
	model, err := gen.Model(4, 20, 64)
	require.NoError(t, err)

	_, err = New(nil)
	assert.ErrorIs(t, err, hdc.ErrInvalidInput)

	_, err = New(model, WithStrategy(Strategy(9)))
	assert.Error(t, err)

	_, err = New(model, WithStrategy(StrategyFused))
	assert.ErrorIs(t, err, hdc.ErrCapacityExceeded)

	eng, err := New(model, WithStrategy(StrategyFused), WithMaxClasses(32))
	require.NoError(t, err)
	defer eng.Close()
	_, err = eng.Infer([]hdc.Symbol{7})
	assert.ErrorIs(t, err, hdc.ErrInvalidInput)
}

func TestInferBatch(t *testing.T) {
	gen := synth.Generator{Seed: 14}
	model, err := gen.Model(32, 10, 800)
	require.NoError(t, err)
	inputs := gen.Inputs(25, 90, 32)

	eng, err := New(model, WithStrategy(StrategyFused), WithWorkers(4))
	require.NoError(t, err)
	defer eng.Close()

	got, err := eng.InferBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, got, len(inputs))
	for i, input := range inputs {
		want, err := Sequential(model, input)
		require.NoError(t, err)
		assert.Equal(t, want.Result, got[i].Result, "input %d", i)
		assert.Equal(t, want.Scores, got[i].Scores, "input %d", i)
	}

	empty, err := eng.InferBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInferBatchErrors(t *testing.T) {
	gen := synth.Generator{Seed: 15}
	model, err := gen.Model(8, 4, 100)
	require.NoError(t, err)
	inputs := gen.Inputs(6, 10, 8)
	inputs[3] = []hdc.Symbol{1, 99}

	eng, err := New(model, WithWorkers(2))
	require.NoError(t, err)
	defer eng.Close()

	res, err := eng.InferBatch(context.Background(), inputs)
	assert.ErrorIs(t, err, hdc.ErrInvalidInput)
	assert.Contains(t, err.Error(), "input 3")
	assert.Nil(t, res)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = eng.InferBatch(ctx, gen.Inputs(3, 10, 8))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineLogging(t *testing.T) {
	gen := synth.Generator{Seed: 16}
	model, err := gen.Model(4, 3, 32)
	require.NoError(t, err)

	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 2})

	eng, err := New(model, WithLogger(logger), WithWorkers(1))
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Infer([]hdc.Symbol{0, 1, 2, 3})
	require.NoError(t, err)

	// engine ready + inferred + one line per class.
	require.Len(t, lines, 2+model.Classes())
	assert.Contains(t, lines[0], "engine ready")
	assert.Contains(t, lines[1], `"strategy"="sequential"`)
	assert.Contains(t, lines[len(lines)-1], "class score")
}
