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

package hdc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBasisTable(t *testing.T) {
	src := [][]int8{
		{1, 1, -1, -1},
		{-1, -1, 1, 1},
	}
	basis, err := NewBasisTable(src)
	require.NoError(t, err)

	assert.Equal(t, 4, basis.Dims())
	assert.Equal(t, 2, basis.Alphabet())
	assert.Equal(t, BipolarVector{-1, -1, 1, 1}, basis.Vector(1))

	// The table owns a copy.
	src[0][0] = -1
	assert.Equal(t, int8(1), basis.Vector(0)[0])
}

func TestNewBasisTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]int8
		want    error
	}{
		{"empty table", nil, ErrInvalidInput},
		{"zero dims", [][]int8{{}}, ErrInvalidInput},
		{"ragged", [][]int8{{1, 1}, {1}}, ErrDimensionMismatch},
		{"not bipolar", [][]int8{{1, 0}}, ErrInvalidInput},
		{"out of range", [][]int8{{1, 2}}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBasisTable(tt.vectors)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewPrototypeTable(t *testing.T) {
	protos, err := NewPrototypeTable([][]int32{
		{3, -7, 0},
		{1, 1, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, protos.Dims())
	assert.Equal(t, 2, protos.Classes())
	assert.Equal(t, PrototypeVector{3, -7, 0}, protos.Vector(0))

	_, err = NewPrototypeTable(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewPrototypeTable([][]int32{{1, 2}, {1, 2, 3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestVectorOutOfRangePanics(t *testing.T) {
	basis, err := NewBasisTable([][]int8{{1, -1}})
	require.NoError(t, err)
	protos, err := NewPrototypeTable([][]int32{{1, -1}})
	require.NoError(t, err)

	assert.Panics(t, func() { basis.Vector(1) })
	assert.Panics(t, func() { basis.Vector(-1) })
	assert.Panics(t, func() { protos.Vector(1) })
}

func TestNewModel(t *testing.T) {
	basis, err := NewBasisTable([][]int8{{1, -1, 1}})
	require.NoError(t, err)
	protos3, err := NewPrototypeTable([][]int32{{1, 2, 3}})
	require.NoError(t, err)
	protos2, err := NewPrototypeTable([][]int32{{1, 2}})
	require.NoError(t, err)

	model, err := NewModel(basis, protos3)
	require.NoError(t, err)
	assert.Equal(t, 3, model.Dims())
	assert.Equal(t, 1, model.Classes())

	_, err = NewModel(basis, protos2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewModel(nil, protos3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewModel(basis, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestModelValidateLiteral(t *testing.T) {
	basis, err := NewBasisTable([][]int8{{1, -1, 1, 1}})
	require.NoError(t, err)
	protos, err := NewPrototypeTable([][]int32{{1, 2, 3}})
	require.NoError(t, err)

	assert.ErrorIs(t, (&Model{Basis: basis, Prototypes: protos}).Validate(), ErrDimensionMismatch)
	assert.ErrorIs(t, (&Model{}).Validate(), ErrInvalidInput)
	assert.ErrorIs(t, (&Model{Basis: basis}).Validate(), ErrInvalidInput)
	assert.ErrorIs(t, (&Model{Prototypes: protos}).Validate(), ErrInvalidInput)
}

func TestValidateInput(t *testing.T) {
	basis, err := NewBasisTable([][]int8{{1, -1}, {-1, 1}})
	require.NoError(t, err)
	protos, err := NewPrototypeTable([][]int32{{1, 1}})
	require.NoError(t, err)
	model, err := NewModel(basis, protos)
	require.NoError(t, err)

	assert.NoError(t, model.ValidateInput(nil))
	assert.NoError(t, model.ValidateInput([]Symbol{0, 1, 1, 0}))

	err = model.ValidateInput([]Symbol{0, 1, 2})
	require.ErrorIs(t, err, ErrInvalidInput)

	var inErr *InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, 2, inErr.Position)
	assert.Equal(t, Symbol(2), inErr.Symbol)
	assert.Equal(t, 2, inErr.Alphabet)

	assert.ErrorIs(t, model.ValidateInput([]Symbol{-1}), ErrInvalidInput)
}

func TestSign(t *testing.T) {
	assert.Equal(t, int8(1), Sign(0), "zero must map to +1")
	assert.Equal(t, int8(1), Sign(5))
	assert.Equal(t, int8(-1), Sign(-1))
}

func TestDispatch(t *testing.T) {
	assert.NotEqual(t, "unknown", CurrentName())
	assert.GreaterOrEqual(t, CurrentWidth(), 16)
	assert.LessOrEqual(t, CurrentWidth(), MaxBlockWidth)
	assert.Equal(t, CurrentWidth()/4, MaxLanes[int32]())
	assert.Equal(t, CurrentWidth(), MaxLanes[int8]())
	assert.Equal(t, CurrentWidth()/8, MaxLanes[int64]())
}
