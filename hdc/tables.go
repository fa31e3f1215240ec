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

import "fmt"

// BasisTable maps every symbol of an alphabet of size A to a bipolar basis
// vector of dimensionality D. Vectors are stored row-major in one slice.
//
// A BasisTable is immutable after construction and safe for concurrent use.
type BasisTable struct {
	dims     int
	alphabet int
	data     []int8
}

// NewBasisTable validates and copies the given basis vectors.
//
// Returns ErrInvalidInput if the table is empty, a vector is empty or an
// element is not exactly +1 or -1, and ErrDimensionMismatch if vectors
// differ in length.
func NewBasisTable(vectors [][]int8) (*BasisTable, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: empty basis table", ErrInvalidInput)
	}
	dims := len(vectors[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: basis vectors must have positive dimensionality", ErrInvalidInput)
	}

	data := make([]int8, len(vectors)*dims)
	for s, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("%w: basis vector %d has length %d, want %d",
				ErrDimensionMismatch, s, len(v), dims)
		}
		for j, x := range v {
			if x != 1 && x != -1 {
				return nil, fmt.Errorf("%w: basis vector %d element %d is %d, want +1 or -1",
					ErrInvalidInput, s, j, x)
			}
		}
		copy(data[s*dims:], v)
	}

	return &BasisTable{dims: dims, alphabet: len(vectors), data: data}, nil
}

// Dims returns the dimensionality D of every basis vector.
func (t *BasisTable) Dims() int { return t.dims }

// Alphabet returns the number of symbols A.
func (t *BasisTable) Alphabet() int { return t.alphabet }

// Vector returns the basis vector of symbol s. The returned slice aliases
// the table and must not be modified.
// Panics if s is outside [0, Alphabet()).
func (t *BasisTable) Vector(s Symbol) BipolarVector {
	if s < 0 || int(s) >= t.alphabet {
		panic("hdc: symbol out of range")
	}
	off := int(s) * t.dims
	return BipolarVector(t.data[off : off+t.dims : off+t.dims])
}

// PrototypeTable holds one integer prototype vector per class, index = class
// id. Vectors are stored row-major in one slice.
//
// A PrototypeTable is immutable after construction and safe for concurrent use.
type PrototypeTable struct {
	dims    int
	classes int
	data    []int32
}

// NewPrototypeTable validates and copies the given prototype vectors.
//
// Returns ErrInvalidInput if the table is empty or vectors are empty, and
// ErrDimensionMismatch if vectors differ in length.
func NewPrototypeTable(vectors [][]int32) (*PrototypeTable, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: empty prototype table", ErrInvalidInput)
	}
	dims := len(vectors[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: prototype vectors must have positive dimensionality", ErrInvalidInput)
	}

	data := make([]int32, len(vectors)*dims)
	for c, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("%w: prototype %d has length %d, want %d",
				ErrDimensionMismatch, c, len(v), dims)
		}
		copy(data[c*dims:], v)
	}

	return &PrototypeTable{dims: dims, classes: len(vectors), data: data}, nil
}

// Dims returns the dimensionality D of every prototype.
func (t *PrototypeTable) Dims() int { return t.dims }

// Classes returns the number of classes C.
func (t *PrototypeTable) Classes() int { return t.classes }

// Vector returns the prototype of class c. The returned slice aliases the
// table and must not be modified.
// Panics if c is outside [0, Classes()).
func (t *PrototypeTable) Vector(c int) PrototypeVector {
	if c < 0 || c >= t.classes {
		panic("hdc: class out of range")
	}
	off := c * t.dims
	return PrototypeVector(t.data[off : off+t.dims : off+t.dims])
}

// Model pairs a basis table with a prototype table of the same
// dimensionality. It is the unit shared by every inference pipeline.
type Model struct {
	Basis      *BasisTable
	Prototypes *PrototypeTable
}

// NewModel checks that both tables are present and agree on D.
func NewModel(basis *BasisTable, prototypes *PrototypeTable) (*Model, error) {
	m := &Model{Basis: basis, Prototypes: prototypes}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate reports a missing table as ErrInvalidInput and tables that
// disagree on D as ErrDimensionMismatch. Models assembled as literals
// instead of through NewModel are checked here by every pipeline.
func (m *Model) Validate() error {
	switch {
	case m.Basis == nil:
		return fmt.Errorf("%w: nil basis table", ErrInvalidInput)
	case m.Prototypes == nil:
		return fmt.Errorf("%w: nil prototype table", ErrInvalidInput)
	case m.Basis.Dims() != m.Prototypes.Dims():
		return fmt.Errorf("%w: basis has %d dimensions, prototypes have %d",
			ErrDimensionMismatch, m.Basis.Dims(), m.Prototypes.Dims())
	}
	return nil
}

// Dims returns the shared dimensionality D.
func (m *Model) Dims() int { return m.Basis.Dims() }

// Classes returns the number of classes C.
func (m *Model) Classes() int { return m.Prototypes.Classes() }

// ValidateInput checks every symbol of input against the basis alphabet.
// The first offending symbol is reported as an *InputError.
func (m *Model) ValidateInput(input []Symbol) error {
	a := m.Basis.Alphabet()
	for i, s := range input {
		if s < 0 || int(s) >= a {
			return &InputError{Position: i, Symbol: s, Alphabet: a}
		}
	}
	return nil
}
