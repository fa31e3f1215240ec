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
	"fmt"
)

var (
	// ErrInvalidInput reports a symbol outside the alphabet, an empty table,
	// a non-bipolar basis element or a non-positive dimensionality.
	ErrInvalidInput = errors.New("hdc: invalid input")

	// ErrDimensionMismatch reports a vector whose length differs from the
	// table's declared dimensionality.
	ErrDimensionMismatch = errors.New("hdc: dimension mismatch")

	// ErrCapacityExceeded reports a class count above the fixed bound of a
	// private-buffer reduction.
	ErrCapacityExceeded = errors.New("hdc: capacity exceeded")
)

// InputError describes an out-of-range symbol in an input sequence.
// It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Position int
	Symbol   Symbol
	Alphabet int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("hdc: symbol %d at position %d outside alphabet [0, %d)",
		e.Symbol, e.Position, e.Alphabet)
}

// Unwrap returns ErrInvalidInput.
func (e *InputError) Unwrap() error { return ErrInvalidInput }
