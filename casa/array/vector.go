// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package array

import (
	"fmt"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/memory"
)

// Vector is a one-dimensional Array.
type Vector[T casa.VectorElement] struct {
	*Array[T]
}

// NewVector returns an empty vector.
func NewVector[T casa.VectorElement](mem memory.Allocator) *Vector[T] {
	a := New[T](mem)
	a.shape = IPosition{0}
	return &Vector[T]{a}
}

// NewVectorShaped returns a zero-filled vector; shape must have one axis.
func NewVectorShaped[T casa.VectorElement](mem memory.Allocator, shape IPosition) (*Vector[T], error) {
	if len(shape) != 1 {
		return nil, fmt.Errorf("%w: vector shape %s must have one axis", casa.ErrInvalid, shape)
	}
	a, err := NewShaped[T](mem, shape)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{a}, nil
}

// VectorFromBuffer wraps host data as a vector under policy.
func VectorFromBuffer[T casa.VectorElement](mem memory.Allocator, shape IPosition, data []T, policy memory.Policy) (*Vector[T], error) {
	if len(shape) != 1 {
		return nil, fmt.Errorf("%w: vector shape %s must have one axis", casa.ErrInvalid, shape)
	}
	a, err := FromBuffer(mem, shape, data, policy)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{a}, nil
}

// VectorOf copies values into a new vector.
func VectorOf[T casa.VectorElement](mem memory.Allocator, values []T) *Vector[T] {
	v, err := VectorFromBuffer(mem, IPosition{int64(len(values))}, values, memory.Copy)
	if err != nil {
		panic(err) // shape always matches
	}
	return v
}
