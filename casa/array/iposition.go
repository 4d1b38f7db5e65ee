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
	"math"
	"strings"
	"unsafe"

	"github.com/JohnCGriffin/overflow"
	"github.com/casacore/casabind/casa"
)

// IPosition is a shape or an index in an n-dimensional array.
type IPosition []int64

// NewIPosition returns an IPosition with n axes. With no values every axis
// is zero, with one value every axis takes it, otherwise exactly n values
// must be given.
func NewIPosition(n int, vals ...int64) (IPosition, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative IPosition length %d", casa.ErrInvalid, n)
	}
	p := make(IPosition, n)
	switch len(vals) {
	case 0:
	case 1:
		for i := range p {
			p[i] = vals[0]
		}
	default:
		if len(vals) != n {
			return nil, fmt.Errorf("%w: IPosition of length %d given %d values", casa.ErrInvalid, n, len(vals))
		}
		copy(p, vals)
	}
	return p, nil
}

func (p IPosition) Size() int { return len(p) }

// At returns axis i.
func (p IPosition) At(i int) (int64, error) {
	if i < 0 || i >= len(p) {
		return 0, fmt.Errorf("%w: axis %d of IPosition with %d axes", casa.ErrIndex, i, len(p))
	}
	return p[i], nil
}

// Product is the number of elements of an array with this shape.
func (p IPosition) Product() int64 {
	if len(p) == 0 {
		return 0
	}
	o := int64(1)
	for _, v := range p {
		o *= v
	}
	return o
}

func (p IPosition) Equal(o IPosition) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

func (p IPosition) Clone() IPosition {
	if p == nil {
		return nil
	}
	return append(IPosition(nil), p...)
}

func (p IPosition) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(']')
	return b.String()
}

// offset returns the column-major linear offset of pos within shape.
func (p IPosition) offset(pos IPosition) (int, error) {
	if len(pos) != len(p) {
		return 0, fmt.Errorf("%w: index %s has %d axes, array has %d", casa.ErrIndex, pos, len(pos), len(p))
	}
	var (
		off    int64
		stride int64 = 1
	)
	for i, v := range pos {
		if v < 0 || v >= p[i] {
			return 0, fmt.Errorf("%w: index %s outside shape %s", casa.ErrIndex, pos, p)
		}
		off += v * stride
		stride *= p[i]
	}
	return int(off), nil
}

// CheckedProduct is Product for untrusted shapes: it fails on a negative
// extent or when the element count does not fit in an int64.
func (p IPosition) CheckedProduct() (int64, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := int64(1)
	for _, v := range p {
		if v < 0 {
			return 0, fmt.Errorf("%w: negative extent in shape %s", casa.ErrInvalid, p)
		}
		var ok bool
		if n, ok = overflow.Mul64(n, v); !ok {
			return 0, fmt.Errorf("%w: shape %s overflows the element count", casa.ErrInvalid, p)
		}
	}
	return n, nil
}

// maxBytes is the largest storage a single array may ask the allocator for.
const maxBytes = 1 << 47

// validShape checks that an array of T with shape fits in one allocation.
func validShape[T any](shape IPosition) error {
	n, err := shape.CheckedProduct()
	if err != nil {
		return err
	}
	var zero T
	if size, ok := overflow.Mul64(n, int64(unsafe.Sizeof(zero))); !ok || size > maxBytes || n > math.MaxInt {
		return fmt.Errorf("%w: shape %s is too large", casa.ErrInvalid, shape)
	}
	return nil
}
