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

package casa

import (
	"fmt"
	"math"
)

// Element is the type constraint for the closed list of element types.
type Element interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 |
		float32 | float64 | complex64 | complex128 | string
}

// Numeric are the element types with arithmetic.
type Numeric interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 |
		float32 | float64 | complex64 | complex128
}

// VectorElement additionally admits row numbers.
type VectorElement interface {
	Element | uint64
}

// RowNr is a table row number.
type RowNr = uint64

// TypeOf returns the DataType of T. Row numbers map to TpOther.
func TypeOf[T VectorElement]() DataType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return TpBool
	case int8:
		return TpChar
	case uint8:
		return TpUChar
	case int16:
		return TpShort
	case uint16:
		return TpUShort
	case int32:
		return TpInt
	case uint32:
		return TpUInt
	case int64:
		return TpInt64
	case float32:
		return TpFloat
	case float64:
		return TpDouble
	case complex64:
		return TpComplex
	case complex128:
		return TpDComplex
	case string:
		return TpString
	}
	return TpOther
}

// ElementName returns the host-visible name of the element type T, used as
// the parameter of parametric symbols ("Array{Float64}").
func ElementName[T VectorElement]() string {
	var zero T
	switch any(zero).(type) {
	case bool:
		return "Bool"
	case int8:
		return "Int8"
	case uint8:
		return "UInt8"
	case int16:
		return "Int16"
	case uint16:
		return "UInt16"
	case int32:
		return "Int32"
	case uint32:
		return "UInt32"
	case int64:
		return "Int64"
	case uint64:
		return "UInt64"
	case float32:
		return "Float32"
	case float64:
		return "Float64"
	case complex64:
		return "ComplexF32"
	case complex128:
		return "ComplexF64"
	case string:
		return "String"
	}
	panic(fmt.Sprintf("casa: unhandled element type %T", zero))
}

// CastValue converts v to T when v holds a T, or a Go int/float that fits
// T exactly. It is used where dynamically typed values (record fields,
// defaults) meet a typed container.
func CastValue[T VectorElement](v any) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}
	out, ok := convert(v, any(zero))
	if !ok {
		return zero, fmt.Errorf("%w: cannot use %T as %s", ErrType, v, ElementName[T]())
	}
	return out.(T), nil
}

func convert(v, like any) (any, bool) {
	switch x := v.(type) {
	case int:
		return convertInt(int64(x), like)
	case int8:
		return convertInt(int64(x), like)
	case int16:
		return convertInt(int64(x), like)
	case int32:
		return convertInt(int64(x), like)
	case int64:
		return convertInt(x, like)
	case uint8:
		return convertInt(int64(x), like)
	case uint16:
		return convertInt(int64(x), like)
	case uint32:
		return convertInt(int64(x), like)
	case uint64:
		if x > math.MaxInt64 {
			return nil, false
		}
		return convertInt(int64(x), like)
	case float32:
		return convertFloat(float64(x), like)
	case float64:
		return convertFloat(x, like)
	}
	return nil, false
}

func convertInt(x int64, like any) (any, bool) {
	switch like.(type) {
	case int8:
		return int8(x), int64(int8(x)) == x
	case uint8:
		return uint8(x), x >= 0 && int64(uint8(x)) == x
	case int16:
		return int16(x), int64(int16(x)) == x
	case uint16:
		return uint16(x), x >= 0 && int64(uint16(x)) == x
	case int32:
		return int32(x), int64(int32(x)) == x
	case uint32:
		return uint32(x), x >= 0 && int64(uint32(x)) == x
	case int64:
		return x, true
	case uint64:
		return uint64(x), x >= 0
	case float32:
		return float32(x), int64(float32(x)) == x
	case float64:
		return float64(x), int64(float64(x)) == x
	case complex64:
		return complex(float32(x), 0), true
	case complex128:
		return complex(float64(x), 0), true
	}
	return nil, false
}

func convertFloat(x float64, like any) (any, bool) {
	switch like.(type) {
	case float32:
		return float32(x), float64(float32(x)) == x
	case float64:
		return x, true
	case complex64:
		return complex(float32(x), 0), float64(float32(x)) == x
	case complex128:
		return complex(x, 0), true
	}
	return nil, false
}
