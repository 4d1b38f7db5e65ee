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

package tables

import (
	"math"
	"strconv"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/array"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// jfloat is a float that survives JSON, including NaN and the infinities.
type jfloat float64

func (f jfloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *jfloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = jfloat(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = jfloat(v)
	return nil
}

func toJFloats[F float32 | float64](s []F) []jfloat {
	out := make([]jfloat, len(s))
	for i, v := range s {
		out[i] = jfloat(v)
	}
	return out
}

func fromJFloats[F float32 | float64](s []jfloat) []F {
	out := make([]F, len(s))
	for i, v := range s {
		out[i] = F(v)
	}
	return out
}

func toJComplex[C complex64 | complex128](s []C) [][2]jfloat {
	out := make([][2]jfloat, len(s))
	for i, v := range s {
		c := complex128(v)
		out[i] = [2]jfloat{jfloat(real(c)), jfloat(imag(c))}
	}
	return out
}

func fromJComplex[C complex64 | complex128](s [][2]jfloat) []C {
	out := make([]C, len(s))
	for i, v := range s {
		out[i] = C(complex(float64(v[0]), float64(v[1])))
	}
	return out
}

// encodeSlice returns a JSON encodable form of s.
func encodeSlice[T casa.Element](s []T) any {
	switch v := any(s).(type) {
	case []float32:
		return toJFloats(v)
	case []float64:
		return toJFloats(v)
	case []complex64:
		return toJComplex(v)
	case []complex128:
		return toJComplex(v)
	case []uint8:
		// keep numbers rather than the base64 form of []byte
		out := make([]uint16, len(v))
		for i, b := range v {
			out[i] = uint16(b)
		}
		return out
	}
	return s
}

func decodeSlice[T casa.Element](raw []byte) ([]T, error) {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		var f []jfloat
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, err
		}
		if _, ok := any(zero).(float32); ok {
			return any(fromJFloats[float32](f)).([]T), nil
		}
		return any(fromJFloats[float64](f)).([]T), nil
	case complex64, complex128:
		var c [][2]jfloat
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		if _, ok := any(zero).(complex64); ok {
			return any(fromJComplex[complex64](c)).([]T), nil
		}
		return any(fromJComplex[complex128](c)).([]T), nil
	case uint8:
		var u []uint16
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		out := make([]uint8, len(u))
		for i, v := range u {
			out[i] = uint8(v)
		}
		return any(out).([]T), nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeValue[T casa.Element](v T) (json.RawMessage, error) {
	return json.Marshal(encodeSlice([]T{v}))
}

func decodeValue[T casa.Element](raw []byte) (T, error) {
	var zero T
	s, err := decodeSlice[T](raw)
	if err != nil {
		return zero, err
	}
	if len(s) != 1 {
		return zero, xerrors.Errorf("%w: expected one %s value, got %d", casa.ErrIO, casa.ElementName[T](), len(s))
	}
	return s[0], nil
}

// elementKind holds the type-erased operations needed to restore columns
// and record fields of one element type from disk.
type elementKind struct {
	encode     func(v any) (json.RawMessage, error)
	decode     func(raw []byte) (any, error)
	scalarDesc func(b baseDesc, def []byte) (BaseColumnDesc, error)
	arrayDesc  func(b baseDesc) BaseColumnDesc
}

func kindOf[T casa.Element]() elementKind {
	return elementKind{
		encode: func(v any) (json.RawMessage, error) {
			return encodeValue(v.(T))
		},
		decode: func(raw []byte) (any, error) {
			return decodeValue[T](raw)
		},
		scalarDesc: func(b baseDesc, def []byte) (BaseColumnDesc, error) {
			d := &ScalarColumnDesc[T]{baseDesc: b}
			if len(def) > 0 {
				v, err := decodeValue[T](def)
				if err != nil {
					return nil, err
				}
				d.def = v
			}
			return d, nil
		},
		arrayDesc: func(b baseDesc) BaseColumnDesc {
			return &ArrayColumnDesc[T]{baseDesc: b}
		},
	}
}

var elementKinds = map[casa.DataType]elementKind{
	casa.TpBool:     kindOf[bool](),
	casa.TpChar:     kindOf[int8](),
	casa.TpUChar:    kindOf[uint8](),
	casa.TpShort:    kindOf[int16](),
	casa.TpUShort:   kindOf[uint16](),
	casa.TpInt:      kindOf[int32](),
	casa.TpUInt:     kindOf[uint32](),
	casa.TpInt64:    kindOf[int64](),
	casa.TpFloat:    kindOf[float32](),
	casa.TpDouble:   kindOf[float64](),
	casa.TpComplex:  kindOf[complex64](),
	casa.TpDComplex: kindOf[complex128](),
	casa.TpString:   kindOf[string](),
}

// descJSON is the persisted form of a column description.
type descJSON struct {
	Name    string          `json:"name"`
	Comment string          `json:"comment,omitempty"`
	DMType  string          `json:"dmType"`
	DMGroup string          `json:"dmGroup,omitempty"`
	Type    casa.DataType   `json:"type"`
	Array   bool            `json:"array,omitempty"`
	Ndim    int             `json:"ndim,omitempty"`
	Shape   array.IPosition `json:"shape,omitempty"`
	Options ColumnOption    `json:"options,omitempty"`
	Default json.RawMessage `json:"default,omitempty"`
}

func (d descJSON) desc() (BaseColumnDesc, error) {
	k, ok := elementKinds[d.Type]
	if !ok {
		return nil, xerrors.Errorf("%w: column %q has unsupported type %s", casa.ErrIO, d.Name, d.Type)
	}
	b := baseDesc{
		name:    d.Name,
		comment: d.Comment,
		dmType:  d.DMType,
		dmGroup: d.DMGroup,
		opt:     d.Options,
		ndim:    d.Ndim,
		shape:   d.Shape,
	}
	if d.Array {
		return k.arrayDesc(b), nil
	}
	return k.scalarDesc(b, d.Default)
}
