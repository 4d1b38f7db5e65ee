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

package bind

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Conversion costs. Lower is a better match; an overload's score is the sum
// over its parameters.
const (
	costExact   = 0
	costUpcast  = 1
	costNumeric = 2
	costSlice   = 3
	costAny     = 4
)

type overload struct {
	params []paramSpec
	call   func([]any) (any, error)
	ret    *paramSpec
	name   string
}

// run calls the overload. A panic in the bound function is returned as an
// error wrapping ErrPanic.
func (o overload) run(args []any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: %s%s: %v", ErrPanic, o.name, formatSig(o.params), r)
		}
	}()
	return o.call(args)
}

func methodOverloads(ms []*Method) []overload {
	out := make([]overload, len(ms))
	for i, m := range ms {
		out[i] = overload{params: m.params, call: m.call, ret: m.ret, name: m.name}
	}
	return out
}

func ctorOverloads(b *TypeBinding) []overload {
	out := make([]overload, len(b.ctors))
	for i, c := range b.ctors {
		out[i] = overload{params: c.params, call: c.call, name: string(b.Ref())}
	}
	return out
}

// selectOverload converts args for the best matching overload. An exact
// match always wins; two candidates with the same best score are ambiguous.
func selectOverload(name string, cands []overload, args []any) (overload, []any, error) {
	for _, a := range args {
		if o, ok := a.(*Object); ok && o.Released() {
			return overload{}, nil, fmt.Errorf("%w: %s passed to %s", ErrReleased, o, name)
		}
	}

	best, bestScore, tie := -1, math.MaxInt, false
	var bestArgs []any
	for i, c := range cands {
		if len(c.params) != len(args) {
			continue
		}
		conv := make([]any, len(args))
		score, ok := 0, true
		for j, p := range c.params {
			v, cost, match := convertArg(p, args[j])
			if !match {
				ok = false
				break
			}
			conv[j] = v
			score += cost
		}
		if !ok {
			continue
		}
		switch {
		case score < bestScore:
			best, bestScore, bestArgs, tie = i, score, conv, false
		case score == bestScore:
			tie = true
		}
	}

	switch {
	case best < 0:
		return overload{}, nil, fmt.Errorf("%w: %s%s; candidates: %s", ErrNoMatch, name, describeArgs(args), describeCands(cands))
	case tie:
		return overload{}, nil, fmt.Errorf("%w: %s%s matches several of %s", ErrAmbiguous, name, describeArgs(args), describeCands(cands))
	}
	return cands[best], bestArgs, nil
}

// convertArg checks a host argument against a parameter and returns the Go
// value to pass and the cost of the conversion.
func convertArg(p paramSpec, a any) (any, int, bool) {
	switch p.kind {
	case refAny:
		if o, ok := a.(*Object); ok {
			v, err := o.Value()
			return v, costAny, err == nil
		}
		return a, costAny, true

	case refBound:
		switch v := a.(type) {
		case *Object:
			if v.binding == p.binding {
				return v.value, costExact, true
			}
			if !v.binding.symbol.IsA(p.binding.symbol) {
				return nil, 0, false
			}
			if !reflect.TypeOf(v.value).AssignableTo(p.typ) {
				return nil, 0, false
			}
			return v.value, costUpcast * depth(v.binding.symbol, p.binding.symbol), true
		case nil:
			return nil, 0, false
		default:
			t := reflect.TypeOf(a)
			if t == p.typ {
				return a, costExact, true
			}
			if t.AssignableTo(p.typ) {
				return a, costUpcast, true
			}
			return nil, 0, false
		}

	case refEnum:
		switch v := a.(type) {
		case EnumValue:
			if v.tag != p.enum {
				return nil, 0, false
			}
			return reflect.ValueOf(v.value).Convert(p.typ).Interface(), costExact, true
		default:
			if a != nil && reflect.TypeOf(a) == p.typ {
				return a, costExact, true
			}
			return nil, 0, false
		}

	case refPrimitive:
		if a == nil {
			return nil, 0, false
		}
		if reflect.TypeOf(a) == p.typ {
			return a, costExact, true
		}
		if _, isEnum := a.(EnumValue); isEnum {
			return nil, 0, false
		}
		rv, ok := convertNumber(reflect.ValueOf(a), p.typ)
		if !ok {
			return nil, 0, false
		}
		return rv.Interface(), costNumeric, true

	case refSlice:
		if a == nil {
			return nil, 0, false
		}
		if reflect.TypeOf(a) == p.typ {
			return a, costExact, true
		}
		src := reflect.ValueOf(a)
		if src.Kind() != reflect.Slice {
			return nil, 0, false
		}
		dst := reflect.MakeSlice(p.typ, src.Len(), src.Len())
		et := p.typ.Elem()
		for i := 0; i < src.Len(); i++ {
			e := src.Index(i)
			if e.Kind() == reflect.Interface {
				e = e.Elem()
			}
			if !e.IsValid() {
				return nil, 0, false
			}
			if e.Type() == et {
				dst.Index(i).Set(e)
				continue
			}
			c, ok := convertNumber(e, et)
			if !ok {
				return nil, 0, false
			}
			dst.Index(i).Set(c)
		}
		return dst.Interface(), costSlice, true
	}
	return nil, 0, false
}

func depth(from, to *Symbol) int {
	n := 0
	for cur := from; cur != nil && cur != to; cur = cur.super {
		n++
	}
	return n
}

const (
	two63 = float64(1 << 63)
	two64 = two63 * 2
)

// convertNumber converts v to t only when no information is lost.
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	out := reflect.New(t).Elem()
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if out.OverflowInt(i) {
				return out, false
			}
			out.SetInt(i)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if i < 0 || out.OverflowUint(uint64(i)) {
				return out, false
			}
			out.SetUint(uint64(i))
		case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
			f := float64(i)
			if f >= two63 || int64(f) != i {
				return out, false
			}
			return fromFloat(out, f)
		default:
			return out, false
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
				return out, false
			}
			out.SetInt(int64(u))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if out.OverflowUint(u) {
				return out, false
			}
			out.SetUint(u)
		case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
			f := float64(u)
			if f >= two64 || uint64(f) != u {
				return out, false
			}
			return fromFloat(out, f)
		default:
			return out, false
		}
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if f != math.Trunc(f) || f < -two63 || f >= two63 || out.OverflowInt(int64(f)) {
				return out, false
			}
			out.SetInt(int64(f))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if f != math.Trunc(f) || f < 0 || f >= two64 || out.OverflowUint(uint64(f)) {
				return out, false
			}
			out.SetUint(uint64(f))
		case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
			return fromFloat(out, f)
		default:
			return out, false
		}
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		switch t.Kind() {
		case reflect.Complex128:
			out.SetComplex(c)
		case reflect.Complex64:
			if !fitsFloat32(real(c)) || !fitsFloat32(imag(c)) {
				return out, false
			}
			out.SetComplex(c)
		default:
			return out, false
		}
	default:
		return out, false
	}
	return out, true
}

func fitsFloat32(f float64) bool {
	return math.IsNaN(f) || float64(float32(f)) == f
}

func fromFloat(out reflect.Value, f float64) (reflect.Value, bool) {
	switch out.Kind() {
	case reflect.Float32:
		if !fitsFloat32(f) {
			return out, false
		}
		out.SetFloat(f)
	case reflect.Float64:
		out.SetFloat(f)
	case reflect.Complex64:
		if !fitsFloat32(f) {
			return out, false
		}
		out.SetComplex(complex(f, 0))
	case reflect.Complex128:
		out.SetComplex(complex(f, 0))
	default:
		return out, false
	}
	return out, true
}

func describeArgs(args []any) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		switch v := a.(type) {
		case *Object:
			b.WriteString(string(v.Type()))
		case EnumValue:
			if v.tag != nil {
				b.WriteString(v.tag.name)
			} else {
				b.WriteString("<untagged>")
			}
		case nil:
			b.WriteString(string(RefNothing))
		default:
			if p, ok := primitiveSpec(reflect.TypeOf(a)); ok {
				b.WriteString(string(p.ref))
			} else {
				b.WriteString(goTypeName(reflect.TypeOf(a)))
			}
		}
	}
	b.WriteByte(')')
	return b.String()
}

func describeCands(cands []overload) string {
	sigs := make([]string, len(cands))
	for i, c := range cands {
		sigs[i] = formatSig(c.params)
	}
	return strings.Join(sigs, " | ")
}
