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
	"strconv"

	"golang.org/x/exp/constraints"
)

// EnumValue is a constant tagged with the enum symbol it belongs to. Values
// of different enums never compare equal, even when their integers agree.
type EnumValue struct {
	tag   *Symbol
	value int64
}

func (v EnumValue) Tag() *Symbol { return v.tag }
func (v EnumValue) Value() int64 { return v.value }

// Valid reports whether v carries a tag.
func (v EnumValue) Valid() bool { return v.tag != nil }

func (v EnumValue) String() string {
	if v.tag == nil {
		return "<untagged>(" + strconv.FormatInt(v.value, 10) + ")"
	}
	for _, c := range v.tag.consts {
		if c.Value.value == v.value {
			return v.tag.name + "." + c.Name
		}
	}
	return v.tag.name + "(" + strconv.FormatInt(v.value, 10) + ")"
}

// Or combines two flags of the same bit-flag enum.
func (v EnumValue) Or(o EnumValue) (EnumValue, error) {
	if v.tag == nil || v.tag != o.tag {
		return EnumValue{}, fmt.Errorf("%w: cannot combine %s and %s", ErrNoMatch, v, o)
	}
	if !v.tag.bits {
		return EnumValue{}, fmt.Errorf("%w: %s is not a bit-flag enum", ErrNoMatch, v.tag.name)
	}
	return EnumValue{tag: v.tag, value: v.value | o.value}, nil
}

// Has reports whether flag is set in v.
func (v EnumValue) Has(flag EnumValue) bool {
	return v.tag == flag.tag && v.value&flag.value == flag.value
}

// Constant is a named read-only value of an enum.
type Constant struct {
	Name  string
	Value EnumValue
}

// Integer is the set of Go types an enum can be bound to.
type Integer interface {
	constraints.Integer
}

// EnumWrapper attaches constants to an enum symbol while it is Declared.
type EnumWrapper[T Integer] struct {
	m   *Module
	sym *Symbol
}

// Symbol returns the enum symbol.
func (w *EnumWrapper[T]) Symbol() *Symbol { return w.sym }

// Const binds name to v. Constants of a scoped enum live in the enum's
// namespace; the others share the module namespace with every symbol and
// free function.
func (w *EnumWrapper[T]) Const(name string, v T) *EnumWrapper[T] {
	m := w.m
	if m.err != nil {
		return w
	}
	if w.sym.state != Declared {
		m.fail(fmt.Errorf("%w: constant %q added to %s", ErrSealed, name, w.sym.name))
		return w
	}
	if _, dup := w.sym.byConst[name]; dup {
		m.fail(fmt.Errorf("%w: constant %s.%s", ErrDuplicate, w.sym.name, name))
		return w
	}
	val := EnumValue{tag: w.sym, value: int64(v)}
	if !w.sym.scoped {
		if err := m.claim(name); err != nil {
			m.fail(err)
			return w
		}
		m.consts[name] = val
	}
	if w.sym.byConst == nil {
		w.sym.byConst = make(map[string]int)
	}
	w.sym.byConst[name] = len(w.sym.consts)
	w.sym.consts = append(w.sym.consts, Constant{Name: name, Value: val})
	return w
}

// Link ends the declaration of the enum.
func (w *EnumWrapper[T]) Link() { w.m.link(w.sym) }

// AddEnum declares an enumeration bound to the Go integer type T.
func AddEnum[T Integer](m *Module, name string, opts ...SymbolOption) *EnumWrapper[T] {
	sym := m.declare(name, KindEnum, typeOf[T](), opts)
	if sym == nil {
		return &EnumWrapper[T]{m: m, sym: &Symbol{name: name, kind: KindEnum}}
	}
	m.enums[sym.goType] = sym
	return &EnumWrapper[T]{m: m, sym: sym}
}
