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
	"reflect"
)

// Kind classifies an exported symbol.
type Kind int8

const (
	KindType       Kind = iota // type
	KindParametric             // parametric
	KindEnum                   // enum
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindParametric:
		return "parametric"
	case KindEnum:
		return "enum"
	}
	return "unknown"
}

// State is the registration state of a symbol.
type State int8

const (
	Unregistered State = iota // unregistered
	Declared                  // declared
	Linked                    // linked
)

func (s State) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case Declared:
		return "declared"
	case Linked:
		return "linked"
	}
	return "unknown"
}

// Symbol is a named entry point visible to the host.
type Symbol struct {
	name    string
	kind    Kind
	state   State
	super   *Symbol
	order   int
	goType  reflect.Type // enums and plain types
	bits    bool
	scoped  bool
	entries []*TypeBinding
	byParam map[TypeRef]*TypeBinding
	consts  []Constant
	byConst map[string]int
}

func (s *Symbol) Name() string   { return s.name }
func (s *Symbol) Kind() Kind     { return s.kind }
func (s *Symbol) State() State   { return s.state }
func (s *Symbol) Super() *Symbol { return s.super }

// Scoped reports whether the constants of an enum live in the enum's own
// namespace instead of the module namespace.
func (s *Symbol) Scoped() bool { return s.scoped }

// Bits reports whether the constants of an enum are bit flags.
func (s *Symbol) Bits() bool { return s.bits }

// Bindings returns the type bindings in registration order.
func (s *Symbol) Bindings() []*TypeBinding {
	return append([]*TypeBinding(nil), s.entries...)
}

// Binding returns the binding for param; param is empty for plain types.
func (s *Symbol) Binding(param TypeRef) (*TypeBinding, bool) {
	b, ok := s.byParam[param]
	return b, ok
}

// Constants returns the constants of an enum in registration order.
func (s *Symbol) Constants() []Constant {
	return append([]Constant(nil), s.consts...)
}

// Constant looks up a constant of an enum by name.
func (s *Symbol) Constant(name string) (EnumValue, bool) {
	i, ok := s.byConst[name]
	if !ok {
		return EnumValue{}, false
	}
	return s.consts[i].Value, true
}

// IsA reports whether s is base or derives from it.
func (s *Symbol) IsA(base *Symbol) bool {
	for cur := s; cur != nil; cur = cur.super {
		if cur == base {
			return true
		}
	}
	return false
}

func (s *Symbol) addBinding(b *TypeBinding) {
	if s.byParam == nil {
		s.byParam = make(map[TypeRef]*TypeBinding)
	}
	s.entries = append(s.entries, b)
	s.byParam[b.param] = b
}

// methodNames is the method surface of the first binding.
func (s *Symbol) methodNames() map[string]struct{} {
	if len(s.entries) == 0 {
		return nil
	}
	out := make(map[string]struct{})
	for name := range s.entries[0].methods {
		out[name] = struct{}{}
	}
	return out
}
