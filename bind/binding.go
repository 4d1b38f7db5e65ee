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

	"golang.org/x/exp/slices"
)

// Effect is the side-effect class of a method.
type Effect int8

const (
	Pure       Effect = iota // pure
	Mutating                 // mutating
	Allocating               // allocating
)

func (e Effect) String() string {
	switch e {
	case Pure:
		return "pure"
	case Mutating:
		return "mutating"
	case Allocating:
		return "allocating"
	}
	return "unknown"
}

// Method is one callable overload: a member of a binding or a free function.
type Method struct {
	name   string
	params []paramSpec
	ret    *paramSpec
	effect Effect
	member bool
	call   func(args []any) (any, error)
}

func (m *Method) Name() string   { return m.name }
func (m *Method) Effect() Effect { return m.effect }

// Member reports whether the first parameter is the receiver.
func (m *Method) Member() bool { return m.member }

// Params returns the host-visible parameter types, receiver included.
func (m *Method) Params() []TypeRef {
	out := make([]TypeRef, len(m.params))
	for i, p := range m.params {
		out[i] = p.ref
	}
	return out
}

// Returns is the host-visible result type.
func (m *Method) Returns() TypeRef {
	if m.ret == nil {
		return RefNothing
	}
	return m.ret.ref
}

// Signature renders the method as name(params) -> result.
func (m *Method) Signature() string {
	return m.name + formatSig(m.params) + " -> " + string(m.Returns())
}

// Constructor is one constructor overload of a binding.
type Constructor struct {
	params []paramSpec
	call   func(args []any) (any, error)
}

func (c *Constructor) Params() []TypeRef {
	out := make([]TypeRef, len(c.params))
	for i, p := range c.params {
		out[i] = p.ref
	}
	return out
}

func (c *Constructor) Signature() string { return formatSig(c.params) }

// TypeBinding is one concrete Go type registered under a symbol.
type TypeBinding struct {
	symbol   *Symbol
	param    TypeRef
	goType   reflect.Type
	ctors    []*Constructor
	methods  map[string][]*Method
	names    []string
	finalize func(any)
}

func (b *TypeBinding) Symbol() *Symbol { return b.symbol }

// Param is the element parameter; empty for plain types.
func (b *TypeBinding) Param() TypeRef { return b.param }

// Ref is the host-visible type of values of this binding.
func (b *TypeBinding) Ref() TypeRef { return Param(b.symbol.name, b.param) }

// GoType is the bound Go type.
func (b *TypeBinding) GoType() reflect.Type { return b.goType }

func (b *TypeBinding) Constructors() []*Constructor {
	return append([]*Constructor(nil), b.ctors...)
}

// MethodNames returns the exported method names in declaration order.
func (b *TypeBinding) MethodNames() []string {
	return append([]string(nil), b.names...)
}

// Methods returns the overloads of name declared on this binding itself.
func (b *TypeBinding) Methods(name string) []*Method {
	return append([]*Method(nil), b.methods[name]...)
}

// lookup returns the overloads of name on this binding or, failing that,
// on the nearest supertype that declares it.
func (b *TypeBinding) lookup(name string) []*Method {
	if ms := b.methods[name]; len(ms) > 0 {
		return ms
	}
	for sup := b.symbol.super; sup != nil; sup = sup.super {
		for _, sb := range sup.entries {
			if ms := sb.methods[name]; len(ms) > 0 {
				return ms
			}
		}
	}
	return nil
}

func (b *TypeBinding) addMethod(m *Method) {
	if b.methods == nil {
		b.methods = make(map[string][]*Method)
	}
	if _, ok := b.methods[m.name]; !ok {
		b.names = append(b.names, m.name)
	}
	b.methods[m.name] = append(b.methods[m.name], m)
}

func (b *TypeBinding) sortedNames() []string {
	out := b.MethodNames()
	slices.Sort(out)
	return out
}
