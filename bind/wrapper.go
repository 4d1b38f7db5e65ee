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
	"reflect"

	"github.com/sirupsen/logrus"
)

// MethodOption annotates a method or free function.
type MethodOption func(*Method)

// Mutates marks an operation that changes its receiver.
func Mutates() MethodOption { return func(m *Method) { m.effect = Mutating } }

// Allocates marks an operation returning a new native object the caller
// owns and must release.
func Allocates() MethodOption { return func(m *Method) { m.effect = Allocating } }

// TypeWrapper attaches constructors and methods to the binding of the Go
// type T while its symbol is Declared.
type TypeWrapper[T any] struct {
	m *Module
	b *TypeBinding
}

// Binding returns the binding under construction, nil after a failed
// declaration.
func (w *TypeWrapper[T]) Binding() *TypeBinding { return w.b }

func (w *TypeWrapper[T]) open(what string) bool {
	if w.m.err != nil || w.b == nil {
		return false
	}
	if w.b.symbol.state != Declared {
		w.m.fail(fmt.Errorf("%w: %s added to %s", ErrSealed, what, w.b.Ref()))
		return false
	}
	return true
}

// Constructor attaches a constructor overload. The adapter must produce a T.
func (w *TypeWrapper[T]) Constructor(a Adapter) *TypeWrapper[T] {
	if !w.open("constructor") {
		return w
	}
	if a.ret != w.b.goType {
		w.m.fail(fmt.Errorf("%w: constructor of %s returns %s", ErrInconsistent, w.b.Ref(), goTypeName(a.ret)))
		return w
	}
	params, err := w.m.resolveAll(a.params, w.b.symbol)
	if err != nil {
		w.m.fail(fmt.Errorf("%s constructor: %w", w.b.Ref(), err))
		return w
	}
	for _, c := range w.b.ctors {
		if sameRefs(c.params, params) {
			w.m.fail(fmt.Errorf("%w: constructor %s%s declared twice", ErrAmbiguous, w.b.Ref(), formatSig(params)))
			return w
		}
	}
	w.b.ctors = append(w.b.ctors, &Constructor{params: params, call: a.call})
	return w
}

// Method attaches an overload of name. The first parameter of the adapter
// is the receiver and must be T.
func (w *TypeWrapper[T]) Method(name string, a Adapter, opts ...MethodOption) *TypeWrapper[T] {
	if !w.open("method " + name) {
		return w
	}
	if a.Arity() == 0 || a.params[0] != w.b.goType {
		w.m.fail(fmt.Errorf("%w: method %s.%s does not take %s as receiver",
			ErrInconsistent, w.b.Ref(), name, goTypeName(w.b.goType)))
		return w
	}
	meth, err := w.m.newMethod(name, a, w.b.symbol, true, Pure)
	if err != nil {
		w.m.fail(fmt.Errorf("%s.%w", w.b.Ref(), err))
		return w
	}
	for _, o := range opts {
		o(meth)
	}
	if err := checkOverload(w.b.methods[name], meth, string(w.b.Ref())); err != nil {
		w.m.fail(err)
		return w
	}
	w.b.addMethod(meth)
	return w
}

// Finalizer sets the release hook run once when a host object wrapping a T
// is released, and on a value whose constructor failed.
func (w *TypeWrapper[T]) Finalizer(f func(T)) *TypeWrapper[T] {
	if !w.open("finalizer") {
		return w
	}
	w.b.finalize = func(v any) {
		if t, ok := v.(T); ok {
			f(t)
		}
	}
	return w
}

// Link ends the declaration of a plain type. Bindings of a parametric
// symbol are linked together through the Parametric.
func (w *TypeWrapper[T]) Link() {
	if w.b != nil && w.b.symbol.kind == KindType {
		w.m.link(w.b.symbol)
	}
}

func (m *Module) bindType(sym *Symbol, param TypeRef, t reflect.Type) *TypeBinding {
	if sym.super != nil {
		base := sym.super.goType
		if base == nil || !t.AssignableTo(base) {
			m.fail(fmt.Errorf("%w: %s cannot stand in for supertype %s (%s)",
				ErrInconsistent, goTypeName(t), sym.super.name, goTypeName(base)))
			return nil
		}
	}
	b := &TypeBinding{symbol: sym, param: param, goType: t}
	sym.addBinding(b)
	m.byType[t] = b
	return b
}

// AddType declares a plain exported type bound to the Go type T. With the
// Super option T must be assignable to the Go type of the supertype.
func AddType[T any](m *Module, name string, opts ...SymbolOption) *TypeWrapper[T] {
	t := typeOf[T]()
	sym := m.declare(name, KindType, t, opts)
	if sym == nil {
		return &TypeWrapper[T]{m: m}
	}
	return &TypeWrapper[T]{m: m, b: m.bindType(sym, "", t)}
}

// Parametric is an exported symbol backed by one binding per element type.
type Parametric struct {
	m   *Module
	sym *Symbol
}

// AddParametric declares a parametric symbol. Its bindings are added with
// Instantiate, usually through Apply and a generated element list.
func AddParametric(m *Module, name string, opts ...SymbolOption) *Parametric {
	return &Parametric{m: m, sym: m.declare(name, KindParametric, nil, opts)}
}

// Symbol returns the declared symbol, nil after a failed declaration.
func (p *Parametric) Symbol() *Symbol { return p.sym }

// Module returns the builder p belongs to.
func (p *Parametric) Module() *Module { return p.m }

// Apply runs every declaration callback against p, typically one per
// element type.
func (p *Parametric) Apply(decls ...func(*Parametric)) *Parametric {
	for _, d := range decls {
		if p.m.err != nil {
			break
		}
		d(p)
	}
	return p
}

// Link ends the declaration and checks that every binding exposes the same
// method names.
func (p *Parametric) Link() {
	if p.sym != nil {
		p.m.link(p.sym)
	}
}

// Instantiate adds the binding of p for the Go type T under param, so that
// T is exported as p{param}.
func Instantiate[T any](p *Parametric, param TypeRef) *TypeWrapper[T] {
	m := p.m
	w := &TypeWrapper[T]{m: m}
	if m.err != nil || p.sym == nil {
		return w
	}
	if p.sym.state != Declared {
		m.fail(fmt.Errorf("%w: binding %s added to %s", ErrSealed, Param(p.sym.name, param), p.sym.name))
		return w
	}
	if _, dup := p.sym.byParam[param]; dup {
		m.fail(fmt.Errorf("%w: %s bound twice", ErrDuplicate, Param(p.sym.name, param)))
		return w
	}
	t := typeOf[T]()
	if b, ok := m.byType[t]; ok {
		m.fail(fmt.Errorf("%w: Go type %s already bound as %s", ErrDuplicate, goTypeName(t), b.Ref()))
		return w
	}
	w.b = m.bindType(p.sym, param, t)
	if w.b != nil {
		m.log.WithFields(logrus.Fields{"binding": w.b.Ref(), "go": goTypeName(t)}).Debug("instantiated")
	}
	return w
}
