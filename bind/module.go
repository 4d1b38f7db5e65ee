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
	"io"
	"reflect"

	"github.com/casacore/casabind/internal/debug"
	"github.com/sirupsen/logrus"
)

// Option configures a Module.
type Option func(*Module)

// WithLogger traces declarations to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Module) { m.log = log }
}

// SymbolOption configures a symbol when it is declared.
type SymbolOption func(*symbolConfig)

type symbolConfig struct {
	super  string
	scoped bool
	bits   bool
}

// Super declares base as the supertype of the new symbol. Base must already
// exist; naming it links it.
func Super(base string) SymbolOption {
	return func(c *symbolConfig) { c.super = base }
}

// Scoped keeps the constants of an enum out of the module namespace.
func Scoped() SymbolOption {
	return func(c *symbolConfig) { c.scoped = true }
}

// BitFlags marks an enum whose constants combine with Or.
func BitFlags() SymbolOption {
	return func(c *symbolConfig) { c.bits = true }
}

// Module is the registration builder handed to a module entry point. It is
// not safe for concurrent use; registration is strictly sequential.
//
// The first declaration error is kept and every later operation becomes a
// no-op, so an entry point can be written as a straight script and the
// error is reported once by Load.
type Module struct {
	name    string
	log     logrus.FieldLogger
	names   map[string]string // exported name -> what claimed it
	symbols map[string]*Symbol
	order   []*Symbol
	byType  map[reflect.Type]*TypeBinding
	enums   map[reflect.Type]*Symbol
	funcs   map[string][]*Method
	fnames  []string
	consts  map[string]EnumValue
	current *Symbol
	err     error
}

// NewModule returns an empty builder. Most callers use Load instead.
func NewModule(name string, opts ...Option) *Module {
	m := &Module{
		name:    name,
		names:   make(map[string]string),
		symbols: make(map[string]*Symbol),
		byType:  make(map[reflect.Type]*TypeBinding),
		enums:   make(map[reflect.Type]*Symbol),
		funcs:   make(map[string][]*Method),
		consts:  make(map[string]EnumValue),
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		m.log = l
	}
	return m
}

func (m *Module) Name() string { return m.name }

// Err returns the first declaration error, if any.
func (m *Module) Err() error { return m.err }

// Symbol returns a declared symbol.
func (m *Module) Symbol(name string) (*Symbol, bool) {
	s, ok := m.symbols[name]
	return s, ok
}

func (m *Module) fail(err error) {
	if m.err == nil {
		m.err = err
		m.log.WithError(err).Error("module declaration failed")
	}
}

// claim reserves an exported name in the module namespace.
func (m *Module) claim(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty exported name", ErrUndeclared)
	}
	if IsPrimitive(name) {
		return fmt.Errorf("%w: %q is a reserved primitive name", ErrDuplicate, name)
	}
	if prev, ok := m.names[name]; ok {
		return fmt.Errorf("%w: %q already exported as %s", ErrDuplicate, name, prev)
	}
	return nil
}

// finishCurrent links the symbol under declaration; the script has moved on.
func (m *Module) finishCurrent() {
	if m.current != nil {
		m.link(m.current)
	}
}

func (m *Module) declare(name string, kind Kind, goType reflect.Type, opts []SymbolOption) *Symbol {
	if m.err != nil {
		return nil
	}
	m.finishCurrent()
	if m.err != nil {
		return nil
	}

	var cfg symbolConfig
	for _, o := range opts {
		o(&cfg)
	}

	if err := m.claim(name); err != nil {
		m.fail(err)
		return nil
	}
	if goType != nil {
		if p, ok := primitiveSpec(goType); ok {
			m.fail(fmt.Errorf("%w: Go type %s is the primitive %s", ErrInconsistent, goTypeName(goType), p.ref))
			return nil
		}
		if b, ok := m.byType[goType]; ok {
			m.fail(fmt.Errorf("%w: Go type %s already bound as %s", ErrDuplicate, goTypeName(goType), b.Ref()))
			return nil
		}
		if e, ok := m.enums[goType]; ok {
			m.fail(fmt.Errorf("%w: Go type %s already bound as enum %s", ErrDuplicate, goTypeName(goType), e.name))
			return nil
		}
	}

	sym := &Symbol{
		name:   name,
		kind:   kind,
		state:  Declared,
		order:  len(m.order),
		goType: goType,
		scoped: cfg.scoped,
		bits:   cfg.bits,
	}

	if cfg.super != "" {
		base, ok := m.symbols[cfg.super]
		if !ok {
			m.fail(fmt.Errorf("%w: supertype %q of %q is not declared", ErrUndeclared, cfg.super, name))
			return nil
		}
		if base.kind != KindType {
			m.fail(fmt.Errorf("%w: supertype %q of %q is a %s", ErrInconsistent, base.name, name, base.kind))
			return nil
		}
		m.link(base)
		sym.super = base
	}

	m.names[name] = kind.String()
	m.symbols[name] = sym
	m.order = append(m.order, sym)
	m.current = sym
	m.log.WithFields(logrus.Fields{"symbol": name, "kind": kind, "state": sym.state}).Debug("declared")
	return sym
}

// link moves sym to Linked after checking that every binding of a
// parametric symbol exposes the same method surface.
func (m *Module) link(sym *Symbol) {
	if sym.state != Declared {
		return
	}
	if m.current == sym {
		m.current = nil
	}
	if sym.kind == KindParametric && m.err == nil {
		want := sym.methodNames()
		for _, b := range sym.entries[min(1, len(sym.entries)):] {
			if len(b.methods) != len(want) {
				m.fail(fmt.Errorf("%w: %s exposes %v, %s exposes %v",
					ErrInconsistent, sym.entries[0].Ref(), sym.entries[0].sortedNames(), b.Ref(), b.sortedNames()))
				break
			}
			for name := range b.methods {
				if _, ok := want[name]; !ok {
					m.fail(fmt.Errorf("%w: %s has method %q missing from %s",
						ErrInconsistent, b.Ref(), name, sym.entries[0].Ref()))
					break
				}
			}
		}
	}
	sym.state = Linked
	m.log.WithFields(logrus.Fields{"symbol": sym.name, "state": sym.state, "bindings": len(sym.entries)}).Debug("linked")
}

// resolve maps a Go type used in a signature to its host-visible reference.
// self is the symbol under declaration, the only one that may be referenced
// while still Declared.
func (m *Module) resolve(t reflect.Type, self *Symbol) (paramSpec, error) {
	if b, ok := m.byType[t]; ok {
		if b.symbol.state != Linked && b.symbol != self {
			return paramSpec{}, fmt.Errorf("%w: %s is referenced before it is linked", ErrUndeclared, b.Ref())
		}
		return paramSpec{ref: b.Ref(), typ: t, kind: refBound, binding: b}, nil
	}
	if e, ok := m.enums[t]; ok {
		return paramSpec{ref: TypeRef(e.name), typ: t, kind: refEnum, enum: e}, nil
	}
	if p, ok := primitiveSpec(t); ok {
		return p, nil
	}
	return paramSpec{}, fmt.Errorf("%w: no binding for Go type %s", ErrUndeclared, goTypeName(t))
}

func (m *Module) resolveAll(ts []reflect.Type, self *Symbol) ([]paramSpec, error) {
	out := make([]paramSpec, len(ts))
	for i, t := range ts {
		p, err := m.resolve(t, self)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// newMethod resolves the adapter of an overload of name.
func (m *Module) newMethod(name string, a Adapter, self *Symbol, member bool, effect Effect) (*Method, error) {
	params, err := m.resolveAll(a.params, self)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	meth := &Method{name: name, params: params, effect: effect, member: member, call: a.call}
	if a.ret != nil {
		ret, err := m.resolve(a.ret, self)
		if err != nil {
			return nil, fmt.Errorf("%s result: %w", name, err)
		}
		meth.ret = &ret
	}
	return meth, nil
}

func checkOverload(existing []*Method, meth *Method, owner string) error {
	for _, o := range existing {
		if sameRefs(o.params, meth.params) {
			return fmt.Errorf("%w: %s.%s%s declared twice", ErrAmbiguous, owner, meth.name, formatSig(meth.params))
		}
	}
	return nil
}

// Func attaches a free forwarding function. Overloads of one name are
// allowed as long as their parameter lists differ. Declaring a function
// ends the declaration of the current symbol.
func (m *Module) Func(name string, a Adapter, opts ...MethodOption) *Module {
	if m.err != nil {
		return m
	}
	m.finishCurrent()
	if m.err != nil {
		return m
	}
	if _, ok := m.funcs[name]; !ok {
		if err := m.claim(name); err != nil {
			m.fail(err)
			return m
		}
	}
	meth, err := m.newMethod(name, a, nil, false, Pure)
	if err != nil {
		m.fail(err)
		return m
	}
	for _, o := range opts {
		o(meth)
	}
	if err := checkOverload(m.funcs[name], meth, m.name); err != nil {
		m.fail(err)
		return m
	}
	if _, ok := m.funcs[name]; !ok {
		m.names[name] = "function"
		m.fnames = append(m.fnames, name)
	}
	m.funcs[name] = append(m.funcs[name], meth)
	debug.Log("bind", func() string { return "func " + meth.Signature() })
	return m
}

// linkAll links every symbol still Declared.
func (m *Module) linkAll() {
	for _, s := range m.order {
		m.link(s)
	}
}
