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
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Registry is the frozen result of a successful Load. It is safe for
// concurrent use; nothing in it changes after Load returns.
type Registry struct {
	name        string
	log         logrus.FieldLogger
	symbols     map[string]*Symbol
	order       []*Symbol
	byType      map[reflect.Type]*TypeBinding
	enums       map[reflect.Type]*Symbol
	funcs       map[string][]*Method
	fnames      []string
	consts      map[string]EnumValue
	fingerprint uint64
}

// Load runs entry against a fresh Module and links every symbol. Any
// declaration error, returned error or panic aborts the load: no partial
// registry is ever returned.
func Load(name string, entry func(*Module) error, opts ...Option) (reg *Registry, err error) {
	m := NewModule(name, opts...)
	defer func() {
		if r := recover(); r != nil {
			reg, err = nil, fmt.Errorf("bind: module %s panicked during load: %v", name, r)
			m.log.WithError(err).Error("module load aborted")
		}
	}()

	if err := entry(m); err != nil {
		m.fail(err)
	}
	if m.err == nil {
		m.linkAll()
	}
	if m.err != nil {
		return nil, fmt.Errorf("bind: load %s: %w", name, m.err)
	}

	reg = &Registry{
		name:    m.name,
		log:     m.log,
		symbols: m.symbols,
		order:   m.order,
		byType:  m.byType,
		enums:   m.enums,
		funcs:   m.funcs,
		fnames:  m.fnames,
		consts:  m.consts,
	}
	reg.fingerprint = reg.computeFingerprint()
	m.log.WithFields(logrus.Fields{
		"module":      name,
		"symbols":     len(reg.order),
		"functions":   len(reg.fnames),
		"fingerprint": fmt.Sprintf("%016x", reg.fingerprint),
	}).Info("module loaded")
	return reg, nil
}

func (r *Registry) Name() string { return r.name }

// Symbol returns an exported symbol by name.
func (r *Registry) Symbol(name string) (*Symbol, bool) {
	s, ok := r.symbols[name]
	return s, ok
}

// Symbols returns every symbol in declaration order.
func (r *Registry) Symbols() []*Symbol {
	return append([]*Symbol(nil), r.order...)
}

// Functions returns the names of the free functions in declaration order.
func (r *Registry) Functions() []string {
	return append([]string(nil), r.fnames...)
}

// Overloads returns the overloads of a free function.
func (r *Registry) Overloads(name string) []*Method {
	return append([]*Method(nil), r.funcs[name]...)
}

// Names returns every name of the module namespace, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.symbols)+len(r.funcs)+len(r.consts))
	for n := range r.symbols {
		out = append(out, n)
	}
	for n := range r.funcs {
		out = append(out, n)
	}
	for n := range r.consts {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Constant looks up an enum constant. Unscoped constants are found by their
// bare name, every constant by "Enum.Name".
func (r *Registry) Constant(name string) (EnumValue, bool) {
	if v, ok := r.consts[name]; ok {
		return v, true
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		if s, ok := r.symbols[name[:i]]; ok && s.kind == KindEnum {
			return s.Constant(name[i+1:])
		}
	}
	return EnumValue{}, false
}

// Binding resolves an exported type reference such as Array{Int32}.
func (r *Registry) Binding(ref TypeRef) (*TypeBinding, error) {
	name, param := ref.Split()
	s, ok := r.symbols[name]
	if !ok {
		return nil, fmt.Errorf("%w: symbol %q", ErrNotFound, name)
	}
	if s.kind == KindEnum {
		return nil, fmt.Errorf("%w: %s is an enum", ErrNotFound, name)
	}
	if b, ok := s.byParam[param]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// New constructs a host object of the exported type ref.
func (r *Registry) New(ref TypeRef, args ...any) (*Object, error) {
	b, err := r.Binding(ref)
	if err != nil {
		return nil, err
	}
	if len(b.ctors) == 0 {
		return nil, fmt.Errorf("%w: %s has no constructor", ErrNotFound, ref)
	}
	c, conv, err := selectOverload(string(ref), ctorOverloads(b), args)
	if err != nil {
		return nil, err
	}
	v, err := c.run(conv)
	if err != nil {
		if b.finalize != nil && !isNil(v) {
			b.finalize(v)
		}
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	if isNil(v) {
		return nil, fmt.Errorf("%w: %s constructor returned nil", ErrNoMatch, ref)
	}
	return newObject(r, r.bindingOf(v, b), v), nil
}

// CallFunc invokes a free function.
func (r *Registry) CallFunc(name string, args ...any) (any, error) {
	ms, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: function %q", ErrNotFound, name)
	}
	return r.invoke(name, methodOverloads(ms), args)
}

func (r *Registry) invoke(name string, cands []overload, args []any) (any, error) {
	c, conv, err := selectOverload(name, cands, args)
	if err != nil {
		return nil, err
	}
	v, err := c.run(conv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if c.ret == nil {
		return nil, nil
	}
	return r.wrapAs(*c.ret, v), nil
}

// Wrap converts a native Go value into its host form: bound types become
// Objects and enum types become EnumValues. Other values are returned as is.
func (r *Registry) Wrap(v any) any {
	if isNil(v) {
		return nil
	}
	t := reflect.TypeOf(v)
	if b, ok := r.byType[t]; ok {
		return newObject(r, b, v)
	}
	if e, ok := r.enums[t]; ok {
		return EnumValue{tag: e, value: intOf(reflect.ValueOf(v))}
	}
	return v
}

func (r *Registry) wrapAs(p paramSpec, v any) any {
	switch p.kind {
	case refBound:
		if isNil(v) {
			return nil
		}
		return newObject(r, r.bindingOf(v, p.binding), v)
	case refEnum:
		return EnumValue{tag: p.enum, value: intOf(reflect.ValueOf(v))}
	case refAny:
		return r.Wrap(v)
	}
	return v
}

// bindingOf prefers the binding of the dynamic type of v, so that a value
// returned through an interface keeps its most derived exported type.
func (r *Registry) bindingOf(v any, static *TypeBinding) *TypeBinding {
	if b, ok := r.byType[reflect.TypeOf(v)]; ok {
		return b
	}
	return static
}

func intOf(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(v.Uint())
	}
	return v.Int()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
