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
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"
)

// Object is a host handle on a native value of a bound type. Releasing an
// Object runs the binding's finalizer exactly once; a garbage collected
// Object that was never released is finalized the same way.
type Object struct {
	id       uuid.UUID
	reg      *Registry
	binding  *TypeBinding
	value    any
	released int32
}

func newObject(reg *Registry, b *TypeBinding, v any) *Object {
	o := &Object{id: uuid.New(), reg: reg, binding: b, value: v}
	if b.finalize != nil {
		runtime.SetFinalizer(o, func(o *Object) { o.Release() })
	}
	return o
}

// ID identifies the handle; two handles on the same native value have
// different ids.
func (o *Object) ID() uuid.UUID { return o.id }

// Type is the exported type of the handle, e.g. Array{Float64}.
func (o *Object) Type() TypeRef { return o.binding.Ref() }

func (o *Object) Binding() *TypeBinding { return o.binding }

func (o *Object) String() string {
	return fmt.Sprintf("%s<%s>", o.binding.Ref(), o.id.String()[:8])
}

// IsA reports whether the handle's symbol is ref or derives from it. A
// parametric ref also matches on its parameter.
func (o *Object) IsA(ref TypeRef) bool {
	sym, param := ref.Split()
	if param != "" {
		return o.binding.Ref() == ref
	}
	for cur := o.binding.symbol; cur != nil; cur = cur.super {
		if cur.name == sym {
			return true
		}
	}
	return false
}

// Value returns the native value.
func (o *Object) Value() (any, error) {
	if o.Released() {
		return nil, fmt.Errorf("%w: %s", ErrReleased, o)
	}
	return o.value, nil
}

// As returns the native value of o as T.
func As[T any](o *Object) (T, error) {
	var zero T
	v, err := o.Value()
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is not a %s", ErrNoMatch, o.Type(), goTypeName(typeOf[T]()))
	}
	return t, nil
}

// Call invokes a method of the handle's binding or of one of its
// supertypes.
func (o *Object) Call(method string, args ...any) (any, error) {
	if o.Released() {
		return nil, fmt.Errorf("%w: %s.%s", ErrReleased, o, method)
	}
	ms := o.binding.lookup(method)
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: %s has no method %q", ErrNotFound, o.Type(), method)
	}
	full := make([]any, 0, len(args)+1)
	full = append(full, o)
	full = append(full, args...)
	return o.reg.invoke(string(o.Type())+"."+method, methodOverloads(ms), full)
}

// Released reports whether Release has been called.
func (o *Object) Released() bool { return atomic.LoadInt32(&o.released) == 1 }

// Release drops the handle. It is idempotent.
func (o *Object) Release() {
	if !atomic.CompareAndSwapInt32(&o.released, 0, 1) {
		return
	}
	runtime.SetFinalizer(o, nil)
	if o.binding.finalize != nil {
		o.binding.finalize(o.value)
	}
}
