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
)

// TypeRef is a host-visible type name: a primitive ("Float64"), a host
// slice ("Slice{Float64}"), a plain symbol ("Table") or one binding of a
// parametric symbol ("Array{Float64}").
type TypeRef string

const (
	RefAny     TypeRef = "Any"
	RefNothing TypeRef = "Nothing"
)

// Param builds the reference of the binding of symbol instantiated over param.
func Param(symbol string, param TypeRef) TypeRef {
	if param == "" {
		return TypeRef(symbol)
	}
	return TypeRef(symbol + "{" + string(param) + "}")
}

// Split separates a reference into its symbol name and parameter.
func (r TypeRef) Split() (symbol string, param TypeRef) {
	s := string(r)
	if i := strings.IndexByte(s, '{'); i > 0 && strings.HasSuffix(s, "}") {
		return s[:i], TypeRef(s[i+1 : len(s)-1])
	}
	return s, ""
}

func (r TypeRef) String() string { return string(r) }

var primitiveRefs = map[reflect.Type]TypeRef{
	reflect.TypeFor[bool]():       "Bool",
	reflect.TypeFor[int8]():       "Int8",
	reflect.TypeFor[uint8]():      "UInt8",
	reflect.TypeFor[int16]():      "Int16",
	reflect.TypeFor[uint16]():     "UInt16",
	reflect.TypeFor[int32]():      "Int32",
	reflect.TypeFor[uint32]():     "UInt32",
	reflect.TypeFor[int64]():      "Int64",
	reflect.TypeFor[uint64]():     "UInt64",
	reflect.TypeFor[int]():        "Int",
	reflect.TypeFor[float32]():    "Float32",
	reflect.TypeFor[float64]():    "Float64",
	reflect.TypeFor[complex64]():  "ComplexF32",
	reflect.TypeFor[complex128](): "ComplexF64",
	reflect.TypeFor[string]():     "String",
	reflect.TypeFor[any]():        RefAny,
}

var primitiveNames = func() map[string]bool {
	out := make(map[string]bool, len(primitiveRefs))
	for _, r := range primitiveRefs {
		out[string(r)] = true
	}
	out[string(RefNothing)] = true
	return out
}()

// IsPrimitive reports whether name is reserved for a host primitive.
func IsPrimitive(name string) bool {
	if primitiveNames[name] {
		return true
	}
	sym, _ := TypeRef(name).Split()
	return sym == "Slice"
}

type refKind int8

const (
	refPrimitive refKind = iota
	refSlice
	refAny
	refBound
	refEnum
)

// paramSpec is a resolved parameter or result: its reference and how values
// of it cross the boundary.
type paramSpec struct {
	ref     TypeRef
	typ     reflect.Type
	kind    refKind
	binding *TypeBinding
	enum    *Symbol
}

func primitiveSpec(t reflect.Type) (paramSpec, bool) {
	if r, ok := primitiveRefs[t]; ok {
		k := refPrimitive
		if r == RefAny {
			k = refAny
		}
		return paramSpec{ref: r, typ: t, kind: k}, true
	}
	// named slice types such as a shape type are bindable, not host slices
	if t.Kind() == reflect.Slice && t.Name() == "" {
		if r, ok := primitiveRefs[t.Elem()]; ok && r != RefAny {
			return paramSpec{ref: Param("Slice", r), typ: t, kind: refSlice}, true
		}
	}
	return paramSpec{}, false
}

func (p paramSpec) String() string { return string(p.ref) }

func formatSig(params []paramSpec) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(p.ref))
	}
	b.WriteByte(')')
	return b.String()
}

func sameRefs(a, b []paramSpec) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ref != b[i].ref {
			return false
		}
	}
	return true
}

func goTypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", t)
}
