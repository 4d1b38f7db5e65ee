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

	"github.com/goccy/go-json"
	"github.com/zeebo/xxh3"
)

// Manifest is a serializable description of a loaded registry.
type Manifest struct {
	Module      string             `json:"module"`
	Fingerprint string             `json:"fingerprint"`
	Symbols     []SymbolManifest   `json:"symbols"`
	Functions   []FunctionManifest `json:"functions,omitempty"`
}

type SymbolManifest struct {
	Name      string             `json:"name"`
	Kind      string             `json:"kind"`
	Super     string             `json:"super,omitempty"`
	Scoped    bool               `json:"scoped,omitempty"`
	BitFlags  bool               `json:"bitflags,omitempty"`
	Bindings  []BindingManifest  `json:"bindings,omitempty"`
	Constants []ConstantManifest `json:"constants,omitempty"`
}

type BindingManifest struct {
	Ref          string   `json:"ref"`
	GoType       string   `json:"go"`
	Constructors []string `json:"constructors,omitempty"`
	Methods      []string `json:"methods,omitempty"`
	Finalized    bool     `json:"finalized,omitempty"`
}

type ConstantManifest struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type FunctionManifest struct {
	Name      string   `json:"name"`
	Overloads []string `json:"overloads"`
}

// Manifest describes r in declaration order.
func (r *Registry) Manifest() Manifest {
	out := Manifest{
		Module:      r.name,
		Fingerprint: fmt.Sprintf("%016x", r.fingerprint),
		Symbols:     make([]SymbolManifest, 0, len(r.order)),
	}
	for _, s := range r.order {
		sm := SymbolManifest{
			Name:     s.name,
			Kind:     s.kind.String(),
			Scoped:   s.scoped,
			BitFlags: s.bits,
		}
		if s.super != nil {
			sm.Super = s.super.name
		}
		for _, b := range s.entries {
			bm := BindingManifest{
				Ref:       string(b.Ref()),
				GoType:    goTypeName(b.goType),
				Finalized: b.finalize != nil,
			}
			for _, c := range b.ctors {
				bm.Constructors = append(bm.Constructors, c.Signature())
			}
			for _, n := range b.names {
				for _, m := range b.methods[n] {
					bm.Methods = append(bm.Methods, m.Signature())
				}
			}
			sm.Bindings = append(sm.Bindings, bm)
		}
		for _, c := range s.consts {
			sm.Constants = append(sm.Constants, ConstantManifest{Name: c.Name, Value: c.Value.value})
		}
		out.Symbols = append(out.Symbols, sm)
	}
	for _, n := range r.fnames {
		fm := FunctionManifest{Name: n}
		for _, m := range r.funcs[n] {
			fm.Overloads = append(fm.Overloads, m.Signature())
		}
		out.Functions = append(out.Functions, fm)
	}
	return out
}

// WriteJSON writes the manifest as indented JSON.
func (m Manifest) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Fingerprint hashes the exported surface: two registries with the same
// symbols, signatures and constants in the same order share a fingerprint.
func (r *Registry) Fingerprint() uint64 { return r.fingerprint }

func (r *Registry) computeFingerprint() uint64 {
	h := xxh3.New()
	w := func(s string) {
		h.WriteString(s)
		h.Write([]byte{0})
	}
	w(r.name)
	for _, s := range r.order {
		w(s.kind.String())
		w(s.name)
		if s.super != nil {
			w("<:" + s.super.name)
		}
		for _, b := range s.entries {
			w(string(b.Ref()))
			for _, c := range b.ctors {
				w(c.Signature())
			}
			for _, n := range b.names {
				for _, m := range b.methods[n] {
					w(m.Signature())
				}
			}
		}
		for _, c := range s.consts {
			w(fmt.Sprintf("%s=%d", c.Name, c.Value.value))
		}
	}
	for _, n := range r.fnames {
		for _, m := range r.funcs[n] {
			w(m.Signature())
		}
	}
	return h.Sum64()
}
