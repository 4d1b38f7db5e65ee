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

// Command elemgen writes the per-element-type apply lists of the casabind
// registration script.
//
//	go run ./internal/tools/elemgen -o elements.gen.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"text/template"
)

// element is one entry of the closed element-type list.
type element struct {
	Go string
	// Vector marks types only vectors and storages are instantiated for.
	Vector bool
}

var elements = []element{
	{Go: "bool"},
	{Go: "int8"},
	{Go: "uint8"},
	{Go: "int16"},
	{Go: "uint16"},
	{Go: "int32"},
	{Go: "uint32"},
	{Go: "int64"},
	{Go: "float32"},
	{Go: "float64"},
	{Go: "complex64"},
	{Go: "complex128"},
	{Go: "string"},
	{Go: "casa.RowNr", Vector: true},
}

// list is one generated function returning a declaration per element.
type list struct {
	Name     string
	Decl     string
	Recv     bool
	Elem     string
	Vector   bool
	Elements []element
}

var lists = []list{
	{Name: "storages", Decl: "storageOf", Elem: "func(*bind.Parametric)", Vector: true},
	{Name: "vectors", Decl: "vectorOf", Recv: true, Elem: "func(*bind.Parametric)", Vector: true},
	{Name: "arrays", Decl: "arrayOf", Recv: true, Elem: "func(*bind.Parametric)"},
	{Name: "scalarColumnDescs", Decl: "scalarColumnDescOf", Elem: "func(*bind.Parametric)"},
	{Name: "arrayColumnDescs", Decl: "arrayColumnDescOf", Elem: "func(*bind.Parametric)"},
	{Name: "recordFields", Decl: "recordFieldOf", Elem: "func(*bind.TypeWrapper[*tables.TableRecord])"},
	{Name: "scalarColumns", Decl: "scalarColumnOf", Elem: "func(*bind.Parametric)"},
	{Name: "arrayColumns", Decl: "arrayColumnOf", Elem: "func(*bind.Parametric)"},
}

const src = `// Licensed to the Apache Software Foundation (ASF) under one
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

// Code generated by elemgen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/casacore/casabind/bind"
	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/tables"
)
{{range .Lists}}
func {{if .Recv}}(b *Bindings) {{end}}{{.Name}}() []{{.Elem}} {
	return []{{.Elem}}{
{{- $l := .}}{{range .Elements}}
		{{$l.Decl}}[{{.Go}}]{{if $l.Recv}}(b){{end}},
{{- end}}
	}
}
{{end}}`

func main() {
	out := flag.String("o", "elements.gen.go", "output file")
	pkg := flag.String("pkg", "casabind", "package name")
	flag.Parse()

	if err := run(*out, *pkg); err != nil {
		fmt.Fprintln(os.Stderr, "elemgen:", err)
		os.Exit(1)
	}
}

func run(out, pkg string) error {
	for i := range lists {
		for _, e := range elements {
			if e.Vector && !lists[i].Vector {
				continue
			}
			lists[i].Elements = append(lists[i].Elements, e)
		}
	}

	tmpl, err := template.New("elements").Parse(src)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Package string
		Lists   []list
	}{pkg, lists}); err != nil {
		return err
	}
	code, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w\n%s", err, buf.Bytes())
	}
	return os.WriteFile(out, code, 0o644)
}
