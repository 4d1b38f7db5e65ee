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

// Command casabind-ls loads the CasacoreCxx module and lists what it
// exports.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/casacore/casabind"
	"github.com/casacore/casabind/bind"
	"github.com/casacore/casabind/internal/config"
	"github.com/docopt/docopt-go"
	"github.com/olekukonko/tablewriter"
)

const usage = `CasacoreCxx binding lister.
Usage:
  casabind-ls -h | --help
  casabind-ls [--json]
  casabind-ls --functions
  casabind-ls --symbol=NAME
Options:
  -h --help       Show this screen.
  --json          Write the full manifest as JSON.
  --functions     List the free functions and their overloads.
  --symbol=NAME   Show the constants, constructors and methods of one symbol.`

func main() {
	opts, _ := docopt.ParseDoc(usage)
	var args struct {
		JSON      bool `docopt:"--json"`
		Functions bool
		Symbol    string
	}
	if err := opts.Bind(&args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	reg, err := load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading module:", err)
		os.Exit(1)
	}

	switch {
	case args.JSON:
		err = reg.Manifest().WriteJSON(os.Stdout)
	case args.Functions:
		listFunctions(os.Stdout, reg)
	case args.Symbol != "":
		err = showSymbol(os.Stdout, reg, args.Symbol)
	default:
		listSymbols(os.Stdout, reg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func load() (*bind.Registry, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	b, opts, err := casabind.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return b.Load(opts...)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func listSymbols(w io.Writer, reg *bind.Registry) {
	table := newTable(w, "#", "NAME", "KIND", "SUPER", "BINDINGS", "CONSTANTS")
	for i, s := range reg.Symbols() {
		super := ""
		if s.Super() != nil {
			super = s.Super().Name()
		}
		kind := s.Kind().String()
		if s.Scoped() {
			kind += " (scoped)"
		}
		if s.Bits() {
			kind += " (flags)"
		}
		table.Append([]string{
			strconv.Itoa(i), s.Name(), kind, super,
			strconv.Itoa(len(s.Bindings())), strconv.Itoa(len(s.Constants())),
		})
	}
	table.Render()
	fmt.Fprintf(w, "\n%s: %d symbols, %d functions, fingerprint %016x\n",
		reg.Name(), len(reg.Symbols()), len(reg.Functions()), reg.Fingerprint())
}

func listFunctions(w io.Writer, reg *bind.Registry) {
	table := newTable(w, "FUNCTION", "OVERLOAD", "EFFECT")
	for _, name := range reg.Functions() {
		for _, m := range reg.Overloads(name) {
			table.Append([]string{name, m.Signature(), m.Effect().String()})
		}
	}
	table.Render()
}

func showSymbol(w io.Writer, reg *bind.Registry, name string) error {
	s, ok := reg.Symbol(name)
	if !ok {
		return fmt.Errorf("%w: symbol %q", bind.ErrNotFound, name)
	}
	fmt.Fprintf(w, "%s %s\n", s.Kind(), s.Name())
	if s.Super() != nil {
		fmt.Fprintf(w, "  super: %s\n", s.Super().Name())
	}

	if cs := s.Constants(); len(cs) > 0 {
		table := newTable(w, "CONSTANT", "VALUE")
		for _, c := range cs {
			table.Append([]string{c.Name, strconv.FormatInt(c.Value.Value(), 10)})
		}
		table.Render()
	}

	for _, b := range s.Bindings() {
		fmt.Fprintf(w, "\n%s  (%s)\n", b.Ref(), b.GoType())
		table := newTable(w, "MEMBER", "SIGNATURE", "EFFECT")
		for _, c := range b.Constructors() {
			table.Append([]string{"new", c.Signature(), ""})
		}
		for _, n := range b.MethodNames() {
			for _, m := range b.Methods(n) {
				table.Append([]string{n, m.Signature(), m.Effect().String()})
			}
		}
		table.Render()
	}
	return nil
}
