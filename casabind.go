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

package casabind

import (
	"path/filepath"

	"github.com/casacore/casabind/bind"
	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/appstate"
	"github.com/casacore/casabind/casa/tables"
	"github.com/casacore/casabind/internal/config"
	"github.com/casacore/casabind/memory"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ModuleName is the name the registry is loaded under.
const ModuleName = "CasacoreCxx"

// Bindings is the state the registration script closes over: the allocator
// behind every array and table created from the host, the application
// state source and the table defaults.
type Bindings struct {
	mem        memory.Allocator
	src        *appstate.Source
	lock       tables.LockOption
	scratchDir string
}

// Option configures Bindings.
type Option func(*Bindings)

// WithAllocator sets the allocator of host-created arrays and tables.
func WithAllocator(mem memory.Allocator) Option {
	return func(b *Bindings) { b.mem = mem }
}

// WithSource shares src with the host instead of a private source.
func WithSource(src *appstate.Source) Option {
	return func(b *Bindings) { b.src = src }
}

// WithLockOption sets the lock of tables opened without an explicit
// TableLock.
func WithLockOption(opt tables.LockOption) Option {
	return func(b *Bindings) { b.lock = opt }
}

// WithScratchDir sets where unnamed plain tables are created.
func WithScratchDir(dir string) Option {
	return func(b *Bindings) { b.scratchDir = dir }
}

func New(opts ...Option) *Bindings {
	b := &Bindings{
		mem:  memory.DefaultAllocator,
		src:  new(appstate.Source),
		lock: tables.DefaultLocking,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// FromConfig returns the Bindings and load options described by cfg. A
// configured measures directory is installed as the application state.
func FromConfig(cfg *config.Config) (*Bindings, []bind.Option, error) {
	lock, err := cfg.LockOption()
	if err != nil {
		return nil, nil, err
	}
	opts := []Option{WithAllocator(cfg.Allocator()), WithLockOption(lock)}
	if cfg.Tables != nil && cfg.Tables.ScratchDir != "" {
		opts = append(opts, WithScratchDir(cfg.Tables.ScratchDir))
	}
	b := New(opts...)
	log := cfg.Logger()
	if cfg.MeasuresDir != "" {
		if err := b.src.Initialize(appstate.NewHostState(cfg.MeasuresDir)); err != nil {
			return nil, nil, err
		}
		log.WithField("dir", cfg.MeasuresDir).Debug("measures directory installed")
	}
	return b, []bind.Option{bind.WithLogger(log)}, nil
}

func (b *Bindings) Allocator() memory.Allocator { return b.mem }
func (b *Bindings) Source() *appstate.Source    { return b.src }

// Define declares the whole module on m.
func (b *Bindings) Define(m *bind.Module) error {
	b.defineState(m)
	b.defineUtilities(m)
	b.defineArrays(m)
	b.defineTables(m)
	b.defineMeasures(m)
	return m.Err()
}

// Load loads the module described by b.
func (b *Bindings) Load(opts ...bind.Option) (*bind.Registry, error) {
	return bind.Load(ModuleName, b.Define, opts...)
}

// Define declares the module with default Bindings.
func Define(m *bind.Module) error { return New().Define(m) }

// Load loads the module with default Bindings.
func Load(opts ...bind.Option) (*bind.Registry, error) { return New().Load(opts...) }

func (b *Bindings) defineState(m *bind.Module) {
	bind.AddType[appstate.AppState](m, "AppState").
		Method("measuresDirectory", bind.Fn1(appstate.AppState.MeasuresDirectory)).
		Method("initialized", bind.Fn1(appstate.AppState.Initialized))

	bind.AddType[*appstate.HostState](m, "HostState", bind.Super("AppState")).
		Constructor(bind.Ctor1(func(dir string) (*appstate.HostState, error) {
			return appstate.NewHostState(dir), nil
		})).
		Method("check", bind.ProcE1((*appstate.HostState).Check))

	// every construction returns the one source of this registry
	bind.AddType[*appstate.Source](m, "AppStateSource").
		Constructor(bind.Ctor0(func() (*appstate.Source, error) { return b.src, nil })).
		Method("initialize", bind.ProcE2((*appstate.Source).Initialize), bind.Mutates()).
		Method("state", bind.Fn1((*appstate.Source).State)).
		Method("measuresDirectory", bind.FnE1((*appstate.Source).MeasuresDirectory))
}

func (b *Bindings) defineUtilities(m *bind.Module) {
	dt := bind.AddEnum[casa.DataType](m, "DataType")
	for t := casa.TpBool; t < casa.TpNumberOfTypes; t++ {
		dt.Const("Tp"+t.String(), t)
	}
	dt.Link()

	m.Func("isArray", bind.Fn1(casa.DataType.IsArray))
	m.Func("arrayOf", bind.Fn1(casa.ArrayOf))
	m.Func("scalarOf", bind.Fn1(casa.ScalarOf))
}

// newTable creates an unnamed table of typ. Plain tables go to the
// configured scratch directory when there is one.
func (b *Bindings) newTable(typ tables.TableType) (*tables.Table, error) {
	if typ == tables.Plain && b.scratchDir != "" {
		name := filepath.Join(b.scratchDir, "casabind-"+uuid.NewString())
		return tables.Open(b.mem, name, tables.Scratch, b.withLock())
	}
	return tables.NewTable(b.mem, typ)
}

func (b *Bindings) withLock() tables.OpenOption {
	return tables.WithLock(tables.NewTableLock(b.lock))
}

func logRelease(what string, err error) {
	if err != nil {
		logrus.WithError(err).WithField("object", what).Warn("release failed")
	}
}
