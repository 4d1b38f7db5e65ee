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

package casabind_test

import (
	"path/filepath"
	"testing"

	"github.com/casacore/casabind"
	"github.com/casacore/casabind/bind"
	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/appstate"
	"github.com/casacore/casabind/casa/tables"
	"github.com/casacore/casabind/internal/config"
	"github.com/casacore/casabind/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, opts ...casabind.Option) (*bind.Registry, *casabind.Bindings) {
	t.Helper()
	b := casabind.New(opts...)
	reg, err := b.Load()
	require.NoError(t, err)
	return reg, b
}

func constant(t *testing.T, reg *bind.Registry, name string) bind.EnumValue {
	t.Helper()
	v, ok := reg.Constant(name)
	require.True(t, ok, name)
	return v
}

func newObject(t *testing.T, reg *bind.Registry, ref bind.TypeRef, args ...any) *bind.Object {
	t.Helper()
	o, err := reg.New(ref, args...)
	require.NoError(t, err)
	return o
}

func call(t *testing.T, o *bind.Object, method string, args ...any) any {
	t.Helper()
	v, err := o.Call(method, args...)
	require.NoError(t, err)
	return v
}

func TestLoad(t *testing.T) {
	reg, _ := load(t)
	assert.Equal(t, casabind.ModuleName, reg.Name())

	for _, s := range reg.Symbols() {
		assert.Equal(t, bind.Linked, s.State(), s.Name())
	}

	for name, n := range map[string]int{
		"Storage":          14,
		"Vector":           14,
		"Array":            13,
		"ScalarColumnDesc": 13,
		"ArrayColumnDesc":  13,
		"ScalarColumn":     13,
		"ArrayColumn":      13,
	} {
		s, ok := reg.Symbol(name)
		require.True(t, ok, name)
		assert.Equal(t, bind.KindParametric, s.Kind(), name)
		assert.Len(t, s.Bindings(), n, name)
	}
	_, err := reg.Binding("Vector{UInt64}")
	assert.NoError(t, err)
	_, err = reg.Binding("Array{UInt64}")
	assert.ErrorIs(t, err, bind.ErrNotFound)

	for name, super := range map[string]string{
		"HostState":        "AppState",
		"ScalarColumnDesc": "BaseColumnDesc",
		"ArrayColumnDesc":  "BaseColumnDesc",
		"MDirection":       "Measure",
		"Muvw":             "Measure",
	} {
		s, ok := reg.Symbol(name)
		require.True(t, ok, name)
		require.NotNil(t, s.Super(), name)
		assert.Equal(t, super, s.Super().Name(), name)
	}

	types, ok := reg.Symbol("MEpoch!Types")
	require.True(t, ok)
	assert.True(t, types.Scoped())
	opts, ok := reg.Symbol("ColumnOption")
	require.True(t, ok)
	assert.True(t, opts.Bits())

	for _, fn := range []string{"asTable", "defineTable", "deleteSubTable", "set", "putVector"} {
		assert.Contains(t, reg.Functions(), fn)
	}
	assert.Len(t, reg.Overloads("putVector"), 9)
	assert.Len(t, reg.Overloads("set"), 9)

	assert.EqualValues(t, casa.TpArrayInt64, constant(t, reg, "TpArrayInt64").Value())
	assert.EqualValues(t, tables.Memory, constant(t, reg, "Memory").Value())
	assert.EqualValues(t, 4, constant(t, reg, "TableOption.Scratch").Value())
	assert.EqualValues(t, 6, constant(t, reg, "MEpoch!Types.DEFAULT").Value())
}

func TestLoadIsDeterministic(t *testing.T) {
	a, _ := load(t)
	b, err := casabind.Load()
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Manifest(), b.Manifest())
}

// Every type mentioned by a constructor, method or function must belong to
// a symbol declared no later than the one using it.
func TestDeclarationOrder(t *testing.T) {
	reg, _ := load(t)
	order := make(map[string]int)
	for i, s := range reg.Symbols() {
		order[s.Name()] = i
	}
	check := func(user string, at int, refs ...bind.TypeRef) {
		for _, r := range refs {
			name, _ := r.Split()
			i, ok := order[name]
			if !ok {
				assert.True(t, bind.IsPrimitive(name), "%s mentions unknown %s", user, r)
				continue
			}
			assert.LessOrEqual(t, i, at, "%s mentions %s before it is declared", user, r)
		}
	}
	for i, s := range reg.Symbols() {
		for _, b := range s.Bindings() {
			for _, c := range b.Constructors() {
				check(string(b.Ref()), i, c.Params()...)
			}
			for _, name := range b.MethodNames() {
				for _, m := range b.Methods(name) {
					check(string(b.Ref())+"."+name, i, append(m.Params(), m.Returns())...)
				}
			}
		}
	}
	last := len(order)
	for _, fn := range reg.Functions() {
		for _, m := range reg.Overloads(fn) {
			check(fn, last, append(m.Params(), m.Returns())...)
		}
	}
}

func TestArrays(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	reg, _ := load(t, casabind.WithAllocator(mem))

	shape := newObject(t, reg, "IPosition", 2, 3)
	defer shape.Release()
	assert.Equal(t, 2, call(t, shape, "size"))
	assert.Equal(t, int64(3), call(t, shape, "getindex", 1))
	_, err := shape.Call("getindex", 2)
	assert.ErrorIs(t, err, casa.ErrIndex)

	pos := newObject(t, reg, "IPosition", 2, 1, 2)
	defer pos.Release()

	arr := newObject(t, reg, "Array{Float64}", shape)
	defer arr.Release()
	call(t, arr, "setindex!", pos, 2.5)
	assert.Equal(t, 2.5, call(t, arr, "getindex", pos))

	col := call(t, arr, "getindex", 2).(*bind.Object)
	assert.Equal(t, bind.TypeRef("Array{Float64}"), col.Type())
	assert.Equal(t, []float64{0, 2.5, 0}, call(t, col, "tovector"))
	col.Release()

	view := call(t, arr, "getStorage").(*bind.Object)
	assert.Equal(t, bind.TypeRef("Storage{Float64}"), view.Type())
	assert.Equal(t, 9, call(t, view, "length"))
	call(t, arr, "freeStorage", view)
	assert.Equal(t, true, call(t, view, "released"))
	view.Release()

	vshape := newObject(t, reg, "IPosition", 1, 3)
	defer vshape.Release()
	host := []float64{1, 2, 3}
	shared := newObject(t, reg, "Vector{Float64}", vshape, host, constant(t, reg, "SHARE"))
	host[0] = 10
	assert.Equal(t, 10.0, call(t, shared, "getindex", 0))
	shared.Release()

	copied := newObject(t, reg, "Vector{Float64}", vshape, host, constant(t, reg, "COPY"))
	host[1] = 20
	assert.Equal(t, 2.0, call(t, copied, "getindex", 1))
	copied.Release()

	owned := newObject(t, reg, "Vector{Int32}", vshape, []int32{7, 8, 9}, constant(t, reg, "TAKE_OVER"))
	assert.Equal(t, []int32{7, 8, 9}, call(t, owned, "tovector"))
	owned.Release()

	_, err = reg.New("Vector{Float64}", shape)
	assert.ErrorIs(t, err, casa.ErrInvalid)
	live := mem.CurrentAlloc()
	_, err = reg.New("Vector{Float64}", vshape, []float64{1, 2}, constant(t, reg, "TAKE_OVER"))
	assert.ErrorIs(t, err, casa.ErrInvalid)
	assert.Equal(t, live, mem.CurrentAlloc())

	huge := newObject(t, reg, "IPosition", 2, 3037000500)
	defer huge.Release()
	_, err = reg.New("Array{Float64}", huge)
	assert.ErrorIs(t, err, casa.ErrInvalid)

	rows := newObject(t, reg, "Vector{UInt64}", []uint64{4, 1})
	defer rows.Release()
	rn := newObject(t, reg, "RowNumbers", rows)
	assert.Equal(t, 2, call(t, rn, "length"))
}

func TestArrayElementTypes(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	reg, _ := load(t, casabind.WithAllocator(mem))

	shape := newObject(t, reg, "IPosition", 1, 3)
	defer shape.Release()
	first := newObject(t, reg, "IPosition", 1, 0)
	defer first.Release()
	copyPolicy := constant(t, reg, "COPY")

	tests := []struct {
		elem string
		data any
		want any
	}{
		{"Bool", []bool{true, false, false}, true},
		{"Int8", []int8{-8, 0, 0}, int8(-8)},
		{"UInt8", []uint8{8, 0, 0}, uint8(8)},
		{"Int16", []int16{-16, 0, 0}, int16(-16)},
		{"UInt16", []uint16{16, 0, 0}, uint16(16)},
		{"Int32", []int32{-32, 0, 0}, int32(-32)},
		{"UInt32", []uint32{32, 0, 0}, uint32(32)},
		{"Int64", []int64{-64, 0, 0}, int64(-64)},
		{"Float32", []float32{1.5, 0, 0}, float32(1.5)},
		{"Float64", []float64{2.5, 0, 0}, 2.5},
		{"ComplexF32", []complex64{1 + 2i, 0, 0}, complex64(1 + 2i)},
		{"ComplexF64", []complex128{3 - 4i, 0, 0}, 3 - 4i},
		{"String", []string{"VLA", "", ""}, "VLA"},
	}
	require.Len(t, tests, 13)
	for _, tt := range tests {
		t.Run(tt.elem, func(t *testing.T) {
			arr := newObject(t, reg, bind.Param("Array", bind.TypeRef(tt.elem)), shape, tt.data, copyPolicy)
			defer arr.Release()
			assert.Equal(t, 3, call(t, arr, "length"))
			assert.Equal(t, tt.want, call(t, arr, "getindex", first))
		})
	}
}

func TestTables(t *testing.T) {
	reg, _ := load(t)
	path := filepath.Join(t.TempDir(), "obs.tab")

	desc := newObject(t, reg, "ScalarColumnDesc{Float64}", "flux", "measured flux", "", "")
	assert.True(t, desc.IsA("BaseColumnDesc"))
	call(t, desc, "setDefault", 1.5)
	cd := newObject(t, reg, "ColumnDesc", desc)
	assert.Equal(t, "flux", call(t, cd, "name"))
	assert.Equal(t, true, call(t, cd, "isScalar"))

	fixed := newObject(t, reg, "IPosition", 1, 4)
	adesc := newObject(t, reg, "ArrayColumnDesc{Int32}", "chan", fixed, constant(t, reg, "ColumnDirect"))
	acd := newObject(t, reg, "ColumnDesc", adesc)
	assert.Equal(t, true, call(t, acd, "isFixedShape"))

	tab := newObject(t, reg, "Table", path, constant(t, reg, "TableOption.New"))
	call(t, tab, "addColumn", cd, false)
	call(t, tab, "addColumn", acd, false)
	call(t, tab, "addRow", 3, true)
	assert.Equal(t, uint64(3), call(t, tab, "nrow"))

	td := call(t, tab, "tableDesc").(*bind.Object)
	assert.Equal(t, []string{"flux", "chan"}, call(t, td, "columnNames"))
	assert.Equal(t, true, call(t, td, "hasColumn", "chan"))
	assert.Equal(t, false, call(t, td, "hasColumn", "nope"))
	set := call(t, td, "columnDescSet").(*bind.Object)
	assert.Equal(t, uint32(2), call(t, set, "ncolumn"))

	flux := newObject(t, reg, "ScalarColumn{Float64}", tab, "flux")
	assert.Equal(t, 1.5, call(t, flux, "getindex", 2))
	call(t, flux, "put", 0, 4.25)
	vec := call(t, flux, "getColumn").(*bind.Object)
	assert.Equal(t, []float64{4.25, 1.5, 1.5}, call(t, vec, "tovector"))
	vec.Release()
	flux.Release()

	_, err := reg.New("ScalarColumn{Int32}", tab, "flux")
	assert.ErrorIs(t, err, casa.ErrType)
	_, err = reg.New("ScalarColumn{Float64}", tab, "nope")
	assert.ErrorIs(t, err, tables.ErrNoColumn)

	chans := newObject(t, reg, "ArrayColumn{Int32}", tab, "chan")
	assert.Equal(t, 1, call(t, chans, "ndimColumn"))
	cell := newObject(t, reg, "Array{Int32}", fixed)
	one := newObject(t, reg, "IPosition", 1, 1)
	call(t, cell, "setindex!", one, int32(5))
	call(t, chans, "put", 1, cell)
	got := call(t, chans, "get", 1).(*bind.Object)
	assert.Equal(t, []int32{0, 5, 0, 0}, call(t, got, "tovector"))
	got.Release()
	chans.Release()

	kw := call(t, tab, "rwKeywordSet").(*bind.Object)
	telescope := newObject(t, reg, "RecordFieldId", "TELESCOPE")
	call(t, kw, "define!", telescope, "VLA")
	call(t, kw, "define!", newObject(t, reg, "RecordFieldId", "EPOCH"), 2000.5)
	assert.Equal(t, uint32(2), call(t, kw, "size"))
	assert.Equal(t, int32(1), call(t, kw, "fieldNumber", "EPOCH"))
	assert.Equal(t, true, call(t, kw, "isDefined", "TELESCOPE"))
	assert.Equal(t, false, call(t, kw, "isDefined", "OBSERVER"))
	assert.Equal(t, "VLA", call(t, kw, "asString", telescope))
	dt := call(t, kw, "type", int32(1)).(bind.EnumValue)
	assert.EqualValues(t, casa.TpDouble, dt.Value())

	sub := newObject(t, reg, "Table", constant(t, reg, "Memory"))
	subID := newObject(t, reg, "RecordFieldId", "SUB")
	_, err = reg.CallFunc("defineTable", kw, subID, sub)
	require.NoError(t, err)
	back, err := reg.CallFunc("asTable", kw, subID)
	require.NoError(t, err)
	assert.Equal(t, call(t, sub, "tableName"), call(t, back.(*bind.Object), "tableName"))
	back.(*bind.Object).Release()
	sub.Release()

	tab.Release()

	reopened := newObject(t, reg, "Table", path)
	defer reopened.Release()
	assert.Equal(t, uint64(3), call(t, reopened, "nrow"))
	assert.Equal(t, false, call(t, reopened, "isWritable"))
	_, err = reopened.Call("addRow", 1, false)
	assert.ErrorIs(t, err, tables.ErrReadOnly)
	call(t, reopened, "reopenRW")
	call(t, reopened, "removeRow", 0)
	assert.Equal(t, uint64(2), call(t, reopened, "nrow"))
}

func TestMeasures(t *testing.T) {
	reg, _ := load(t)

	mv := newObject(t, reg, "MVDirection", 0.5, 0.25)
	assert.InDelta(t, 0.5, call(t, mv, "getLong"), 1e-12)

	j2000 := constant(t, reg, "MDirection!Types.J2000")
	dir := newObject(t, reg, "MDirection", mv, j2000)
	assert.True(t, dir.IsA("Measure"))
	assert.Equal(t, "Direction", call(t, dir, "tellMe"))
	assert.Equal(t, "J2000", call(t, dir, "getRefString"))
	assert.InDelta(t, 0.25, call(t, call(t, dir, "getValue").(*bind.Object), "getLat"), 1e-12)

	ref := newObject(t, reg, "MDirection!Ref", j2000)
	conv := newObject(t, reg, "MDirection!Convert", dir, ref)
	out := call(t, conv, "convert").(*bind.Object)
	assert.Equal(t, bind.TypeRef("MDirection"), out.Type())

	galactic := newObject(t, reg, "MDirection!Ref", constant(t, reg, "MDirection!Types.GALACTIC"))
	call(t, conv, "setOut", galactic)
	_, err := conv.Call("convert")
	assert.ErrorIs(t, err, casa.ErrNotImplemented)

	radio := constant(t, reg, "MDoppler!Types.RADIO")
	z := newObject(t, reg, "MDoppler!Ref", constant(t, reg, "MDoppler!Types.Z"))
	dop := newObject(t, reg, "MDoppler", newObject(t, reg, "MVDoppler", 0.5), radio)
	res := call(t, newObject(t, reg, "MDoppler!Convert", dop, z), "convert").(*bind.Object)
	assert.InDelta(t, 1.0, call(t, res, "getValue", 0), 1e-12)

	_, err = reg.CallFunc("putVector", mv, []float64{0, 0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.5707963267948966, call(t, mv, "getLat"), 1e-12)
	_, err = reg.CallFunc("putVector", mv, []float64{1})
	assert.ErrorIs(t, err, casa.ErrInvalid)

	_, err = reg.CallFunc("set", ref, dir)
	require.NoError(t, err)
	_, err = reg.CallFunc("set", ref, dop)
	assert.ErrorIs(t, err, bind.ErrNoMatch)

	epoch := newObject(t, reg, "MEpoch", newObject(t, reg, "MVEpoch", 51544.5))
	frame := newObject(t, reg, "MeasFrame", epoch, dir)
	assert.Equal(t, 2, call(t, frame, "size"))

	q := newObject(t, reg, "Quantity", 1.0, "km")
	call(t, q, "qconvert", newObject(t, reg, "Unit", "m"))
	assert.Equal(t, 1000.0, call(t, q, "getValue"))
	_, err = reg.New("Unit", "furlong")
	assert.Error(t, err)
}

func TestAppState(t *testing.T) {
	reg, b := load(t)
	_, err := b.Source().MeasuresDirectory()
	assert.ErrorIs(t, err, appstate.ErrUninitialized)

	dir := t.TempDir()
	host := newObject(t, reg, "HostState", dir)
	assert.True(t, host.IsA("AppState"))
	src := newObject(t, reg, "AppStateSource")
	call(t, src, "initialize", host)

	got, err := b.Source().MeasuresDirectory()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.Equal(t, dir, call(t, src, "measuresDirectory"))

	state := call(t, src, "state").(*bind.Object)
	assert.Equal(t, bind.TypeRef("HostState"), state.Type())
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MeasuresDir = t.TempDir()
	cfg.CheckedAlloc = true
	cfg.Tables.ScratchDir = t.TempDir()

	b, opts, err := casabind.FromConfig(cfg)
	require.NoError(t, err)
	dir, err := b.Source().MeasuresDirectory()
	require.NoError(t, err)
	assert.Equal(t, cfg.MeasuresDir, dir)
	assert.IsType(t, &memory.CheckedAllocator{}, b.Allocator())

	reg, err := b.Load(opts...)
	require.NoError(t, err)
	tab := newObject(t, reg, "Table", constant(t, reg, "Plain"))
	name := call(t, tab, "tableName").(string)
	assert.Equal(t, cfg.Tables.ScratchDir, filepath.Dir(name))
	tab.Release()
	assert.NoDirExists(t, name)
}
