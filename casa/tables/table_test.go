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

package tables_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/array"
	"github.com/casacore/casabind/casa/tables"
	"github.com/casacore/casabind/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addScalar[T casa.Element](t *testing.T, tab *tables.Table, name string, def T) {
	t.Helper()
	d := tables.NewScalarColumnDesc[T](name, "", "", "", 0)
	d.SetDefault(def)
	require.NoError(t, tab.AddColumn(tables.NewColumnDesc(d), false))
}

func addFixed[T casa.Element](t *testing.T, tab *tables.Table, name string, shape array.IPosition) {
	t.Helper()
	d, err := tables.NewFixedArrayColumnDesc[T](name, "", "", "", shape, 0)
	require.NoError(t, err)
	require.NoError(t, tab.AddColumn(tables.NewColumnDesc(d), false))
}

func rowSlicer(t *testing.T, start, n, stride int64) *array.Slicer {
	t.Helper()
	sl, err := array.NewSlicer(array.IPosition{start}, array.IPosition{n}, array.IPosition{stride}, array.EndIsLength)
	require.NoError(t, err)
	return sl
}

func TestTableOpenOptions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "t.tab")

	_, err := tables.Open(nil, dir, tables.Old)
	assert.ErrorIs(t, err, tables.ErrNoTable)
	_, err = tables.Open(nil, dir, tables.Update)
	assert.ErrorIs(t, err, tables.ErrNoTable)
	_, err = tables.Open(nil, "", tables.New)
	assert.ErrorIs(t, err, casa.ErrInvalid)

	tab, err := tables.Open(nil, dir, tables.NewNoReplace)
	require.NoError(t, err)
	assert.Equal(t, dir, tab.TableName())
	assert.Equal(t, tables.Plain, tab.Type())
	require.NoError(t, tab.Close())
	require.NoError(t, tab.Close())

	_, err = tables.Open(nil, dir, tables.NewNoReplace)
	assert.ErrorIs(t, err, tables.ErrExists)

	ro, err := tables.Open(nil, dir, tables.Old)
	require.NoError(t, err)
	assert.False(t, ro.IsWritable())
	assert.ErrorIs(t, ro.AddRow(1, true), tables.ErrReadOnly)
	require.NoError(t, ro.ReopenRW())
	assert.NoError(t, ro.AddRow(1, true))
	require.NoError(t, ro.Close())

	_, err = ro.Nrow()
	assert.ErrorIs(t, err, tables.ErrClosed)

	del, err := tables.Open(nil, dir, tables.Delete)
	require.NoError(t, err)
	n, err := del.Nrow()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, del.Close())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestTablePersistence(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	dir := filepath.Join(t.TempDir(), "vis.tab")

	tab, err := tables.Open(mem, dir, tables.New, tables.WithLock(tables.NewTableLock(tables.UserLocking)))
	require.NoError(t, err)
	assert.Equal(t, tables.UserLocking, tab.Lock().Option)
	addScalar[float64](t, tab, "flux", 0)
	addScalar[string](t, tab, "name", "")
	addScalar[uint8](t, tab, "flag", 0)
	addScalar[complex64](t, tab, "vis", 0)
	addFixed[int32](t, tab, "uvw", array.IPosition{3})
	require.NoError(t, tab.AddRow(3, false))

	flux, err := tables.NewScalarColumn[float64](tab, "flux")
	require.NoError(t, err)
	require.NoError(t, flux.Put(0, math.NaN()))
	require.NoError(t, flux.Put(1, math.Inf(-1)))
	require.NoError(t, flux.Put(2, 2.5))
	require.NoError(t, flux.Release())

	name, err := tables.NewScalarColumn[string](tab, "name")
	require.NoError(t, err)
	require.NoError(t, name.FillColumn("src"))
	require.NoError(t, name.Release())

	flag, err := tables.NewScalarColumn[uint8](tab, "flag")
	require.NoError(t, err)
	require.NoError(t, flag.Put(1, 255))
	require.NoError(t, flag.Release())

	vis, err := tables.NewScalarColumn[complex64](tab, "vis")
	require.NoError(t, err)
	require.NoError(t, vis.Put(2, complex(1, -2)))
	require.NoError(t, vis.Release())

	uvw, err := tables.NewArrayColumn[int32](tab, "uvw")
	require.NoError(t, err)
	a, err := array.FromBuffer(mem, array.IPosition{3}, []int32{7, 8, 9}, memory.Copy)
	require.NoError(t, err)
	require.NoError(t, uvw.Put(1, a))
	a.Release()
	require.NoError(t, uvw.Release())

	kws, err := tab.RwKeywordSet()
	require.NoError(t, err)
	require.NoError(t, tables.Define(kws, tables.FieldByName("telescope"), "VLA"))
	require.NoError(t, tab.Close())

	tab, err = tables.Open(mem, dir, tables.Old)
	require.NoError(t, err)
	defer tab.Close()

	n, err := tab.Nrow()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	desc, err := tab.TableDesc()
	require.NoError(t, err)
	assert.Equal(t, []string{"flux", "name", "flag", "vis", "uvw"}, desc.ColumnNames())

	flux, err = tables.NewScalarColumn[float64](tab, "flux")
	require.NoError(t, err)
	defer flux.Release()
	v, err := flux.Get(0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))
	v, err = flux.Get(1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	name, err = tables.NewScalarColumn[string](tab, "name")
	require.NoError(t, err)
	defer name.Release()
	s, err := name.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "src", s)

	flag, err = tables.NewScalarColumn[uint8](tab, "flag")
	require.NoError(t, err)
	defer flag.Release()
	b, err := flag.Get(1)
	require.NoError(t, err)
	assert.EqualValues(t, 255, b)

	vis, err = tables.NewScalarColumn[complex64](tab, "vis")
	require.NoError(t, err)
	defer vis.Release()
	c, err := vis.Get(2)
	require.NoError(t, err)
	assert.Equal(t, complex64(complex(1, -2)), c)

	uvw, err = tables.NewArrayColumn[int32](tab, "uvw")
	require.NoError(t, err)
	defer uvw.Release()
	got, err := uvw.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 8, 9}, got.ToVector())
	got.Release()

	ro, err := tab.KeywordSet()
	require.NoError(t, err)
	tel, err := tables.As[string](ro, tables.FieldByName("telescope"))
	require.NoError(t, err)
	assert.Equal(t, "VLA", tel)
	assert.ErrorIs(t, tables.Define(ro, tables.FieldByName("x"), int32(1)), tables.ErrReadOnly)
}

func TestTableScratch(t *testing.T) {
	tab, err := tables.NewTable(nil, tables.Plain)
	require.NoError(t, err)
	dir := tab.TableName()
	_, err = os.Stat(dir)
	require.NoError(t, err)

	other, err := tab.Copy()
	require.NoError(t, err)
	require.NoError(t, tab.Close())
	_, err = os.Stat(dir)
	require.NoError(t, err, "table removed while a handle is open")

	require.NoError(t, other.Close())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	_, err = tab.Copy()
	assert.ErrorIs(t, err, tables.ErrClosed)
}

func TestTableRows(t *testing.T) {
	tab := tables.NewMemory(nil, "rows")
	defer tab.Close()
	addScalar[int32](t, tab, "id", -1)
	require.NoError(t, tab.AddRow(5, true))

	id, err := tables.NewScalarColumn[int32](tab, "id")
	require.NoError(t, err)
	defer id.Release()
	first, err := id.Get(0)
	require.NoError(t, err)
	assert.EqualValues(t, -1, first)

	require.NoError(t, id.PutColumn(array.VectorOf(nil, []int32{0, 1, 2, 3, 4})))
	require.NoError(t, tab.RemoveRows(tables.NewRowNumbers([]uint64{3, 1, 3})))
	require.NoError(t, tab.RemoveRow(0))

	col, err := id.GetColumn()
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 4}, col.ToVector())
	col.Release()

	assert.ErrorIs(t, tab.RemoveRow(2), casa.ErrIndex)
	require.NoError(t, tab.AddRow(1, false))
	last, err := id.Get(2)
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestTableColumnsAddRemove(t *testing.T) {
	tab := tables.NewMemory(nil, "cols")
	defer tab.Close()
	addScalar[bool](t, tab, "ok", true)

	d := tables.NewScalarColumnDesc[bool]("ok", "", "", "", 0)
	assert.ErrorIs(t, tab.AddColumn(tables.NewColumnDesc(d), false), tables.ErrExists)

	require.NoError(t, tab.AddRow(2, true))
	addScalar[int16](t, tab, "late", 9)
	late, err := tables.NewScalarColumn[int16](tab, "late")
	require.NoError(t, err)
	defer late.Release()
	v, err := late.Get(1)
	require.NoError(t, err)
	assert.EqualValues(t, 9, v)

	require.NoError(t, tab.RemoveColumn("late"))
	_, err = late.Get(0)
	assert.ErrorIs(t, err, tables.ErrNoColumn)
	assert.ErrorIs(t, tab.RemoveColumn("late"), tables.ErrNoColumn)

	desc, err := tab.TableDesc()
	require.NoError(t, err)
	assert.EqualValues(t, 1, desc.Ncolumn())
}

func TestTableRenameAndDeepCopy(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.tab")
	tab, err := tables.Open(nil, src, tables.New)
	require.NoError(t, err)
	addScalar[int64](t, tab, "n", 0)
	require.NoError(t, tab.AddRow(2, false))

	copyDir := filepath.Join(root, "copy.tab")
	require.NoError(t, tab.DeepCopy(copyDir, tables.New))
	assert.ErrorIs(t, tab.DeepCopy(copyDir, tables.NewNoReplace), tables.ErrExists)
	assert.ErrorIs(t, tab.DeepCopy(copyDir, tables.Old), casa.ErrInvalid)

	dst := filepath.Join(root, "b.tab")
	require.NoError(t, tab.Rename(dst, tables.New))
	assert.Equal(t, dst, tab.TableName())
	require.NoError(t, tab.Close())
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	for _, dir := range []string{dst, copyDir} {
		got, err := tables.Open(nil, dir, tables.Old)
		require.NoError(t, err)
		n, err := got.Nrow()
		require.NoError(t, err)
		assert.EqualValues(t, 2, n, dir)
		require.NoError(t, got.Close())
	}
}

func TestTableFlush(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "f.tab")
	tab, err := tables.Open(nil, dir, tables.New, tables.WithTSM(&tables.TSMOption{Mode: tables.TSMMmap}))
	require.NoError(t, err)
	defer tab.Close()
	assert.Equal(t, tables.TSMMmap, tab.TSMOption().Mode)
	addScalar[float32](t, tab, "x", 0)
	require.NoError(t, tab.AddRow(4, false))
	require.NoError(t, tab.Flush(true, true))

	ro, err := tables.Open(nil, dir, tables.Old)
	require.NoError(t, err)
	n, err := ro.Nrow()
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	require.NoError(t, ro.Close())

	require.NoError(t, tab.AddRow(1, false))
	require.NoError(t, tab.Unlock())
	ro, err = tables.Open(nil, dir, tables.Old)
	require.NoError(t, err)
	n, err = ro.Nrow()
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
	require.NoError(t, ro.Close())
}
