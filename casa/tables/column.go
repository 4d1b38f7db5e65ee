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

package tables

import (
	"fmt"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/array"
	"github.com/casacore/casabind/memory"
)

// tableColumn is the part shared by scalar and array columns: a handle on
// the table and the column name.
type tableColumn struct {
	tab  *Table
	name string
}

func newTableColumn(t *Table, name string, isArray bool, dt casa.DataType) (tableColumn, error) {
	c, err := t.open()
	if err != nil {
		return tableColumn{}, err
	}
	c.mu.RLock()
	_, cd, err := c.column(name)
	c.mu.RUnlock()
	if err != nil {
		return tableColumn{}, err
	}
	if cd.IsArray() != isArray || cd.DataType() != dt {
		want := dt
		if isArray {
			want = casa.ArrayOf(dt)
		}
		return tableColumn{}, fmt.Errorf("%w: column %q is %s, not %s", casa.ErrType, name, cd.TrueDataType(), want)
	}
	h, err := t.Copy()
	if err != nil {
		return tableColumn{}, err
	}
	return tableColumn{tab: h, name: name}, nil
}

func (c *tableColumn) Name() string { return c.name }

// Table returns a new handle on the table of the column.
func (c *tableColumn) Table() (*Table, error) { return c.tab.Copy() }

// Release drops the column's handle on its table.
func (c *tableColumn) Release() error { return c.tab.Close() }

func (c *tableColumn) Nrow() (uint64, error) { return c.tab.Nrow() }

// rlock returns the table core locked for reading and the column store.
func (c *tableColumn) rlock() (*tableCore, columnStore, error) {
	core, err := c.tab.open()
	if err != nil {
		return nil, nil, err
	}
	core.mu.RLock()
	st, _, err := core.column(c.name)
	if err != nil {
		core.mu.RUnlock()
		return nil, nil, err
	}
	return core, st, nil
}

// wlock returns the table core locked for writing and the column store.
func (c *tableColumn) wlock() (*tableCore, columnStore, error) {
	core, err := c.tab.open()
	if err != nil {
		return nil, nil, err
	}
	core.mu.Lock()
	if err := core.checkWritable(); err != nil {
		core.mu.Unlock()
		return nil, nil, err
	}
	st, _, err := core.column(c.name)
	if err != nil {
		core.mu.Unlock()
		return nil, nil, err
	}
	return core, st, nil
}

func checkRow(row uint64, nrow int) error {
	if row >= uint64(nrow) {
		return fmt.Errorf("%w: row %d of %d", casa.ErrIndex, row, nrow)
	}
	return nil
}

// rowsOf returns the rows selected by a one-axis slicer over nrow rows.
func rowsOf(sl *array.Slicer, nrow int) ([]int, error) {
	if sl.Ndim() != 1 {
		return nil, fmt.Errorf("%w: row slicer has %d axes", casa.ErrInvalid, sl.Ndim())
	}
	if err := sl.Check(array.IPosition{int64(nrow)}); err != nil {
		return nil, err
	}
	rows := make([]int, 0, sl.Length()[0])
	err := sl.ForEach(func(pos array.IPosition) error {
		rows = append(rows, int(pos[0]))
		return nil
	})
	return rows, err
}

// ScalarColumn gives typed access to a column with one T per row.
type ScalarColumn[T casa.Element] struct {
	tableColumn
}

// NewScalarColumn attaches to column name of t, which must be a scalar
// column of T.
func NewScalarColumn[T casa.Element](t *Table, name string) (*ScalarColumn[T], error) {
	tc, err := newTableColumn(t, name, false, casa.TypeOf[T]())
	if err != nil {
		return nil, err
	}
	return &ScalarColumn[T]{tc}, nil
}

func (c *ScalarColumn[T]) store(st columnStore) *scalarStore[T] { return st.(*scalarStore[T]) }

// Ndim is zero for every row of a scalar column.
func (c *ScalarColumn[T]) Ndim(row uint64) (int, error) {
	core, st, err := c.rlock()
	if err != nil {
		return 0, err
	}
	defer core.mu.RUnlock()
	return 0, checkRow(row, st.nrow())
}

func (c *ScalarColumn[T]) NdimColumn() int { return 0 }

// IsDefined reports whether row exists; scalar cells are always defined.
func (c *ScalarColumn[T]) IsDefined(row uint64) (bool, error) {
	core, st, err := c.rlock()
	if err != nil {
		return false, err
	}
	defer core.mu.RUnlock()
	return row < uint64(st.nrow()), nil
}

// Shape of a scalar cell has no axes.
func (c *ScalarColumn[T]) Shape(row uint64) (array.IPosition, error) {
	_, err := c.Ndim(row)
	return array.IPosition{}, err
}

func (c *ScalarColumn[T]) ShapeColumn() array.IPosition { return array.IPosition{} }

func (c *ScalarColumn[T]) Get(row uint64) (T, error) {
	var zero T
	core, st, err := c.rlock()
	if err != nil {
		return zero, err
	}
	defer core.mu.RUnlock()
	s := c.store(st)
	if err := checkRow(row, len(s.vals)); err != nil {
		return zero, err
	}
	return s.vals[row], nil
}

func (c *ScalarColumn[T]) Put(row uint64, v T) error {
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	s := c.store(st)
	if err := checkRow(row, len(s.vals)); err != nil {
		return err
	}
	s.vals[row] = v
	return nil
}

// FillColumn stores v in every row.
func (c *ScalarColumn[T]) FillColumn(v T) error {
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	s := c.store(st)
	for i := range s.vals {
		s.vals[i] = v
	}
	return nil
}

// GetColumn copies the whole column into a new vector.
func (c *ScalarColumn[T]) GetColumn() (*array.Vector[T], error) {
	core, st, err := c.rlock()
	if err != nil {
		return nil, err
	}
	defer core.mu.RUnlock()
	return array.VectorOf(core.mem, c.store(st).vals), nil
}

// GetColumnRange copies the rows selected by sl into a new vector.
func (c *ScalarColumn[T]) GetColumnRange(sl *array.Slicer) (*array.Vector[T], error) {
	core, st, err := c.rlock()
	if err != nil {
		return nil, err
	}
	defer core.mu.RUnlock()
	s := c.store(st)
	rows, err := rowsOf(sl, len(s.vals))
	if err != nil {
		return nil, err
	}
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = s.vals[r]
	}
	return array.VectorFromBuffer(core.mem, array.IPosition{int64(len(out))}, out, memory.Copy)
}

// GetColumnRangeInto copies the rows selected by sl into vec. vec must
// have the selected length unless resize is set.
func (c *ScalarColumn[T]) GetColumnRangeInto(sl *array.Slicer, vec *array.Vector[T], resize bool) error {
	core, st, err := c.rlock()
	if err != nil {
		return err
	}
	defer core.mu.RUnlock()
	s := c.store(st)
	rows, err := rowsOf(sl, len(s.vals))
	if err != nil {
		return err
	}
	if err := fitInto(vec.Array, array.IPosition{int64(len(rows))}, resize); err != nil {
		return err
	}
	dst := vec.Values()
	for i, r := range rows {
		dst[i] = s.vals[r]
	}
	return nil
}

// PutColumn stores vec, which must hold one value per row.
func (c *ScalarColumn[T]) PutColumn(vec *array.Vector[T]) error {
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	s := c.store(st)
	src := vec.Values()
	if len(src) != len(s.vals) {
		return fmt.Errorf("%w: vector holds %d values, column has %d rows", casa.ErrInvalid, len(src), len(s.vals))
	}
	copy(s.vals, src)
	return nil
}

// PutColumnRange stores vec in the rows selected by sl.
func (c *ScalarColumn[T]) PutColumnRange(sl *array.Slicer, vec *array.Vector[T]) error {
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	s := c.store(st)
	rows, err := rowsOf(sl, len(s.vals))
	if err != nil {
		return err
	}
	src := vec.Values()
	if len(src) != len(rows) {
		return fmt.Errorf("%w: vector holds %d values, slicer selects %d rows", casa.ErrInvalid, len(src), len(rows))
	}
	for i, r := range rows {
		s.vals[r] = src[i]
	}
	return nil
}

// fitInto checks that arr has shape, or resizes it when allowed.
func fitInto[T casa.Element](arr *array.Array[T], shape array.IPosition, resize bool) error {
	if arr.Shape().Equal(shape) {
		return nil
	}
	if !resize {
		return fmt.Errorf("%w: array has shape %s, need %s", casa.ErrInvalid, arr.Shape(), shape)
	}
	return arr.Resize(shape)
}

// ArrayColumn gives typed access to a column with an array of T per row.
type ArrayColumn[T casa.Element] struct {
	tableColumn
	ndim  int
	shape array.IPosition
}

// NewArrayColumn attaches to column name of t, which must be an array
// column of T.
func NewArrayColumn[T casa.Element](t *Table, name string) (*ArrayColumn[T], error) {
	tc, err := newTableColumn(t, name, true, casa.TypeOf[T]())
	if err != nil {
		return nil, err
	}
	t.core.mu.RLock()
	desc, err := t.core.desc.ColumnDesc(name)
	t.core.mu.RUnlock()
	if err != nil {
		tc.Release()
		return nil, err
	}
	return &ArrayColumn[T]{tableColumn: tc, ndim: desc.Ndim(), shape: desc.Shape()}, nil
}

func (c *ArrayColumn[T]) store(st columnStore) *arrayStore[T] { return st.(*arrayStore[T]) }

// NdimColumn is the dimensionality of the column, 0 when not fixed.
func (c *ArrayColumn[T]) NdimColumn() int {
	if len(c.shape) > 0 {
		return len(c.shape)
	}
	return c.ndim
}

// ShapeColumn is the cell shape of a fixed shape column, empty otherwise.
func (c *ArrayColumn[T]) ShapeColumn() array.IPosition { return c.shape.Clone() }

func (c *ArrayColumn[T]) cell(row uint64) (*tableCore, *arrayCell[T], error) {
	core, st, err := c.rlock()
	if err != nil {
		return nil, nil, err
	}
	cell, err := c.store(st).cell(int(min(row, uint64(st.nrow()))))
	if err != nil {
		core.mu.RUnlock()
		return nil, nil, err
	}
	return core, cell, nil
}

func (c *ArrayColumn[T]) IsDefined(row uint64) (bool, error) {
	core, st, err := c.rlock()
	if err != nil {
		return false, err
	}
	defer core.mu.RUnlock()
	if err := checkRow(row, st.nrow()); err != nil {
		return false, err
	}
	return c.store(st).cells[row] != nil, nil
}

func (c *ArrayColumn[T]) Ndim(row uint64) (int, error) {
	core, cell, err := c.cell(row)
	if err != nil {
		return 0, err
	}
	defer core.mu.RUnlock()
	return len(cell.shape), nil
}

func (c *ArrayColumn[T]) Shape(row uint64) (array.IPosition, error) {
	core, cell, err := c.cell(row)
	if err != nil {
		return nil, err
	}
	defer core.mu.RUnlock()
	return cell.shape.Clone(), nil
}

// Get copies the array in row.
func (c *ArrayColumn[T]) Get(row uint64) (*array.Array[T], error) {
	core, cell, err := c.cell(row)
	if err != nil {
		return nil, err
	}
	defer core.mu.RUnlock()
	return array.FromBuffer(core.mem, cell.shape, cell.data, memory.Copy)
}

// GetInto copies the array in row into arr. arr must have the cell shape
// unless resize is set.
func (c *ArrayColumn[T]) GetInto(row uint64, arr *array.Array[T], resize bool) error {
	core, cell, err := c.cell(row)
	if err != nil {
		return err
	}
	defer core.mu.RUnlock()
	if err := fitInto(arr, cell.shape, resize); err != nil {
		return err
	}
	copy(arr.Values(), cell.data)
	return nil
}

// GetSlice copies the section sl of the array in row.
func (c *ArrayColumn[T]) GetSlice(row uint64, sl *array.Slicer) (*array.Array[T], error) {
	core, cell, err := c.cell(row)
	if err != nil {
		return nil, err
	}
	defer core.mu.RUnlock()
	view, err := cellArray(core.mem, cell)
	if err != nil {
		return nil, err
	}
	defer view.Release()
	return view.GetSlice(core.mem, sl)
}

// cellArray wraps the storage of cell without copying.
func cellArray[T casa.Element](mem memory.Allocator, cell *arrayCell[T]) (*array.Array[T], error) {
	return array.FromBuffer(mem, cell.shape, cell.data, memory.Share)
}

func (c *ArrayColumn[T]) checkShape(shape array.IPosition) error {
	if len(c.shape) > 0 && !c.shape.Equal(shape) {
		return fmt.Errorf("%w: column %q has fixed shape %s, got %s", casa.ErrInvalid, c.name, c.shape, shape)
	}
	if c.ndim > 0 && len(shape) != c.ndim {
		return fmt.Errorf("%w: column %q has %d axes, got shape %s", casa.ErrInvalid, c.name, c.ndim, shape)
	}
	return nil
}

// Put stores a copy of arr in row, defining the cell.
func (c *ArrayColumn[T]) Put(row uint64, arr *array.Array[T]) error {
	if err := c.checkShape(arr.Shape()); err != nil {
		return err
	}
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	s := c.store(st)
	if err := checkRow(row, len(s.cells)); err != nil {
		return err
	}
	s.cells[row] = &arrayCell[T]{shape: arr.Shape(), data: arr.ToVector()}
	return nil
}

// PutSlice writes arr into the section sl of the defined cell in row.
func (c *ArrayColumn[T]) PutSlice(row uint64, sl *array.Slicer, arr *array.Array[T]) error {
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	cell, err := c.store(st).cell(int(min(row, uint64(st.nrow()))))
	if err != nil {
		return err
	}
	view, err := cellArray(core.mem, cell)
	if err != nil {
		return err
	}
	defer view.Release()
	return view.PutSlice(sl, arr)
}

// FillColumn stores a copy of arr in every row.
func (c *ArrayColumn[T]) FillColumn(arr *array.Array[T]) error {
	if err := c.checkShape(arr.Shape()); err != nil {
		return err
	}
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	s := c.store(st)
	for i := range s.cells {
		s.cells[i] = &arrayCell[T]{shape: arr.Shape(), data: arr.ToVector()}
	}
	return nil
}

// gather copies the selected rows, or the section arrSl of them, into one
// array with the row as last axis. All cells must share a shape.
func (c *ArrayColumn[T]) gather(mem memory.Allocator, s *arrayStore[T], rows []int, arrSl *array.Slicer) (array.IPosition, []T, error) {
	var cellShape array.IPosition
	for i, r := range rows {
		cell, err := s.cell(r)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			cellShape = cell.shape
		} else if !cell.shape.Equal(cellShape) {
			return nil, nil, fmt.Errorf("%w: row %d has shape %s, row %d has %s", casa.ErrInvalid, r, cell.shape, rows[0], cellShape)
		}
	}
	if arrSl != nil {
		if len(rows) > 0 {
			if err := arrSl.Check(cellShape); err != nil {
				return nil, nil, err
			}
		}
		cellShape = arrSl.Length()
	} else if cellShape == nil {
		cellShape = c.shape
	}
	shape := append(cellShape.Clone(), int64(len(rows)))
	out := make([]T, 0, shape.Product())
	for _, r := range rows {
		cell := s.cells[r]
		if arrSl == nil {
			out = append(out, cell.data...)
			continue
		}
		view, err := cellArray(mem, cell)
		if err != nil {
			return nil, nil, err
		}
		sub, err := view.GetSlice(mem, arrSl)
		view.Release()
		if err != nil {
			return nil, nil, err
		}
		out = append(out, sub.Values()...)
		sub.Release()
	}
	return shape, out, nil
}

// GetColumn copies every row into one array with the row as last axis.
func (c *ArrayColumn[T]) GetColumn() (*array.Array[T], error) {
	core, st, err := c.rlock()
	if err != nil {
		return nil, err
	}
	defer core.mu.RUnlock()
	rows := make([]int, st.nrow())
	for i := range rows {
		rows[i] = i
	}
	shape, data, err := c.gather(core.mem, c.store(st), rows, nil)
	if err != nil {
		return nil, err
	}
	return array.FromBuffer(core.mem, shape, data, memory.Copy)
}

// GetColumnRange copies the rows selected by rowSl, restricted to the cell
// section arrSl when it is not nil.
func (c *ArrayColumn[T]) GetColumnRange(rowSl, arrSl *array.Slicer) (*array.Array[T], error) {
	core, st, err := c.rlock()
	if err != nil {
		return nil, err
	}
	defer core.mu.RUnlock()
	rows, err := rowsOf(rowSl, st.nrow())
	if err != nil {
		return nil, err
	}
	shape, data, err := c.gather(core.mem, c.store(st), rows, arrSl)
	if err != nil {
		return nil, err
	}
	return array.FromBuffer(core.mem, shape, data, memory.Copy)
}

// GetColumnRangeInto is GetColumnRange writing into arr, which must have
// the result shape unless resize is set.
func (c *ArrayColumn[T]) GetColumnRangeInto(rowSl, arrSl *array.Slicer, arr *array.Array[T], resize bool) error {
	core, st, err := c.rlock()
	if err != nil {
		return err
	}
	defer core.mu.RUnlock()
	rows, err := rowsOf(rowSl, st.nrow())
	if err != nil {
		return err
	}
	shape, data, err := c.gather(core.mem, c.store(st), rows, arrSl)
	if err != nil {
		return err
	}
	if err := fitInto(arr, shape, resize); err != nil {
		return err
	}
	copy(arr.Values(), data)
	return nil
}

// scatter writes arr, whose last axis runs over rows, into the rows. With
// arrSl nil every cell is replaced, otherwise the section arrSl of each
// defined cell is written.
func (c *ArrayColumn[T]) scatter(mem memory.Allocator, s *arrayStore[T], rows []int, arrSl *array.Slicer, arr *array.Array[T]) error {
	shape := arr.Shape()
	if len(shape) == 0 || shape[len(shape)-1] != int64(len(rows)) {
		return fmt.Errorf("%w: array shape %s does not end in %d rows", casa.ErrInvalid, shape, len(rows))
	}
	cellShape := shape[:len(shape)-1]
	if len(cellShape) == 0 {
		cellShape = array.IPosition{1}
	}
	if arrSl == nil {
		if err := c.checkShape(cellShape); err != nil {
			return err
		}
	} else if !arrSl.Length().Equal(cellShape) {
		return fmt.Errorf("%w: slicer selects %s, array cells are %s", casa.ErrInvalid, arrSl.Length(), cellShape)
	}
	for i, r := range rows {
		src, err := arr.Slice(i)
		if err != nil {
			return err
		}
		if arrSl == nil {
			s.cells[r] = &arrayCell[T]{shape: cellShape.Clone(), data: src.ToVector()}
			src.Release()
			continue
		}
		cell, err := s.cell(r)
		if err == nil {
			var view *array.Array[T]
			if view, err = cellArray(mem, cell); err == nil {
				err = view.PutSlice(arrSl, src)
				view.Release()
			}
		}
		src.Release()
		if err != nil {
			return err
		}
	}
	return nil
}

// PutColumn stores arr, whose last axis runs over all rows.
func (c *ArrayColumn[T]) PutColumn(arr *array.Array[T]) error {
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	rows := make([]int, st.nrow())
	for i := range rows {
		rows[i] = i
	}
	return c.scatter(core.mem, c.store(st), rows, nil, arr)
}

// PutColumnRange stores arr in the rows selected by rowSl, restricted to
// the cell section arrSl when it is not nil.
func (c *ArrayColumn[T]) PutColumnRange(rowSl, arrSl *array.Slicer, arr *array.Array[T]) error {
	core, st, err := c.wlock()
	if err != nil {
		return err
	}
	defer core.mu.Unlock()
	rows, err := rowsOf(rowSl, st.nrow())
	if err != nil {
		return err
	}
	return c.scatter(core.mem, c.store(st), rows, arrSl, arr)
}
