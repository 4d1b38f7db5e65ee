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
)

// DefaultDataManager is the storage manager type recorded when none is
// given.
const DefaultDataManager = "StandardStMan"

// BaseColumnDesc is the description of one column, scalar or array, of a
// fixed element type. It is implemented by ScalarColumnDesc and
// ArrayColumnDesc.
type BaseColumnDesc interface {
	Name() string
	Comment() string
	DataManagerType() string
	DataManagerGroup() string
	// DataType is the element type of the column.
	DataType() casa.DataType
	// TrueDataType is the type of a cell: TpArray* for array columns.
	TrueDataType() casa.DataType
	Options() ColumnOption
	IsArray() bool
	// Ndim is the dimensionality of the cells, 0 when it is free.
	Ndim() int
	// Shape is the fixed cell shape, empty when cells vary.
	Shape() array.IPosition

	common() *baseDesc
	cloneDesc() BaseColumnDesc
	newStore(nrow int) columnStore
	toJSON() (descJSON, error)
}

type baseDesc struct {
	name    string
	comment string
	dmType  string
	dmGroup string
	opt     ColumnOption
	ndim    int
	shape   array.IPosition
}

func newBase(name, comment, dmType, dmGroup string, opt ColumnOption) baseDesc {
	if dmType == "" {
		dmType = DefaultDataManager
	}
	return baseDesc{name: name, comment: comment, dmType: dmType, dmGroup: dmGroup, opt: opt}
}

func (b *baseDesc) Name() string             { return b.name }
func (b *baseDesc) Comment() string          { return b.comment }
func (b *baseDesc) DataManagerType() string  { return b.dmType }
func (b *baseDesc) DataManagerGroup() string { return b.dmGroup }
func (b *baseDesc) Options() ColumnOption    { return b.opt }
func (b *baseDesc) Ndim() int                { return b.ndim }
func (b *baseDesc) Shape() array.IPosition   { return b.shape.Clone() }
func (b *baseDesc) common() *baseDesc        { return b }

func (b *baseDesc) json(dt casa.DataType, isArray bool) descJSON {
	return descJSON{
		Name:    b.name,
		Comment: b.comment,
		DMType:  b.dmType,
		DMGroup: b.dmGroup,
		Type:    dt,
		Array:   isArray,
		Ndim:    b.ndim,
		Shape:   b.shape,
		Options: b.opt,
	}
}

// ScalarColumnDesc describes a column holding one T per row.
type ScalarColumnDesc[T casa.Element] struct {
	baseDesc
	def T
}

// NewScalarColumnDesc describes a scalar column. An empty dmType selects
// DefaultDataManager.
func NewScalarColumnDesc[T casa.Element](name, comment, dmType, dmGroup string, opt ColumnOption) *ScalarColumnDesc[T] {
	return &ScalarColumnDesc[T]{baseDesc: newBase(name, comment, dmType, dmGroup, opt)}
}

func (d *ScalarColumnDesc[T]) DataType() casa.DataType     { return casa.TypeOf[T]() }
func (d *ScalarColumnDesc[T]) TrueDataType() casa.DataType { return casa.TypeOf[T]() }
func (d *ScalarColumnDesc[T]) IsArray() bool               { return false }

// SetDefault sets the value of cells in newly added rows.
func (d *ScalarColumnDesc[T]) SetDefault(v T) { d.def = v }

func (d *ScalarColumnDesc[T]) Default() T { return d.def }

func (d *ScalarColumnDesc[T]) cloneDesc() BaseColumnDesc {
	c := *d
	return &c
}

func (d *ScalarColumnDesc[T]) newStore(nrow int) columnStore {
	s := &scalarStore[T]{def: d.def}
	s.addRows(nrow, true)
	return s
}

func (d *ScalarColumnDesc[T]) toJSON() (descJSON, error) {
	out := d.json(d.DataType(), false)
	raw, err := encodeValue(d.def)
	if err != nil {
		return out, err
	}
	out.Default = raw
	return out, nil
}

// ArrayColumnDesc describes a column holding an n-dimensional array of T
// per row.
type ArrayColumnDesc[T casa.Element] struct {
	baseDesc
}

// NewArrayColumnDesc describes an array column whose cells may vary in
// shape. ndim 0 leaves the dimensionality free.
func NewArrayColumnDesc[T casa.Element](name, comment, dmType, dmGroup string, ndim int, opt ColumnOption) (*ArrayColumnDesc[T], error) {
	if ndim < 0 {
		return nil, fmt.Errorf("%w: column %q has negative ndim %d", casa.ErrInvalid, name, ndim)
	}
	if opt.Has(ColumnFixedShape) || opt.Has(ColumnDirect) {
		return nil, fmt.Errorf("%w: column %q: %s needs a fixed shape", casa.ErrInvalid, name, opt)
	}
	d := &ArrayColumnDesc[T]{baseDesc: newBase(name, comment, dmType, dmGroup, opt)}
	d.ndim = ndim
	return d, nil
}

// NewFixedArrayColumnDesc describes an array column whose cells all have
// the given shape.
func NewFixedArrayColumnDesc[T casa.Element](name, comment, dmType, dmGroup string, shape array.IPosition, opt ColumnOption) (*ArrayColumnDesc[T], error) {
	if n, err := shape.CheckedProduct(); err != nil || n == 0 {
		return nil, fmt.Errorf("%w: column %q has invalid fixed shape %s", casa.ErrInvalid, name, shape)
	}
	d := &ArrayColumnDesc[T]{baseDesc: newBase(name, comment, dmType, dmGroup, opt|ColumnFixedShape)}
	d.ndim = len(shape)
	d.shape = shape.Clone()
	return d, nil
}

func (d *ArrayColumnDesc[T]) DataType() casa.DataType     { return casa.TypeOf[T]() }
func (d *ArrayColumnDesc[T]) TrueDataType() casa.DataType { return casa.ArrayOf(casa.TypeOf[T]()) }
func (d *ArrayColumnDesc[T]) IsArray() bool               { return true }

func (d *ArrayColumnDesc[T]) cloneDesc() BaseColumnDesc {
	c := *d
	c.shape = d.shape.Clone()
	return &c
}

func (d *ArrayColumnDesc[T]) newStore(nrow int) columnStore {
	s := &arrayStore[T]{shape: d.shape.Clone()}
	s.addRows(nrow, true)
	return s
}

func (d *ArrayColumnDesc[T]) toJSON() (descJSON, error) {
	return d.json(d.DataType(), true), nil
}

// ColumnDesc is a type-erased column description as held by a TableDesc.
// The zero ColumnDesc describes nothing.
type ColumnDesc struct {
	base BaseColumnDesc
}

// NewColumnDesc copies base into a ColumnDesc.
func NewColumnDesc(base BaseColumnDesc) *ColumnDesc {
	if base == nil {
		return &ColumnDesc{}
	}
	return &ColumnDesc{base: base.cloneDesc()}
}

// Base returns the underlying description, nil for an empty ColumnDesc.
func (c *ColumnDesc) Base() BaseColumnDesc { return c.base }

func (c *ColumnDesc) Name() string {
	if c.base == nil {
		return ""
	}
	return c.base.Name()
}

func (c *ColumnDesc) Comment() string {
	if c.base == nil {
		return ""
	}
	return c.base.Comment()
}

func (c *ColumnDesc) DataType() casa.DataType {
	if c.base == nil {
		return casa.TpOther
	}
	return c.base.DataType()
}

func (c *ColumnDesc) TrueDataType() casa.DataType {
	if c.base == nil {
		return casa.TpOther
	}
	return c.base.TrueDataType()
}

func (c *ColumnDesc) Shape() array.IPosition {
	if c.base == nil {
		return array.IPosition{}
	}
	if s := c.base.Shape(); s != nil {
		return s
	}
	return array.IPosition{}
}

func (c *ColumnDesc) Ndim() int {
	if c.base == nil {
		return 0
	}
	return c.base.Ndim()
}

func (c *ColumnDesc) Options() ColumnOption {
	if c.base == nil {
		return 0
	}
	return c.base.Options()
}

func (c *ColumnDesc) IsArray() bool  { return c.base != nil && c.base.IsArray() }
func (c *ColumnDesc) IsScalar() bool { return c.base != nil && !c.base.IsArray() }

func (c *ColumnDesc) IsFixedShape() bool {
	return c.base != nil && c.base.Options().Has(ColumnFixedShape)
}

func (c *ColumnDesc) String() string {
	if c.base == nil {
		return "ColumnDesc()"
	}
	kind := "scalar"
	if c.IsArray() {
		kind = "array"
	}
	return fmt.Sprintf("ColumnDesc(%s %s %s)", c.Name(), kind, c.DataType())
}

func (c *ColumnDesc) clone() *ColumnDesc { return NewColumnDesc(c.base) }

// ColumnDescSet is the ordered set of column descriptions of a table.
type ColumnDescSet struct {
	cols []*ColumnDesc
}

func (s *ColumnDescSet) Ncolumn() uint32 { return uint32(len(s.cols)) }

// At returns the i-th column description.
func (s *ColumnDescSet) At(i uint32) (*ColumnDesc, error) {
	if int(i) >= len(s.cols) {
		return nil, fmt.Errorf("%w: column %d of %d", casa.ErrIndex, i, len(s.cols))
	}
	return s.cols[i], nil
}
