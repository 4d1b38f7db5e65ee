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
	"github.com/casacore/casabind/bind"
	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/array"
	"github.com/casacore/casabind/casa/tables"
)

func (b *Bindings) defineTables(m *bind.Module) {
	bind.AddEnum[tables.ColumnOption](m, "ColumnOption", bind.BitFlags()).
		Const("ColumnDirect", tables.ColumnDirect).
		Const("ColumnUndefined", tables.ColumnUndefined).
		Const("ColumnFixedShape", tables.ColumnFixedShape)

	bind.AddType[tables.BaseColumnDesc](m, "BaseColumnDesc").
		Method("name", bind.Fn1(tables.BaseColumnDesc.Name)).
		Method("comment", bind.Fn1(tables.BaseColumnDesc.Comment)).
		Method("dataManagerType", bind.Fn1(tables.BaseColumnDesc.DataManagerType)).
		Method("dataManagerGroup", bind.Fn1(tables.BaseColumnDesc.DataManagerGroup)).
		Method("dataType", bind.Fn1(tables.BaseColumnDesc.DataType)).
		Method("trueDataType", bind.Fn1(tables.BaseColumnDesc.TrueDataType)).
		Method("options", bind.Fn1(tables.BaseColumnDesc.Options)).
		Method("isArray", bind.Fn1(tables.BaseColumnDesc.IsArray)).
		Method("ndim", bind.Fn1(tables.BaseColumnDesc.Ndim)).
		Method("shape", bind.Fn1(tables.BaseColumnDesc.Shape))

	bind.AddParametric(m, "ScalarColumnDesc", bind.Super("BaseColumnDesc")).Apply(scalarColumnDescs()...).Link()
	bind.AddParametric(m, "ArrayColumnDesc", bind.Super("BaseColumnDesc")).Apply(arrayColumnDescs()...).Link()

	bind.AddType[*tables.ColumnDesc](m, "ColumnDesc").
		Constructor(bind.Ctor0(func() (*tables.ColumnDesc, error) { return tables.NewColumnDesc(nil), nil })).
		Constructor(bind.Ctor1(func(base tables.BaseColumnDesc) (*tables.ColumnDesc, error) {
			return tables.NewColumnDesc(base), nil
		})).
		Method("name", bind.Fn1((*tables.ColumnDesc).Name)).
		Method("comment", bind.Fn1((*tables.ColumnDesc).Comment)).
		Method("dataType", bind.Fn1((*tables.ColumnDesc).DataType)).
		Method("trueDataType", bind.Fn1((*tables.ColumnDesc).TrueDataType)).
		Method("shape", bind.Fn1((*tables.ColumnDesc).Shape)).
		Method("ndim", bind.Fn1((*tables.ColumnDesc).Ndim)).
		Method("options", bind.Fn1((*tables.ColumnDesc).Options)).
		Method("isArray", bind.Fn1((*tables.ColumnDesc).IsArray)).
		Method("isScalar", bind.Fn1((*tables.ColumnDesc).IsScalar)).
		Method("isFixedShape", bind.Fn1((*tables.ColumnDesc).IsFixedShape)).
		Method("string", bind.Fn1((*tables.ColumnDesc).String))

	bind.AddType[*tables.ColumnDescSet](m, "ColumnDescSet").
		Method("getindex", bind.FnE2((*tables.ColumnDescSet).At)).
		Method("ncolumn", bind.Fn1((*tables.ColumnDescSet).Ncolumn))

	bind.AddType[*tables.RecordFieldId](m, "RecordFieldId").
		Constructor(bind.Ctor1(func(name string) (*tables.RecordFieldId, error) {
			return tables.FieldByName(name), nil
		})).
		Constructor(bind.Ctor1(func(n int32) (*tables.RecordFieldId, error) {
			return tables.FieldByNumber(n), nil
		})).
		Method("fieldNumber", bind.Fn1((*tables.RecordFieldId).FieldNumber)).
		Method("fieldName", bind.Fn1((*tables.RecordFieldId).FieldName)).
		Method("byName", bind.Fn1((*tables.RecordFieldId).ByName))

	bind.AddType[*tables.RowNumbers](m, "RowNumbers").
		Constructor(bind.Ctor1(func(v *array.Vector[casa.RowNr]) (*tables.RowNumbers, error) {
			return tables.NewRowNumbers(v.Values()), nil
		})).
		Constructor(bind.Ctor1(func(rows []uint64) (*tables.RowNumbers, error) {
			return tables.NewRowNumbers(rows), nil
		})).
		Method("length", bind.Fn1((*tables.RowNumbers).Len)).
		Method("rows", bind.Fn1((*tables.RowNumbers).Rows))

	rec := bind.AddType[*tables.TableRecord](m, "TableRecord").
		Constructor(bind.Ctor0(func() (*tables.TableRecord, error) { return tables.NewTableRecord(), nil })).
		Method("name", bind.FnE2((*tables.TableRecord).Name)).
		Method("type", bind.FnE2((*tables.TableRecord).Type)).
		Method("size", bind.Fn1((*tables.TableRecord).Size)).
		Method("fieldNumber", bind.Fn2((*tables.TableRecord).FieldNumber)).
		Method("isDefined", bind.Fn2((*tables.TableRecord).IsDefined)).
		Method("fieldNames", bind.Fn1((*tables.TableRecord).FieldNames)).
		Method("comment", bind.FnE2((*tables.TableRecord).Comment)).
		Method("setComment!", bind.ProcE3((*tables.TableRecord).SetComment), bind.Mutates()).
		Method("removeField!", bind.ProcE2((*tables.TableRecord).RemoveField), bind.Mutates()).
		Method("defineRecord!", bind.ProcE3((*tables.TableRecord).DefineRecord), bind.Mutates()).
		Method("subRecord", bind.FnE2((*tables.TableRecord).SubRecord))
	for _, field := range recordFields() {
		field(rec)
	}

	bind.AddType[*tables.TSMOption](m, "TSMOption").
		Constructor(bind.Ctor0(func() (*tables.TSMOption, error) { return tables.NewTSMOption(), nil }))

	bind.AddEnum[tables.TableOption](m, "TableOption", bind.Scoped()).
		Const("Old", tables.Old).
		Const("New", tables.New).
		Const("NewNoReplace", tables.NewNoReplace).
		Const("Scratch", tables.Scratch).
		Const("Update", tables.Update).
		Const("Delete", tables.Delete)

	bind.AddEnum[tables.LockOption](m, "LockOption", bind.Scoped()).
		Const("PermanentLocking", tables.PermanentLocking).
		Const("PermanentLockingWait", tables.PermanentLockingWait).
		Const("AutoLocking", tables.AutoLocking).
		Const("UserLocking", tables.UserLocking).
		Const("AutoNoReadLocking", tables.AutoNoReadLocking).
		Const("UserNoReadLocking", tables.UserNoReadLocking).
		Const("NoLocking", tables.NoLocking).
		Const("DefaultLocking", tables.DefaultLocking)

	bind.AddType[*tables.TableLock](m, "TableLock").
		Constructor(bind.Ctor1(func(l *tables.TableLock) (*tables.TableLock, error) { return l.Clone(), nil })).
		Constructor(bind.Ctor1(func(opt tables.LockOption) (*tables.TableLock, error) {
			return tables.NewTableLock(opt), nil
		})).
		Method("option", bind.Fn1(func(l *tables.TableLock) tables.LockOption { return l.Option }))

	bind.AddEnum[tables.TableType](m, "TableType").
		Const("Plain", tables.Plain).
		Const("Memory", tables.Memory)

	bind.AddType[*tables.TableDesc](m, "TableDesc").
		Constructor(bind.Ctor0(func() (*tables.TableDesc, error) { return tables.NewTableDesc(), nil })).
		Method("columnNames", bind.Fn1((*tables.TableDesc).ColumnNames)).
		Method("ncolumn", bind.Fn1((*tables.TableDesc).Ncolumn)).
		Method("columnDesc", bind.FnE2((*tables.TableDesc).ColumnDesc)).
		Method("columnDescSet", bind.Fn1((*tables.TableDesc).ColumnDescSet)).
		Method("hasColumn", bind.Fn2((*tables.TableDesc).HasColumn)).
		Method("addColumn!", bind.ProcE2((*tables.TableDesc).AddColumn), bind.Mutates())

	b.defineTable(m)

	// record accessors that mention Table are added once Table is linked
	m.Func("asTable", bind.FnE2((*tables.TableRecord).AsTable))
	m.Func("defineTable", bind.ProcE3((*tables.TableRecord).DefineTable), bind.Mutates())
	m.Func("deleteSubTable", bind.ProcE3(tables.DeleteSubTable), bind.Mutates())

	bind.AddParametric(m, "ScalarColumn").Apply(scalarColumns()...).Link()
	bind.AddParametric(m, "ArrayColumn").Apply(arrayColumns()...).Link()
}

func (b *Bindings) defineTable(m *bind.Module) {
	bind.AddType[*tables.Table](m, "Table").
		Constructor(bind.Ctor0(func() (*tables.Table, error) {
			return tables.NewTable(b.mem, tables.Memory)
		})).
		Constructor(bind.Ctor1((*tables.Table).Copy)).
		Constructor(bind.Ctor1(b.newTable)).
		Constructor(bind.Ctor1(func(name string) (*tables.Table, error) {
			return tables.Open(b.mem, name, tables.Old, b.withLock())
		})).
		Constructor(bind.Ctor2(func(name string, opt tables.TableOption) (*tables.Table, error) {
			return tables.Open(b.mem, name, opt, b.withLock())
		})).
		Constructor(bind.Ctor3(func(name string, opt tables.TableOption, tsm *tables.TSMOption) (*tables.Table, error) {
			return tables.Open(b.mem, name, opt, b.withLock(), tables.WithTSM(tsm))
		})).
		Constructor(bind.Ctor4(func(name string, lock *tables.TableLock, opt tables.TableOption, tsm *tables.TSMOption) (*tables.Table, error) {
			return tables.Open(b.mem, name, opt, tables.WithLock(lock), tables.WithTSM(tsm))
		})).
		Method("reopenRW", bind.ProcE1((*tables.Table).ReopenRW), bind.Mutates()).
		Method("rename", bind.ProcE3((*tables.Table).Rename), bind.Mutates()).
		Method("nrow", bind.FnE1((*tables.Table).Nrow)).
		Method("tableName", bind.Fn1((*tables.Table).TableName)).
		Method("tableType", bind.Fn1((*tables.Table).Type)).
		Method("isWritable", bind.Fn1((*tables.Table).IsWritable)).
		Method("tableDesc", bind.FnE1((*tables.Table).TableDesc)).
		Method("lockOptions", bind.Fn1(func(t *tables.Table) *tables.TableLock {
			l := t.Lock()
			return &l
		})).
		Method("flush", bind.ProcE3((*tables.Table).Flush)).
		Method("unlock", bind.ProcE1((*tables.Table).Unlock)).
		Method("addColumn", bind.ProcE3((*tables.Table).AddColumn), bind.Mutates()).
		Method("removeColumn", bind.ProcE2((*tables.Table).RemoveColumn), bind.Mutates()).
		Method("addRow", bind.ProcE3((*tables.Table).AddRow), bind.Mutates()).
		Method("removeRow", bind.ProcE2((*tables.Table).RemoveRow), bind.Mutates()).
		Method("removeRow", bind.ProcE2((*tables.Table).RemoveRows), bind.Mutates()).
		Method("keywordSet", bind.FnE1((*tables.Table).KeywordSet)).
		Method("rwKeywordSet", bind.FnE1((*tables.Table).RwKeywordSet)).
		Method("deepCopy", bind.ProcE3((*tables.Table).DeepCopy)).
		Method("close", bind.ProcE1((*tables.Table).Close)).
		Method("isClosed", bind.Fn1((*tables.Table).IsClosed)).
		Finalizer(func(t *tables.Table) { logRelease("Table", t.Close()) })
}

func scalarColumnDescOf[T casa.Element](p *bind.Parametric) {
	bind.Instantiate[*tables.ScalarColumnDesc[T]](p, elementRef[T]()).
		Constructor(bind.Ctor2(func(name string, opt tables.ColumnOption) (*tables.ScalarColumnDesc[T], error) {
			return tables.NewScalarColumnDesc[T](name, "", "", "", opt), nil
		})).
		Constructor(bind.Ctor3(func(name, comment string, opt tables.ColumnOption) (*tables.ScalarColumnDesc[T], error) {
			return tables.NewScalarColumnDesc[T](name, comment, "", "", opt), nil
		})).
		Constructor(bind.Ctor4(func(name, comment, dmType, dmGroup string) (*tables.ScalarColumnDesc[T], error) {
			return tables.NewScalarColumnDesc[T](name, comment, dmType, dmGroup, 0), nil
		})).
		Method("setDefault", bind.Proc2((*tables.ScalarColumnDesc[T]).SetDefault), bind.Mutates()).
		Method("default", bind.Fn1((*tables.ScalarColumnDesc[T]).Default))
}

func arrayColumnDescOf[T casa.Element](p *bind.Parametric) {
	bind.Instantiate[*tables.ArrayColumnDesc[T]](p, elementRef[T]()).
		Constructor(bind.Ctor3(func(name string, ndim int, opt tables.ColumnOption) (*tables.ArrayColumnDesc[T], error) {
			return tables.NewArrayColumnDesc[T](name, "", "", "", ndim, opt)
		})).
		Constructor(bind.Ctor4(func(name, comment string, ndim int, opt tables.ColumnOption) (*tables.ArrayColumnDesc[T], error) {
			return tables.NewArrayColumnDesc[T](name, comment, "", "", ndim, opt)
		})).
		Constructor(bind.Ctor3(func(name string, shape array.IPosition, opt tables.ColumnOption) (*tables.ArrayColumnDesc[T], error) {
			return tables.NewFixedArrayColumnDesc[T](name, "", "", "", shape, opt)
		})).
		Constructor(bind.Ctor4(func(name, comment string, shape array.IPosition, opt tables.ColumnOption) (*tables.ArrayColumnDesc[T], error) {
			return tables.NewFixedArrayColumnDesc[T](name, comment, "", "", shape, opt)
		})).
		Constructor(bind.Ctor5(func(name, comment, dmType, dmGroup string, opt tables.ColumnOption) (*tables.ArrayColumnDesc[T], error) {
			return tables.NewArrayColumnDesc[T](name, comment, dmType, dmGroup, 0, opt)
		})).
		Constructor(bind.Ctor5(func(name, comment, dmType, dmGroup string, shape array.IPosition) (*tables.ArrayColumnDesc[T], error) {
			return tables.NewFixedArrayColumnDesc[T](name, comment, dmType, dmGroup, shape, 0)
		}))
}

// recordFieldOf adds the typed define and as accessors of T to
// TableRecord.
func recordFieldOf[T casa.Element](w *bind.TypeWrapper[*tables.TableRecord]) {
	w.Method("define!", bind.ProcE3(tables.Define[T]), bind.Mutates()).
		Method("as"+casa.ElementName[T](), bind.FnE2(tables.As[T]))
}

func scalarColumnOf[T casa.Element](p *bind.Parametric) {
	bind.Instantiate[*tables.ScalarColumn[T]](p, elementRef[T]()).
		Constructor(bind.Ctor2(tables.NewScalarColumn[T])).
		Method("columnName", bind.Fn1((*tables.ScalarColumn[T]).Name)).
		Method("table", bind.FnE1((*tables.ScalarColumn[T]).Table)).
		Method("nrow", bind.FnE1((*tables.ScalarColumn[T]).Nrow)).
		Method("ndim", bind.FnE2((*tables.ScalarColumn[T]).Ndim)).
		Method("ndimColumn", bind.Fn1((*tables.ScalarColumn[T]).NdimColumn)).
		Method("isDefined", bind.FnE2((*tables.ScalarColumn[T]).IsDefined)).
		Method("shape", bind.FnE2((*tables.ScalarColumn[T]).Shape)).
		Method("shapeColumn", bind.Fn1((*tables.ScalarColumn[T]).ShapeColumn)).
		Method("fillColumn", bind.ProcE2((*tables.ScalarColumn[T]).FillColumn), bind.Mutates()).
		Method("getindex", bind.FnE2((*tables.ScalarColumn[T]).Get)).
		Method("get", bind.FnE2((*tables.ScalarColumn[T]).Get)).
		Method("put", bind.ProcE3((*tables.ScalarColumn[T]).Put), bind.Mutates()).
		Method("getColumn", bind.FnE1((*tables.ScalarColumn[T]).GetColumn), bind.Allocates()).
		Method("getColumnRange", bind.FnE2((*tables.ScalarColumn[T]).GetColumnRange), bind.Allocates()).
		Method("getColumnRange", bind.ProcE4((*tables.ScalarColumn[T]).GetColumnRangeInto)).
		Method("putColumn", bind.ProcE2((*tables.ScalarColumn[T]).PutColumn), bind.Mutates()).
		Method("putColumnRange", bind.ProcE3((*tables.ScalarColumn[T]).PutColumnRange), bind.Mutates()).
		Finalizer(func(c *tables.ScalarColumn[T]) { logRelease("ScalarColumn", c.Release()) })
}

func arrayColumnOf[T casa.Element](p *bind.Parametric) {
	bind.Instantiate[*tables.ArrayColumn[T]](p, elementRef[T]()).
		Constructor(bind.Ctor2(tables.NewArrayColumn[T])).
		Method("columnName", bind.Fn1((*tables.ArrayColumn[T]).Name)).
		Method("table", bind.FnE1((*tables.ArrayColumn[T]).Table)).
		Method("nrow", bind.FnE1((*tables.ArrayColumn[T]).Nrow)).
		Method("ndim", bind.FnE2((*tables.ArrayColumn[T]).Ndim)).
		Method("ndimColumn", bind.Fn1((*tables.ArrayColumn[T]).NdimColumn)).
		Method("isDefined", bind.FnE2((*tables.ArrayColumn[T]).IsDefined)).
		Method("shape", bind.FnE2((*tables.ArrayColumn[T]).Shape)).
		Method("shapeColumn", bind.Fn1((*tables.ArrayColumn[T]).ShapeColumn)).
		Method("fillColumn", bind.ProcE2((*tables.ArrayColumn[T]).FillColumn), bind.Mutates()).
		Method("getindex", bind.FnE2((*tables.ArrayColumn[T]).Get), bind.Allocates()).
		Method("get", bind.FnE2((*tables.ArrayColumn[T]).Get), bind.Allocates()).
		Method("get", bind.ProcE4((*tables.ArrayColumn[T]).GetInto)).
		Method("getSlice", bind.FnE3((*tables.ArrayColumn[T]).GetSlice), bind.Allocates()).
		Method("put", bind.ProcE3((*tables.ArrayColumn[T]).Put), bind.Mutates()).
		Method("putSlice", bind.ProcE4((*tables.ArrayColumn[T]).PutSlice), bind.Mutates()).
		Method("getColumn", bind.FnE1((*tables.ArrayColumn[T]).GetColumn), bind.Allocates()).
		Method("getColumnRange", bind.FnE3((*tables.ArrayColumn[T]).GetColumnRange), bind.Allocates()).
		Method("getColumnRange", bind.ProcE5((*tables.ArrayColumn[T]).GetColumnRangeInto)).
		Method("putColumn", bind.ProcE2((*tables.ArrayColumn[T]).PutColumn), bind.Mutates()).
		Method("putColumnRange", bind.ProcE4((*tables.ArrayColumn[T]).PutColumnRange), bind.Mutates()).
		Finalizer(func(c *tables.ArrayColumn[T]) { logRelease("ArrayColumn", c.Release()) })
}
