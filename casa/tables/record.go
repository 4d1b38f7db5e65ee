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
	"github.com/casacore/casabind/memory"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// RecordFieldId addresses a record field by number or by name.
type RecordFieldId struct {
	number int32
	name   string
	byName bool
}

func FieldByNumber(n int32) *RecordFieldId { return &RecordFieldId{number: n} }
func FieldByName(name string) *RecordFieldId {
	return &RecordFieldId{number: -1, name: name, byName: true}
}

func (id *RecordFieldId) ByName() bool { return id.byName }

// FieldName is the name of a by-name id, empty otherwise.
func (id *RecordFieldId) FieldName() string { return id.name }

// FieldNumber is the number of a by-number id, -1 otherwise.
func (id *RecordFieldId) FieldNumber() int32 { return id.number }

func (id *RecordFieldId) String() string {
	if id.byName {
		return fmt.Sprintf("%q", id.name)
	}
	return fmt.Sprintf("#%d", id.number)
}

type field struct {
	name    string
	comment string
	dt      casa.DataType
	// value is a casa.Element for scalars, *record for TpRecord and
	// *tableKeyword for TpTable.
	value any
}

type tableKeyword struct {
	name string
	tab  *Table
}

type record struct {
	fields []*field
	byName map[string]int
}

func newRecord() *record { return &record{byName: make(map[string]int)} }

func (r *record) index(id *RecordFieldId) (int, error) {
	if id.byName {
		i, ok := r.byName[id.name]
		if !ok {
			return -1, fmt.Errorf("%w: %s", ErrNoField, id)
		}
		return i, nil
	}
	if id.number < 0 || int(id.number) >= len(r.fields) {
		return -1, fmt.Errorf("%w: %s of %d fields", ErrNoField, id, len(r.fields))
	}
	return int(id.number), nil
}

func (r *record) define(id *RecordFieldId, dt casa.DataType, v any) error {
	if id.byName {
		if i, ok := r.byName[id.name]; ok {
			f := r.fields[i]
			if f.dt != dt {
				return fmt.Errorf("%w: field %s is %s, not %s", casa.ErrType, id, f.dt, dt)
			}
			releaseValue(f.value)
			f.value = v
			return nil
		}
		r.byName[id.name] = len(r.fields)
		r.fields = append(r.fields, &field{name: id.name, dt: dt, value: v})
		return nil
	}
	i, err := r.index(id)
	if err != nil {
		return err
	}
	f := r.fields[i]
	if f.dt != dt {
		return fmt.Errorf("%w: field %s is %s, not %s", casa.ErrType, id, f.dt, dt)
	}
	releaseValue(f.value)
	f.value = v
	return nil
}

func (r *record) remove(i int) {
	releaseValue(r.fields[i].value)
	delete(r.byName, r.fields[i].name)
	r.fields = append(r.fields[:i], r.fields[i+1:]...)
	for j := i; j < len(r.fields); j++ {
		r.byName[r.fields[j].name] = j
	}
}

func releaseValue(v any) {
	switch x := v.(type) {
	case *tableKeyword:
		if x.tab != nil {
			x.tab.Close()
			x.tab = nil
		}
	case *record:
		x.closeTables()
	}
}

// closeTables drops the table handles held by the record and its
// sub-records.
func (r *record) closeTables() {
	for _, f := range r.fields {
		releaseValue(f.value)
	}
}

// tables calls fn for every open table handle reachable from r.
func (r *record) tables(fn func(*Table) error) error {
	for _, f := range r.fields {
		switch x := f.value.(type) {
		case *tableKeyword:
			if x.tab != nil {
				if err := fn(x.tab); err != nil {
					return err
				}
			}
		case *record:
			if err := x.tables(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// clone copies r. Table fields are copied by name only.
func (r *record) clone() *record {
	out := newRecord()
	for _, f := range r.fields {
		nf := &field{name: f.name, comment: f.comment, dt: f.dt, value: f.value}
		switch x := f.value.(type) {
		case *record:
			nf.value = x.clone()
		case *tableKeyword:
			name := x.name
			if x.tab != nil {
				name = x.tab.TableName()
			}
			nf.value = &tableKeyword{name: name}
		}
		out.byName[f.name] = len(out.fields)
		out.fields = append(out.fields, nf)
	}
	return out
}

type fieldJSON struct {
	Name    string          `json:"name"`
	Comment string          `json:"comment,omitempty"`
	Type    casa.DataType   `json:"type"`
	Value   json.RawMessage `json:"value,omitempty"`
	Record  *recordJSON     `json:"record,omitempty"`
	Table   string          `json:"table,omitempty"`
}

type recordJSON struct {
	Fields []fieldJSON `json:"fields"`
}

func (r *record) toJSON() (*recordJSON, error) {
	out := &recordJSON{Fields: make([]fieldJSON, 0, len(r.fields))}
	for _, f := range r.fields {
		fj := fieldJSON{Name: f.name, Comment: f.comment, Type: f.dt}
		switch x := f.value.(type) {
		case *record:
			sub, err := x.toJSON()
			if err != nil {
				return nil, err
			}
			fj.Record = sub
		case *tableKeyword:
			fj.Table = x.name
			if x.tab != nil {
				fj.Table = x.tab.TableName()
			}
		default:
			k, ok := elementKinds[f.dt]
			if !ok {
				return nil, xerrors.Errorf("%w: field %q has unsupported type %s", casa.ErrIO, f.name, f.dt)
			}
			raw, err := k.encode(x)
			if err != nil {
				return nil, err
			}
			fj.Value = raw
		}
		out.Fields = append(out.Fields, fj)
	}
	return out, nil
}

func recordFromJSON(doc *recordJSON) (*record, error) {
	r := newRecord()
	if doc == nil {
		return r, nil
	}
	for _, fj := range doc.Fields {
		f := &field{name: fj.Name, comment: fj.Comment, dt: fj.Type}
		switch fj.Type {
		case casa.TpRecord:
			sub, err := recordFromJSON(fj.Record)
			if err != nil {
				return nil, err
			}
			f.value = sub
		case casa.TpTable:
			f.value = &tableKeyword{name: fj.Table}
		default:
			k, ok := elementKinds[fj.Type]
			if !ok {
				return nil, xerrors.Errorf("%w: field %q has unsupported type %s", casa.ErrIO, fj.Name, fj.Type)
			}
			v, err := k.decode(fj.Value)
			if err != nil {
				return nil, xerrors.Errorf("field %q: %w", fj.Name, err)
			}
			f.value = v
		}
		r.byName[f.name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r, nil
}

// TableRecord is a set of named, typed fields: scalars, sub-records and
// references to other tables. The keyword sets of a table are
// TableRecords.
type TableRecord struct {
	rec      *record
	readOnly bool
	mem      memory.Allocator
}

// NewTableRecord returns an empty, writable record.
func NewTableRecord() *TableRecord {
	return &TableRecord{rec: newRecord(), mem: memory.DefaultAllocator}
}

func (r *TableRecord) writable() error {
	if r.readOnly {
		return fmt.Errorf("%w: read-only keyword set", ErrReadOnly)
	}
	return nil
}

// Size is the number of fields.
func (r *TableRecord) Size() uint32 { return uint32(len(r.rec.fields)) }

// Name returns the name of field n.
func (r *TableRecord) Name(n int32) (string, error) {
	i, err := r.rec.index(FieldByNumber(n))
	if err != nil {
		return "", err
	}
	return r.rec.fields[i].name, nil
}

// Type returns the data type of field n.
func (r *TableRecord) Type(n int32) (casa.DataType, error) {
	i, err := r.rec.index(FieldByNumber(n))
	if err != nil {
		return casa.TpOther, err
	}
	return r.rec.fields[i].dt, nil
}

// FieldNumber returns the number of the named field, or -1.
func (r *TableRecord) FieldNumber(name string) int32 {
	if i, ok := r.rec.byName[name]; ok {
		return int32(i)
	}
	return -1
}

func (r *TableRecord) IsDefined(name string) bool {
	_, ok := r.rec.byName[name]
	return ok
}

// FieldNames returns the field names in field order.
func (r *TableRecord) FieldNames() []string {
	out := make([]string, len(r.rec.fields))
	for i, f := range r.rec.fields {
		out[i] = f.name
	}
	return out
}

func (r *TableRecord) Comment(id *RecordFieldId) (string, error) {
	i, err := r.rec.index(id)
	if err != nil {
		return "", err
	}
	return r.rec.fields[i].comment, nil
}

func (r *TableRecord) SetComment(id *RecordFieldId, comment string) error {
	if err := r.writable(); err != nil {
		return err
	}
	i, err := r.rec.index(id)
	if err != nil {
		return err
	}
	r.rec.fields[i].comment = comment
	return nil
}

// RemoveField deletes a field. A removed table field drops its handle.
func (r *TableRecord) RemoveField(id *RecordFieldId) error {
	if err := r.writable(); err != nil {
		return err
	}
	i, err := r.rec.index(id)
	if err != nil {
		return err
	}
	r.rec.remove(i)
	return nil
}

// DefineRecord stores a copy of sub as a sub-record.
func (r *TableRecord) DefineRecord(id *RecordFieldId, sub *TableRecord) error {
	if err := r.writable(); err != nil {
		return err
	}
	return r.rec.define(id, casa.TpRecord, sub.rec.clone())
}

// SubRecord returns the sub-record stored in field id. It shares the
// field's storage and is read-only when r is.
func (r *TableRecord) SubRecord(id *RecordFieldId) (*TableRecord, error) {
	i, err := r.rec.index(id)
	if err != nil {
		return nil, err
	}
	sub, ok := r.rec.fields[i].value.(*record)
	if !ok {
		return nil, fmt.Errorf("%w: field %s is %s, not a record", casa.ErrType, id, r.rec.fields[i].dt)
	}
	return &TableRecord{rec: sub, readOnly: r.readOnly, mem: r.mem}, nil
}

// DefineTable stores a reference to t. The record keeps its own handle on
// the table until the field is replaced or removed.
func (r *TableRecord) DefineTable(id *RecordFieldId, t *Table) error {
	if err := r.writable(); err != nil {
		return err
	}
	h, err := t.Copy()
	if err != nil {
		return err
	}
	if err := r.rec.define(id, casa.TpTable, &tableKeyword{name: h.TableName(), tab: h}); err != nil {
		h.Close()
		return err
	}
	return nil
}

// AsTable returns a new handle on the table referenced by field id,
// opening it from disk when the record holds only its name.
func (r *TableRecord) AsTable(id *RecordFieldId) (*Table, error) {
	i, err := r.rec.index(id)
	if err != nil {
		return nil, err
	}
	kw, ok := r.rec.fields[i].value.(*tableKeyword)
	if !ok {
		return nil, fmt.Errorf("%w: field %s is %s, not a table", casa.ErrType, id, r.rec.fields[i].dt)
	}
	if kw.tab != nil {
		if h, err := kw.tab.Copy(); err == nil {
			return h, nil
		}
	}
	opt := Update
	if r.readOnly {
		opt = Old
	}
	return Open(r.mem, kw.name, opt)
}

// Define stores v in field id of r. A new by-name field is appended; an
// existing field keeps its type.
func Define[T casa.Element](r *TableRecord, id *RecordFieldId, v T) error {
	if err := r.writable(); err != nil {
		return err
	}
	return r.rec.define(id, casa.TypeOf[T](), v)
}

// As returns field id of r as a T, converting numeric values when no
// information is lost.
func As[T casa.Element](r *TableRecord, id *RecordFieldId) (T, error) {
	var zero T
	i, err := r.rec.index(id)
	if err != nil {
		return zero, err
	}
	f := r.rec.fields[i]
	switch f.value.(type) {
	case *record, *tableKeyword:
		return zero, fmt.Errorf("%w: field %s is %s", casa.ErrType, id, f.dt)
	}
	return casa.CastValue[T](f.value)
}
