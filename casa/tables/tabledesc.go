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
)

// TableDesc is the ordered list of column descriptions of a table.
type TableDesc struct {
	cols   []*ColumnDesc
	byName map[string]int
}

func NewTableDesc() *TableDesc {
	return &TableDesc{byName: make(map[string]int)}
}

// AddColumn appends a copy of cd.
func (d *TableDesc) AddColumn(cd *ColumnDesc) error {
	if cd.base == nil || cd.Name() == "" {
		return fmt.Errorf("%w: column description without name", casa.ErrInvalid)
	}
	if _, ok := d.byName[cd.Name()]; ok {
		return fmt.Errorf("%w: column %q", ErrExists, cd.Name())
	}
	d.byName[cd.Name()] = len(d.cols)
	d.cols = append(d.cols, cd.clone())
	return nil
}

func (d *TableDesc) removeColumn(name string) {
	i, ok := d.byName[name]
	if !ok {
		return
	}
	d.cols = append(d.cols[:i], d.cols[i+1:]...)
	delete(d.byName, name)
	for j := i; j < len(d.cols); j++ {
		d.byName[d.cols[j].Name()] = j
	}
}

func (d *TableDesc) HasColumn(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// ColumnNames returns the column names in table order.
func (d *TableDesc) ColumnNames() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name()
	}
	return out
}

func (d *TableDesc) Ncolumn() uint32 { return uint32(len(d.cols)) }

// ColumnDesc returns the description of the named column.
func (d *TableDesc) ColumnDesc(name string) (*ColumnDesc, error) {
	i, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return d.cols[i], nil
}

// ColumnDescSet returns the descriptions as an indexable set.
func (d *TableDesc) ColumnDescSet() *ColumnDescSet {
	return &ColumnDescSet{cols: append([]*ColumnDesc(nil), d.cols...)}
}

func (d *TableDesc) clone() *TableDesc {
	out := NewTableDesc()
	for _, c := range d.cols {
		out.byName[c.Name()] = len(out.cols)
		out.cols = append(out.cols, c.clone())
	}
	return out
}
