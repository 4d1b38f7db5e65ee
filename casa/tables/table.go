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
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/memory"
	"github.com/google/uuid"
)

type tableCore struct {
	mu         sync.RWMutex
	refs       int64
	mem        memory.Allocator
	name       string
	typ        TableType
	lock       TableLock
	tsm        TSMOption
	desc       *TableDesc
	cols       map[string]columnStore
	nrow       int
	keywords   *record
	writable   bool
	markDelete bool
	closed     bool
}

// Table is a handle on a table. Handles created by Copy share the table;
// the table is written back, or removed for scratch tables, when the last
// handle is closed.
type Table struct {
	core   *tableCore
	closed int32
}

// OpenOption configures Open.
type OpenOption func(*tableCore)

// WithLock sets the lock options of the table.
func WithLock(l *TableLock) OpenOption {
	return func(c *tableCore) {
		if l != nil {
			c.lock = *l
		}
	}
}

// WithTSM sets the tiled storage manager options of the table.
func WithTSM(o *TSMOption) OpenOption {
	return func(c *tableCore) {
		if o != nil {
			c.tsm = *o
		}
	}
}

func newCore(mem memory.Allocator, name string, typ TableType) *tableCore {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &tableCore{
		refs:     1,
		mem:      mem,
		name:     name,
		typ:      typ,
		lock:     *NewTableLock(DefaultLocking),
		tsm:      *NewTSMOption(),
		desc:     NewTableDesc(),
		cols:     make(map[string]columnStore),
		keywords: newRecord(),
		writable: true,
	}
}

// NewTable creates an empty, unnamed table of the given type. A plain table is
// a scratch table in the temporary directory.
func NewTable(mem memory.Allocator, typ TableType) (*Table, error) {
	switch typ {
	case Memory:
		return NewMemory(mem, "memory-"+uuid.NewString()), nil
	case Plain:
		return Open(mem, filepath.Join(os.TempDir(), "casabind-"+uuid.NewString()), Scratch)
	}
	return nil, fmt.Errorf("%w: %s", casa.ErrInvalid, typ)
}

// NewMemory creates an empty table that lives in memory only.
func NewMemory(mem memory.Allocator, name string) *Table {
	return &Table{core: newCore(mem, name, Memory)}
}

// Open opens or creates the plain table in directory name.
func Open(mem memory.Allocator, name string, opt TableOption, opts ...OpenOption) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty table name", casa.ErrInvalid)
	}
	c := newCore(mem, name, Plain)
	for _, o := range opts {
		o(c)
	}
	exists := tableExists(name)

	switch opt {
	case Old, Update, Delete:
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrNoTable, name)
		}
		snap, err := readTable(name)
		if err != nil {
			return nil, err
		}
		c.desc, c.cols, c.nrow, c.keywords = snap.desc, snap.cols, snap.nrow, snap.keywords
		c.writable = opt != Old
		c.markDelete = opt == Delete
	case NewNoReplace:
		if exists {
			return nil, fmt.Errorf("%w: table %s", ErrExists, name)
		}
		fallthrough
	case New, Scratch:
		if err := os.RemoveAll(name); err != nil {
			return nil, ioError("replace", name, err)
		}
		if err := os.MkdirAll(name, 0o755); err != nil {
			return nil, ioError("create", name, err)
		}
		c.markDelete = opt == Scratch
		if err := createTable(name, c.snapshot()); err != nil {
			os.RemoveAll(name)
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", casa.ErrInvalid, opt)
	}
	return &Table{core: c}, nil
}

func (t *Table) open() (*tableCore, error) {
	if atomic.LoadInt32(&t.closed) == 1 || t.core == nil {
		return nil, ErrClosed
	}
	return t.core, nil
}

func (c *tableCore) checkWritable() error {
	if c.closed {
		return ErrClosed
	}
	if !c.writable {
		return fmt.Errorf("%w: %s", ErrReadOnly, c.name)
	}
	return nil
}

// Copy returns a new handle on the same table.
func (t *Table) Copy() (*Table, error) {
	c, err := t.open()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	c.refs++
	return &Table{core: c}, nil
}

// Close drops the handle. The last Close of a writable plain table writes
// it, or removes it when it was created as scratch or opened for delete.
// Closing a handle twice is a no-op.
func (t *Table) Close() error {
	if !atomic.CompareAndSwapInt32(&t.closed, 0, 1) || t.core == nil {
		return nil
	}
	c := t.core
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs--
	if c.refs > 0 {
		return nil
	}
	c.closed = true
	c.keywords.closeTables()
	if c.typ != Plain {
		return nil
	}
	if c.markDelete {
		if err := os.RemoveAll(c.name); err != nil {
			return ioError("delete", c.name, err)
		}
		return nil
	}
	if c.writable {
		return writeTable(c.name, c.snapshot(), false)
	}
	return nil
}

// IsClosed reports whether this handle was closed.
func (t *Table) IsClosed() bool { return atomic.LoadInt32(&t.closed) == 1 }

func (t *Table) TableName() string {
	if t.core == nil {
		return ""
	}
	t.core.mu.RLock()
	defer t.core.mu.RUnlock()
	return t.core.name
}

func (t *Table) Type() TableType { return t.core.typ }

func (t *Table) IsWritable() bool {
	t.core.mu.RLock()
	defer t.core.mu.RUnlock()
	return t.core.writable
}

func (t *Table) Lock() TableLock { return t.core.lock }

func (t *Table) TSMOption() TSMOption { return t.core.tsm }

// Nrow is the number of rows.
func (t *Table) Nrow() (uint64, error) {
	c, err := t.open()
	if err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uint64(c.nrow), nil
}

// TableDesc returns a copy of the table description.
func (t *Table) TableDesc() (*TableDesc, error) {
	c, err := t.open()
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.desc.clone(), nil
}

// ReopenRW makes a table opened read-only writable.
func (t *Table) ReopenRW() error {
	c, err := t.open()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writable = true
	return nil
}

// Rename gives the table a new name. A plain table is written and moved to
// the new directory; opt is New, NewNoReplace or Scratch.
func (t *Table) Rename(newName string, opt TableOption) error {
	c, err := t.open()
	if err != nil {
		return err
	}
	if newName == "" {
		return fmt.Errorf("%w: empty table name", casa.ErrInvalid)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWritable(); err != nil {
		return err
	}
	if !opt.creates() {
		return fmt.Errorf("%w: rename with option %s", casa.ErrInvalid, opt)
	}
	if c.typ == Plain {
		if tableExists(newName) {
			if opt == NewNoReplace {
				return fmt.Errorf("%w: table %s", ErrExists, newName)
			}
			if err := os.RemoveAll(newName); err != nil {
				return ioError("replace", newName, err)
			}
		}
		if err := writeTable(c.name, c.snapshot(), false); err != nil {
			return err
		}
		if err := os.Rename(c.name, newName); err != nil {
			return ioError("rename", c.name, err)
		}
	}
	c.name = newName
	if opt == Scratch {
		c.markDelete = true
	}
	return nil
}

// Flush writes a writable plain table to disk. With recursive set the
// tables referenced from the keyword set are flushed as well.
func (t *Table) Flush(fsync, recursive bool) error {
	c, err := t.open()
	if err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.typ == Plain && c.writable {
		if err := writeTable(c.name, c.snapshot(), fsync); err != nil {
			return err
		}
	}
	if recursive {
		return c.keywords.tables(func(sub *Table) error {
			return sub.Flush(fsync, true)
		})
	}
	return nil
}

// Unlock releases the table lock, writing pending changes first.
func (t *Table) Unlock() error {
	return t.Flush(false, false)
}

// AddColumn adds a column described by cd, filling existing rows with the
// column default. addToParent only matters for reference tables, which
// are not supported, and is ignored.
func (t *Table) AddColumn(cd *ColumnDesc, addToParent bool) error {
	c, err := t.open()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWritable(); err != nil {
		return err
	}
	if err := c.desc.AddColumn(cd); err != nil {
		return err
	}
	c.cols[cd.Name()] = cd.base.newStore(c.nrow)
	return nil
}

func (t *Table) RemoveColumn(name string) error {
	c, err := t.open()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWritable(); err != nil {
		return err
	}
	if !c.desc.HasColumn(name) {
		return fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	c.desc.removeColumn(name)
	delete(c.cols, name)
	return nil
}

// AddRow appends n rows. With initialize set scalar cells take the column
// default, otherwise their zero value.
func (t *Table) AddRow(n uint64, initialize bool) error {
	c, err := t.open()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWritable(); err != nil {
		return err
	}
	for _, s := range c.cols {
		s.addRows(int(n), initialize)
	}
	c.nrow += int(n)
	return nil
}

// RemoveRow deletes one row.
func (t *Table) RemoveRow(row uint64) error {
	return t.RemoveRows(NewRowNumbers([]uint64{row}))
}

// RemoveRows deletes every listed row. The rows need not be sorted; all of
// them must exist.
func (t *Table) RemoveRows(rows *RowNumbers) error {
	c, err := t.open()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWritable(); err != nil {
		return err
	}
	idx := make([]int, 0, len(rows.rows))
	for _, r := range rows.rows {
		if r >= uint64(c.nrow) {
			return fmt.Errorf("%w: row %d of %d", casa.ErrIndex, r, c.nrow)
		}
		idx = append(idx, int(r))
	}
	sort.Ints(idx)
	uniq := idx[:0]
	for i, r := range idx {
		if i == 0 || r != idx[i-1] {
			uniq = append(uniq, r)
		}
	}
	for _, s := range c.cols {
		s.removeRows(uniq)
	}
	c.nrow -= len(uniq)
	return nil
}

// KeywordSet returns the table keywords, read-only.
func (t *Table) KeywordSet() (*TableRecord, error) {
	c, err := t.open()
	if err != nil {
		return nil, err
	}
	return &TableRecord{rec: c.keywords, readOnly: true, mem: c.mem}, nil
}

// RwKeywordSet returns the table keywords for update.
func (t *Table) RwKeywordSet() (*TableRecord, error) {
	c, err := t.open()
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := c.checkWritable(); err != nil {
		return nil, err
	}
	return &TableRecord{rec: c.keywords, mem: c.mem}, nil
}

// DeepCopy writes a complete copy of the table, data included, as a plain
// table in directory newName. opt is New, NewNoReplace or Scratch.
func (t *Table) DeepCopy(newName string, opt TableOption) error {
	c, err := t.open()
	if err != nil {
		return err
	}
	if !opt.creates() {
		return fmt.Errorf("%w: deep copy with option %s", casa.ErrInvalid, opt)
	}
	c.mu.RLock()
	snap := c.snapshot().clone()
	c.mu.RUnlock()

	if tableExists(newName) && opt == NewNoReplace {
		return fmt.Errorf("%w: table %s", ErrExists, newName)
	}
	if err := os.RemoveAll(newName); err != nil {
		return ioError("replace", newName, err)
	}
	if err := os.MkdirAll(newName, 0o755); err != nil {
		return ioError("create", newName, err)
	}
	return writeTable(newName, snap, false)
}

// column returns the store and description of a column.
func (c *tableCore) column(name string) (columnStore, *ColumnDesc, error) {
	if c.closed {
		return nil, nil, ErrClosed
	}
	cd, err := c.desc.ColumnDesc(name)
	if err != nil {
		return nil, nil, err
	}
	return c.cols[name], cd, nil
}

// RowNumbers is a list of row numbers.
type RowNumbers struct {
	rows []uint64
}

func NewRowNumbers(rows []uint64) *RowNumbers {
	return &RowNumbers{rows: append([]uint64(nil), rows...)}
}

func (r *RowNumbers) Len() int { return len(r.rows) }

func (r *RowNumbers) Rows() []uint64 { return append([]uint64(nil), r.rows...) }
