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
	"strings"
)

// ColumnOption is a bit set of column description options.
type ColumnOption int32

const (
	ColumnDirect     ColumnOption = 1
	ColumnUndefined  ColumnOption = 2
	ColumnFixedShape ColumnOption = 4
)

func (o ColumnOption) Has(flag ColumnOption) bool { return o&flag == flag }

func (o ColumnOption) String() string {
	var parts []string
	for _, f := range []struct {
		flag ColumnOption
		name string
	}{{ColumnDirect, "Direct"}, {ColumnUndefined, "Undefined"}, {ColumnFixedShape, "FixedShape"}} {
		if o.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

// TableOption says how a table is opened or created.
type TableOption int32

const (
	// Old opens an existing table read-only.
	Old TableOption = iota + 1
	// New creates a table, replacing an existing one.
	New
	// NewNoReplace creates a table and fails if it exists.
	NewNoReplace
	// Scratch creates a table removed when it is closed.
	Scratch
	// Update opens an existing table read-write.
	Update
	// Delete opens an existing table read-write and removes it on close.
	Delete
)

func (o TableOption) String() string {
	switch o {
	case Old:
		return "Old"
	case New:
		return "New"
	case NewNoReplace:
		return "NewNoReplace"
	case Scratch:
		return "Scratch"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	}
	return fmt.Sprintf("TableOption(%d)", int32(o))
}

func (o TableOption) creates() bool { return o == New || o == NewNoReplace || o == Scratch }

// TableType selects where a table keeps its data.
type TableType int32

const (
	Plain TableType = iota
	Memory
)

func (t TableType) String() string {
	if t == Memory {
		return "Memory"
	}
	return "Plain"
}

// LockOption is the locking mode of a table.
type LockOption int32

const (
	PermanentLocking LockOption = iota
	PermanentLockingWait
	AutoLocking
	UserLocking
	AutoNoReadLocking
	UserNoReadLocking
	NoLocking
	DefaultLocking
)

// TableLock describes how a table is locked. Tables are only shared within
// one process, so the lock is advisory: Unlock writes pending changes of a
// writable plain table.
type TableLock struct {
	Option   LockOption
	Interval float64
	MaxWait  uint32
}

// NewTableLock returns a lock with casacore's default inspection interval.
func NewTableLock(opt LockOption) *TableLock {
	return &TableLock{Option: opt, Interval: 5}
}

// Clone returns a copy of l.
func (l *TableLock) Clone() *TableLock {
	c := *l
	return &c
}

// TSMMode selects how tiled storage managers access their files.
type TSMMode int32

const (
	TSMCache TSMMode = iota
	TSMBuffer
	TSMMmap
	TSMDefault
	TSMAipsrc
)

// TSMOption is recorded with the table and otherwise informational.
type TSMOption struct {
	Mode       TSMMode
	BufferSize int64
}

func NewTSMOption() *TSMOption { return &TSMOption{Mode: TSMDefault} }
