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

import "errors"

var (
	// ErrReadOnly reports a mutation of a table opened read-only.
	ErrReadOnly = errors.New("tables: table is not writable")
	// ErrClosed reports use of a closed table handle.
	ErrClosed = errors.New("tables: table is closed")
	// ErrNoColumn reports an unknown column name.
	ErrNoColumn = errors.New("tables: no such column")
	// ErrExists reports a table or column that already exists.
	ErrExists = errors.New("tables: already exists")
	// ErrNoTable reports a table directory that does not exist.
	ErrNoTable = errors.New("tables: table does not exist")
	// ErrNoField reports an unknown record field.
	ErrNoField = errors.New("tables: no such record field")
	// ErrUndefined reports a read of an array cell that was never written.
	ErrUndefined = errors.New("tables: cell not defined")
)
