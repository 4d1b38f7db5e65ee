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
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
)

// columnStore holds the cells of one column. Stores are guarded by the
// lock of the table that owns them.
type columnStore interface {
	nrow() int
	addRows(n int, initialize bool)
	// removeRows drops the given rows, which are sorted and unique.
	removeRows(rows []int)
	clone() columnStore
	encode() ([]byte, error)
	decode(raw []byte, nrow int) error
}

type scalarStore[T casa.Element] struct {
	def  T
	vals []T
}

func (s *scalarStore[T]) nrow() int { return len(s.vals) }

func (s *scalarStore[T]) addRows(n int, initialize bool) {
	var fill T
	if initialize {
		fill = s.def
	}
	for i := 0; i < n; i++ {
		s.vals = append(s.vals, fill)
	}
}

func (s *scalarStore[T]) removeRows(rows []int) {
	s.vals = removeIndices(s.vals, rows)
}

func (s *scalarStore[T]) clone() columnStore {
	return &scalarStore[T]{def: s.def, vals: append([]T(nil), s.vals...)}
}

type scalarJSON struct {
	Values json.RawMessage `json:"values"`
}

func (s *scalarStore[T]) encode() ([]byte, error) {
	vals, err := json.Marshal(encodeSlice(s.vals))
	if err != nil {
		return nil, err
	}
	return json.Marshal(scalarJSON{Values: vals})
}

func (s *scalarStore[T]) decode(raw []byte, nrow int) error {
	var doc scalarJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	vals, err := decodeSlice[T](doc.Values)
	if err != nil {
		return err
	}
	if len(vals) != nrow {
		return xerrors.Errorf("%w: column holds %d rows, table has %d", casa.ErrIO, len(vals), nrow)
	}
	s.vals = vals
	return nil
}

type arrayCell[T casa.Element] struct {
	shape array.IPosition
	data  []T
}

func (c *arrayCell[T]) clone() *arrayCell[T] {
	if c == nil {
		return nil
	}
	return &arrayCell[T]{shape: c.shape.Clone(), data: append([]T(nil), c.data...)}
}

// arrayStore holds one array per row; a nil cell is undefined. A fixed
// shape column has every cell defined.
type arrayStore[T casa.Element] struct {
	shape array.IPosition
	cells []*arrayCell[T]
}

func (s *arrayStore[T]) nrow() int { return len(s.cells) }

func (s *arrayStore[T]) fixed() bool { return len(s.shape) > 0 }

func (s *arrayStore[T]) newCell() *arrayCell[T] {
	return &arrayCell[T]{shape: s.shape.Clone(), data: make([]T, s.shape.Product())}
}

func (s *arrayStore[T]) addRows(n int, _ bool) {
	for i := 0; i < n; i++ {
		var c *arrayCell[T]
		if s.fixed() {
			c = s.newCell()
		}
		s.cells = append(s.cells, c)
	}
}

func (s *arrayStore[T]) removeRows(rows []int) {
	s.cells = removeIndices(s.cells, rows)
}

func (s *arrayStore[T]) clone() columnStore {
	out := &arrayStore[T]{shape: s.shape.Clone(), cells: make([]*arrayCell[T], len(s.cells))}
	for i, c := range s.cells {
		out.cells[i] = c.clone()
	}
	return out
}

type cellJSON struct {
	Shape array.IPosition `json:"shape"`
	Data  json.RawMessage `json:"data"`
}

type arrayJSON struct {
	Cells []*cellJSON `json:"cells"`
}

func (s *arrayStore[T]) encode() ([]byte, error) {
	doc := arrayJSON{Cells: make([]*cellJSON, len(s.cells))}
	for i, c := range s.cells {
		if c == nil {
			continue
		}
		data, err := json.Marshal(encodeSlice(c.data))
		if err != nil {
			return nil, err
		}
		doc.Cells[i] = &cellJSON{Shape: c.shape, Data: data}
	}
	return json.Marshal(doc)
}

func (s *arrayStore[T]) decode(raw []byte, nrow int) error {
	var doc arrayJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if len(doc.Cells) != nrow {
		return xerrors.Errorf("%w: column holds %d rows, table has %d", casa.ErrIO, len(doc.Cells), nrow)
	}
	s.cells = make([]*arrayCell[T], nrow)
	for i, c := range doc.Cells {
		if c == nil {
			continue
		}
		data, err := decodeSlice[T](c.Data)
		if err != nil {
			return err
		}
		if int64(len(data)) != c.Shape.Product() {
			return xerrors.Errorf("%w: row %d has shape %s and %d values", casa.ErrIO, i, c.Shape, len(data))
		}
		s.cells[i] = &arrayCell[T]{shape: c.Shape, data: data}
	}
	return nil
}

func (s *arrayStore[T]) cell(row int) (*arrayCell[T], error) {
	if row < 0 || row >= len(s.cells) {
		return nil, fmt.Errorf("%w: row %d of %d", casa.ErrIndex, row, len(s.cells))
	}
	c := s.cells[row]
	if c == nil {
		return nil, fmt.Errorf("%w: row %d", ErrUndefined, row)
	}
	return c, nil
}

func removeIndices[E any](s []E, rows []int) []E {
	if len(rows) == 0 {
		return s
	}
	out := s[:0]
	j := 0
	for i, v := range s {
		if j < len(rows) && rows[j] == i {
			j++
			continue
		}
		out = append(out, v)
	}
	var zero E
	for i := len(out); i < len(s); i++ {
		s[i] = zero
	}
	return out
}
