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

package array

import (
	"fmt"

	"github.com/casacore/casabind/casa"
)

// LengthOrLast says how the end of a Slicer is interpreted.
type LengthOrLast int32

const (
	EndIsLength LengthOrLast = iota
	EndIsLast
)

// Slicer selects a strided box out of an array.
type Slicer struct {
	start, end, stride IPosition
	endIs              LengthOrLast
}

// NewSlicer builds a slicer. end holds lengths or last positions depending
// on endIs. All three positions must have the same number of axes and
// strides must be positive.
func NewSlicer(start, end, stride IPosition, endIs LengthOrLast) (*Slicer, error) {
	if len(start) != len(end) || len(start) != len(stride) {
		return nil, fmt.Errorf("%w: slicer axes mismatch start=%s end=%s stride=%s",
			casa.ErrInvalid, start, end, stride)
	}
	if endIs != EndIsLength && endIs != EndIsLast {
		return nil, fmt.Errorf("%w: LengthOrLast(%d)", casa.ErrInvalid, endIs)
	}
	for i, s := range stride {
		if s <= 0 {
			return nil, fmt.Errorf("%w: non-positive stride on axis %d", casa.ErrInvalid, i)
		}
	}
	return &Slicer{start: start.Clone(), end: end.Clone(), stride: stride.Clone(), endIs: endIs}, nil
}

func (s *Slicer) Ndim() int { return len(s.start) }

func (s *Slicer) Start() IPosition  { return s.start.Clone() }
func (s *Slicer) Stride() IPosition { return s.stride.Clone() }

// Length returns the number of selected positions along every axis. With
// EndIsLength end already holds that count; with EndIsLast it is the number
// of strides from start that stay at or before end.
func (s *Slicer) Length() IPosition {
	out := make(IPosition, len(s.start))
	for i := range out {
		n := s.end[i]
		if s.endIs == EndIsLast {
			n = 0
			if s.end[i] >= s.start[i] {
				n = 1 + (s.end[i]-s.start[i])/s.stride[i]
			}
		}
		out[i] = max(n, 0)
	}
	return out
}

// Check validates the slicer against shape.
func (s *Slicer) Check(shape IPosition) error {
	if len(shape) != len(s.start) {
		return fmt.Errorf("%w: slicer has %d axes, shape %s has %d", casa.ErrInvalid, len(s.start), shape, len(shape))
	}
	length := s.Length()
	for i := range shape {
		if length[i] == 0 {
			continue
		}
		last := s.start[i] + (length[i]-1)*s.stride[i]
		if s.start[i] < 0 || last >= shape[i] {
			return fmt.Errorf("%w: slicer axis %d selects [%d, %d] of %d", casa.ErrIndex, i, s.start[i], last, shape[i])
		}
	}
	return nil
}

// ForEach calls fn with every selected position, first axis fastest.
func (s *Slicer) ForEach(fn func(pos IPosition) error) error {
	length := s.Length()
	if length.Product() == 0 {
		return nil
	}
	ctr := make(IPosition, len(length))
	pos := make(IPosition, len(length))
	for {
		for i := range pos {
			pos[i] = s.start[i] + ctr[i]*s.stride[i]
		}
		if err := fn(pos); err != nil {
			return err
		}
		i := 0
		for ; i < len(ctr); i++ {
			ctr[i]++
			if ctr[i] < length[i] {
				break
			}
			ctr[i] = 0
		}
		if i == len(ctr) {
			return nil
		}
	}
}
