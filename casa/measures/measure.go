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

package measures

import (
	"fmt"

	"github.com/casacore/casabind/casa"
)

// Measure is implemented by every measure regardless of kind.
type Measure interface {
	// TellMe names the kind of measure, e.g. "Direction".
	TellMe() string
	GetRefString() string
	MeasureValue() Value
}

// Ref is the reference frame of a measure: a reference type code, an
// optional frame with the measures the conversion depends on, and an
// optional offset.
type Ref[K RefType] struct {
	typ    K
	frame  *MeasFrame
	offset Measure
}

// NewRef returns a reference of type typ. frame may be nil.
func NewRef[K RefType](typ K, frame *MeasFrame) *Ref[K] {
	return &Ref[K]{typ: typ, frame: frame}
}

// DefaultRef returns a reference with the DEFAULT type of K.
func DefaultRef[K RefType]() *Ref[K] {
	k, _ := ParseType[K]("DEFAULT")
	return NewRef(k, nil)
}

func (r *Ref[K]) GetType() K        { return r.typ }
func (r *Ref[K]) Frame() *MeasFrame { return r.frame }
func (r *Ref[K]) Offset() Measure   { return r.offset }

// Set makes offset the reference offset. It must be a measure of the same
// kind.
func (r *Ref[K]) Set(offset Measure) error {
	var k K
	if offset == nil || offset.TellMe() != k.MeasureName() {
		return fmt.Errorf("%w: offset of a %s reference must be a %s measure", casa.ErrType, k.MeasureName(), k.MeasureName())
	}
	r.offset = offset
	return nil
}

func (r *Ref[K]) clone() *Ref[K] {
	c := *r
	return &c
}

func (r *Ref[K]) String() string { return r.typ.String() }

// M is a measure: a value of type V in the reference frame of type K.
type M[V Value, K RefType] struct {
	value  V
	ref    *Ref[K]
	offset *M[V, K]
}

type (
	MBaseline       = M[*MVBaseline, BaselineType]
	MDirection      = M[*MVDirection, DirectionType]
	MDoppler        = M[*MVDoppler, DopplerType]
	MEarthMagnetic  = M[*MVEarthMagnetic, EarthMagneticType]
	MEpoch          = M[*MVEpoch, EpochType]
	MFrequency      = M[*MVFrequency, FrequencyType]
	MPosition       = M[*MVPosition, PositionType]
	MRadialVelocity = M[*MVRadialVelocity, RadialVelocityType]
	Muvw            = M[*MVuvw, UVWType]

	MBaselineRef       = Ref[BaselineType]
	MDirectionRef      = Ref[DirectionType]
	MDopplerRef        = Ref[DopplerType]
	MEarthMagneticRef  = Ref[EarthMagneticType]
	MEpochRef          = Ref[EpochType]
	MFrequencyRef      = Ref[FrequencyType]
	MPositionRef       = Ref[PositionType]
	MRadialVelocityRef = Ref[RadialVelocityType]
	MuvwRef            = Ref[UVWType]
)

// NewMeasure returns a measure holding a copy of v. A nil ref selects the
// default reference type.
func NewMeasure[V Value, K RefType](v V, ref *Ref[K]) *M[V, K] {
	if ref == nil {
		ref = DefaultRef[K]()
	}
	return &M[V, K]{value: cloneValue(v), ref: ref}
}

// NewMeasureType returns a measure of v in reference type typ.
func NewMeasureType[V Value, K RefType](v V, typ K) *M[V, K] {
	return NewMeasure(v, NewRef(typ, nil))
}

// Copy returns an independent copy of m.
func (m *M[V, K]) Copy() *M[V, K] {
	c := &M[V, K]{value: cloneValue(m.value), ref: m.ref.clone()}
	if m.offset != nil {
		c.offset = m.offset.Copy()
	}
	return c
}

// GetValue returns a copy of the measure value.
func (m *M[V, K]) GetValue() V { return cloneValue(m.value) }

func (m *M[V, K]) MeasureValue() Value { return m.GetValue() }

// GetValueAt returns element i of the value vector.
func (m *M[V, K]) GetValueAt(i int) (float64, error) {
	vec := m.value.GetVector()
	if i < 0 || i >= len(vec) {
		return 0, fmt.Errorf("%w: element %d of %d", casa.ErrIndex, i, len(vec))
	}
	return vec[i], nil
}

// Set replaces the value with a copy of v.
func (m *M[V, K]) Set(v V) { m.value = cloneValue(v) }

func (m *M[V, K]) GetRef() *Ref[K]      { return m.ref }
func (m *M[V, K]) GetRefString() string { return m.ref.String() }

func (m *M[V, K]) TellMe() string {
	var k K
	return k.MeasureName()
}

// SetOffset sets the offset of the measure value.
func (m *M[V, K]) SetOffset(off *M[V, K]) { m.offset = off.Copy() }

func (m *M[V, K]) Offset() *M[V, K] { return m.offset }

func (m *M[V, K]) String() string {
	return fmt.Sprintf("%s(%v, %s)", m.TellMe(), m.value.GetVector(), m.GetRefString())
}

// MeasFrame holds up to three measures, such as an epoch, a position and
// a direction, that conversions may depend on.
type MeasFrame struct {
	measures []Measure
}

// NewMeasFrame returns a frame holding ms.
func NewMeasFrame(ms ...Measure) (*MeasFrame, error) {
	if len(ms) > 3 {
		return nil, fmt.Errorf("%w: a frame holds at most 3 measures, got %d", casa.ErrInvalid, len(ms))
	}
	for i, m := range ms {
		if m == nil {
			return nil, fmt.Errorf("%w: frame measure %d is nil", casa.ErrInvalid, i)
		}
	}
	return &MeasFrame{measures: append([]Measure(nil), ms...)}, nil
}

func (f *MeasFrame) Measures() []Measure { return append([]Measure(nil), f.measures...) }

func frameMeasure[T Measure](f *MeasFrame) (T, bool) {
	var zero T
	if f == nil {
		return zero, false
	}
	for _, m := range f.measures {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	return zero, false
}

func (f *MeasFrame) Epoch() (*MEpoch, bool)         { return frameMeasure[*MEpoch](f) }
func (f *MeasFrame) Position() (*MPosition, bool)   { return frameMeasure[*MPosition](f) }
func (f *MeasFrame) Direction() (*MDirection, bool) { return frameMeasure[*MDirection](f) }
