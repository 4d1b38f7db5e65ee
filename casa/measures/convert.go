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
	"math"

	"github.com/casacore/casabind/casa"
)

// Convert converts measures of one kind from an input reference to an
// output reference.
//
// Conversions between equal reference types and between the algebraic
// Doppler definitions are supported; all others return
// casa.ErrNotImplemented.
type Convert[V Value, K RefType] struct {
	model *M[V, K]
	in    *Ref[K]
	out   *Ref[K]
}

type (
	MBaselineConvert       = Convert[*MVBaseline, BaselineType]
	MDirectionConvert      = Convert[*MVDirection, DirectionType]
	MDopplerConvert        = Convert[*MVDoppler, DopplerType]
	MEarthMagneticConvert  = Convert[*MVEarthMagnetic, EarthMagneticType]
	MEpochConvert          = Convert[*MVEpoch, EpochType]
	MFrequencyConvert      = Convert[*MVFrequency, FrequencyType]
	MPositionConvert       = Convert[*MVPosition, PositionType]
	MRadialVelocityConvert = Convert[*MVRadialVelocity, RadialVelocityType]
	MuvwConvert            = Convert[*MVuvw, UVWType]
)

// NewConvert converts the model measure m to out.
func NewConvert[V Value, K RefType](m *M[V, K], out *Ref[K]) *Convert[V, K] {
	return &Convert[V, K]{model: m.Copy(), in: m.ref.clone(), out: out}
}

// NewConvertType converts values given in reference type typ to out.
func NewConvertType[V Value, K RefType](typ K, out *Ref[K]) *Convert[V, K] {
	return &Convert[V, K]{in: NewRef(typ, nil), out: out}
}

// NewConvertRefs converts values given in reference in to out.
func NewConvertRefs[V Value, K RefType](in, out *Ref[K]) *Convert[V, K] {
	return &Convert[V, K]{in: in, out: out}
}

// SetModel makes m the model converted by Do and its reference the input
// reference.
func (c *Convert[V, K]) SetModel(m *M[V, K]) {
	c.model = m.Copy()
	c.in = m.ref.clone()
}

// SetOut changes the output reference.
func (c *Convert[V, K]) SetOut(out *Ref[K]) { c.out = out }

// Do converts the model measure.
func (c *Convert[V, K]) Do() (*M[V, K], error) {
	if c.model == nil {
		return nil, fmt.Errorf("%w: converter has no model measure", casa.ErrInvalid)
	}
	return c.DoMeasure(c.model)
}

// DoMeasure converts m from its own reference.
func (c *Convert[V, K]) DoMeasure(m *M[V, K]) (*M[V, K], error) {
	return c.convert(m.ref.typ, m.value.GetVector())
}

// DoValue converts v given in the input reference.
func (c *Convert[V, K]) DoValue(v V) (*M[V, K], error) {
	return c.convert(c.in.typ, v.GetVector())
}

// DoVector converts the value vector vec given in the input reference.
func (c *Convert[V, K]) DoVector(vec []float64) (*M[V, K], error) {
	return c.convert(c.in.typ, vec)
}

// ConvertInto converts in and stores the converted value in out.
func (c *Convert[V, K]) ConvertInto(in, out *M[V, K]) error {
	res, err := c.DoMeasure(in)
	if err != nil {
		return err
	}
	out.Set(res.value)
	return nil
}

func (c *Convert[V, K]) convert(from K, vec []float64) (*M[V, K], error) {
	if c.out == nil {
		return nil, fmt.Errorf("%w: converter has no output reference", casa.ErrInvalid)
	}
	to := c.out.typ
	res, err := convertVector(to.MeasureName(), int32(from), int32(to), vec)
	if err != nil {
		return nil, fmt.Errorf("%s %s to %s: %w", to.MeasureName(), from, to, err)
	}
	var zero V
	v := zero.newValue()
	if err := v.PutVector(res); err != nil {
		return nil, err
	}
	return &M[V, K]{value: v.(V), ref: c.out.clone()}, nil
}

func convertVector(measure string, from, to int32, vec []float64) ([]float64, error) {
	if from == to {
		return append([]float64(nil), vec...), nil
	}
	if measure == DopplerRADIO.MeasureName() && len(vec) == 1 {
		r, err := dopplerToRatio(DopplerType(from), vec[0])
		if err != nil {
			return nil, err
		}
		v, err := dopplerFromRatio(DopplerType(to), r)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}
	return nil, casa.ErrNotImplemented
}

// dopplerToRatio returns the frequency ratio f/f0 of a Doppler value.
func dopplerToRatio(t DopplerType, v float64) (float64, error) {
	switch t {
	case DopplerRADIO:
		return 1 - v, nil
	case DopplerZ:
		return 1 / (1 + v), nil
	case DopplerRATIO:
		return v, nil
	case DopplerBETA:
		return math.Sqrt((1 - v) / (1 + v)), nil
	case DopplerGAMMA:
		if v < 1 {
			return 0, fmt.Errorf("%w: Lorentz factor %g below 1", casa.ErrInvalid, v)
		}
		beta := math.Sqrt(1 - 1/(v*v))
		return math.Sqrt((1 - beta) / (1 + beta)), nil
	}
	return 0, fmt.Errorf("%w: Doppler type %s", casa.ErrInvalid, t)
}

func dopplerFromRatio(t DopplerType, r float64) (float64, error) {
	switch t {
	case DopplerRADIO:
		return 1 - r, nil
	case DopplerZ:
		return 1/r - 1, nil
	case DopplerRATIO:
		return r, nil
	case DopplerBETA:
		return (1 - r*r) / (1 + r*r), nil
	case DopplerGAMMA:
		return (1 + r*r) / (2 * r), nil
	}
	return 0, fmt.Errorf("%w: Doppler type %s", casa.ErrInvalid, t)
}
