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
	"gonum.org/v1/gonum/floats"
)

// Value is the bare value of a measure, without reference frame.
type Value interface {
	// GetVector returns a copy of the internal vector.
	GetVector() []float64
	// PutVector replaces the value from its vector form.
	PutVector(v []float64) error
	newValue() Value
}

func cloneValue[V Value](v V) V {
	c := v.newValue()
	if err := c.PutVector(v.GetVector()); err != nil {
		panic(err) // vectors always round trip
	}
	return c.(V)
}

func checkLen(kind string, v []float64, allowed ...int) error {
	for _, n := range allowed {
		if len(v) == n {
			return nil
		}
	}
	return fmt.Errorf("%w: %s vector needs %v values, got %d", casa.ErrInvalid, kind, allowed, len(v))
}

type xyz [3]float64

func (v *xyz) put(kind string, in []float64) error {
	if err := checkLen(kind, in, 3); err != nil {
		return err
	}
	copy(v[:], in)
	return nil
}

func (v *xyz) long() float64 { return math.Atan2(v[1], v[0]) }
func (v *xyz) lat() float64  { return math.Atan2(v[2], math.Hypot(v[0], v[1])) }

func fromAngles(long, lat, r float64) xyz {
	return xyz{
		r * math.Cos(long) * math.Cos(lat),
		r * math.Sin(long) * math.Cos(lat),
		r * math.Sin(lat),
	}
}

// MVBaseline is a baseline vector in metres.
type MVBaseline struct{ v xyz }

func NewMVBaseline(x, y, z float64) *MVBaseline { return &MVBaseline{v: xyz{x, y, z}} }

func (b *MVBaseline) GetValue() []float64          { return b.GetVector() }
func (b *MVBaseline) GetVector() []float64         { return append([]float64(nil), b.v[:]...) }
func (b *MVBaseline) PutVector(in []float64) error { return b.v.put("baseline", in) }
func (b *MVBaseline) newValue() Value              { return &MVBaseline{} }

// GetLength is the baseline length in metres.
func (b *MVBaseline) GetLength() float64 { return floats.Norm(b.v[:], 2) }

// MVDirection is a unit direction vector.
type MVDirection struct{ v xyz }

// NewMVDirection returns the direction at longitude long and latitude lat,
// both in radians.
func NewMVDirection(long, lat float64) *MVDirection {
	return &MVDirection{v: fromAngles(long, lat, 1)}
}

// NewMVDirectionXYZ returns the direction of the vector (x, y, z).
func NewMVDirectionXYZ(x, y, z float64) *MVDirection {
	d := &MVDirection{v: xyz{x, y, z}}
	d.normalize()
	return d
}

// NewMVDirectionQuantity takes longitude and latitude as angles.
func NewMVDirectionQuantity(long, lat *Quantity) (*MVDirection, error) {
	lo, err := long.canonical("rad")
	if err != nil {
		return nil, err
	}
	la, err := lat.canonical("rad")
	if err != nil {
		return nil, err
	}
	return NewMVDirection(lo, la), nil
}

func (d *MVDirection) normalize() {
	if n := floats.Norm(d.v[:], 2); n > 0 {
		floats.Scale(1/n, d.v[:])
	}
}

func (d *MVDirection) GetLong() float64 { return d.v.long() }
func (d *MVDirection) GetLat() float64  { return d.v.lat() }

// SetAngle points d at longitude long and latitude lat in radians.
func (d *MVDirection) SetAngle(long, lat float64) { d.v = fromAngles(long, lat, 1) }

func (d *MVDirection) GetValue() []float64  { return d.GetVector() }
func (d *MVDirection) GetVector() []float64 { return append([]float64(nil), d.v[:]...) }

// PutVector accepts direction cosines, or longitude and latitude.
func (d *MVDirection) PutVector(in []float64) error {
	if err := checkLen("direction", in, 2, 3); err != nil {
		return err
	}
	if len(in) == 2 {
		d.SetAngle(in[0], in[1])
		return nil
	}
	copy(d.v[:], in)
	d.normalize()
	return nil
}

func (d *MVDirection) newValue() Value { return &MVDirection{} }

// MVDoppler is a dimensionless Doppler value.
type MVDoppler struct{ v float64 }

func NewMVDoppler(v float64) *MVDoppler { return &MVDoppler{v: v} }

// NewMVDopplerVelocity expresses a velocity as a fraction of the speed of
// light.
func NewMVDopplerVelocity(q *Quantity) (*MVDoppler, error) {
	v, err := q.canonical("m/s")
	if err != nil {
		return nil, err
	}
	return &MVDoppler{v: v / SpeedOfLight}, nil
}

func (d *MVDoppler) GetValue() float64    { return d.v }
func (d *MVDoppler) GetVector() []float64 { return []float64{d.v} }
func (d *MVDoppler) PutVector(in []float64) error {
	if err := checkLen("doppler", in, 1); err != nil {
		return err
	}
	d.v = in[0]
	return nil
}
func (d *MVDoppler) newValue() Value { return &MVDoppler{} }

// MVEarthMagnetic is a magnetic field vector in tesla.
type MVEarthMagnetic struct{ v xyz }

func NewMVEarthMagnetic(x, y, z float64) *MVEarthMagnetic {
	return &MVEarthMagnetic{v: xyz{x, y, z}}
}

func (e *MVEarthMagnetic) GetValue() []float64          { return e.GetVector() }
func (e *MVEarthMagnetic) GetVector() []float64         { return append([]float64(nil), e.v[:]...) }
func (e *MVEarthMagnetic) PutVector(in []float64) error { return e.v.put("earth magnetic", in) }
func (e *MVEarthMagnetic) newValue() Value              { return &MVEarthMagnetic{} }

// MVEpoch is an instant in days, kept as whole days and a day fraction.
type MVEpoch struct {
	day, frac float64
}

// NewMVEpoch returns the epoch days (MJD for most time scales).
func NewMVEpoch(days float64) *MVEpoch {
	e := &MVEpoch{}
	e.set(days, 0)
	return e
}

// NewMVEpochQuantity takes the epoch as a time quantity.
func NewMVEpochQuantity(q *Quantity) (*MVEpoch, error) {
	s, err := q.canonical("s")
	if err != nil {
		return nil, err
	}
	return NewMVEpoch(s / 86400), nil
}

func (e *MVEpoch) set(day, frac float64) {
	whole := math.Floor(day) + math.Floor(frac)
	e.frac = (day - math.Floor(day)) + (frac - math.Floor(frac))
	if e.frac >= 1 {
		whole++
		e.frac--
	}
	e.day = whole
}

// Get returns the epoch in days.
func (e *MVEpoch) Get() float64            { return e.day + e.frac }
func (e *MVEpoch) GetDay() float64         { return e.day }
func (e *MVEpoch) GetDayFraction() float64 { return e.frac }
func (e *MVEpoch) GetVector() []float64    { return []float64{e.day, e.frac} }

// PutVector accepts days, or whole days and a fraction.
func (e *MVEpoch) PutVector(in []float64) error {
	if err := checkLen("epoch", in, 1, 2); err != nil {
		return err
	}
	if len(in) == 1 {
		e.set(in[0], 0)
	} else {
		e.set(in[0], in[1])
	}
	return nil
}
func (e *MVEpoch) newValue() Value { return &MVEpoch{} }

// MVFrequency is a frequency in Hz.
type MVFrequency struct{ v float64 }

func NewMVFrequency(hz float64) *MVFrequency { return &MVFrequency{v: hz} }

func NewMVFrequencyQuantity(q *Quantity) (*MVFrequency, error) {
	v, err := q.canonical("Hz")
	if err != nil {
		return nil, err
	}
	return &MVFrequency{v: v}, nil
}

func (f *MVFrequency) GetValue() float64    { return f.v }
func (f *MVFrequency) GetVector() []float64 { return []float64{f.v} }
func (f *MVFrequency) PutVector(in []float64) error {
	if err := checkLen("frequency", in, 1); err != nil {
		return err
	}
	f.v = in[0]
	return nil
}
func (f *MVFrequency) newValue() Value { return &MVFrequency{} }

// MVPosition is a geocentric position in metres.
type MVPosition struct{ v xyz }

func NewMVPosition(x, y, z float64) *MVPosition { return &MVPosition{v: xyz{x, y, z}} }

// NewMVPositionQuantity takes the distance from the geocentre, longitude
// and latitude.
func NewMVPositionQuantity(length, long, lat *Quantity) (*MVPosition, error) {
	r, err := length.canonical("m")
	if err != nil {
		return nil, err
	}
	lo, err := long.canonical("rad")
	if err != nil {
		return nil, err
	}
	la, err := lat.canonical("rad")
	if err != nil {
		return nil, err
	}
	return &MVPosition{v: fromAngles(lo, la, r)}, nil
}

// GetLength returns the distance from the geocentre in u.
func (p *MVPosition) GetLength(u Unit) (*Quantity, error) {
	q := QuantityOf(floats.Norm(p.v[:], 2), mustUnit("m"))
	if err := q.Convert(u); err != nil {
		return nil, err
	}
	return q, nil
}

func (p *MVPosition) GetLong() float64             { return p.v.long() }
func (p *MVPosition) GetLat() float64              { return p.v.lat() }
func (p *MVPosition) GetValue() []float64          { return p.GetVector() }
func (p *MVPosition) GetVector() []float64         { return append([]float64(nil), p.v[:]...) }
func (p *MVPosition) PutVector(in []float64) error { return p.v.put("position", in) }
func (p *MVPosition) newValue() Value              { return &MVPosition{} }

// MVRadialVelocity is a velocity in m/s.
type MVRadialVelocity struct{ v float64 }

func NewMVRadialVelocity(ms float64) *MVRadialVelocity { return &MVRadialVelocity{v: ms} }

func (r *MVRadialVelocity) GetValue() float64    { return r.v }
func (r *MVRadialVelocity) GetVector() []float64 { return []float64{r.v} }
func (r *MVRadialVelocity) PutVector(in []float64) error {
	if err := checkLen("radial velocity", in, 1); err != nil {
		return err
	}
	r.v = in[0]
	return nil
}
func (r *MVRadialVelocity) newValue() Value { return &MVRadialVelocity{} }

// MVuvw is a uvw coordinate in metres.
type MVuvw struct{ v xyz }

func NewMVuvw(u, v, w float64) *MVuvw { return &MVuvw{v: xyz{u, v, w}} }

func (u *MVuvw) GetValue() []float64          { return u.GetVector() }
func (u *MVuvw) GetVector() []float64         { return append([]float64(nil), u.v[:]...) }
func (u *MVuvw) PutVector(in []float64) error { return u.v.put("uvw", in) }
func (u *MVuvw) newValue() Value              { return &MVuvw{} }
