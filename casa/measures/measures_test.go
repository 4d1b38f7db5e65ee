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

package measures_test

import (
	"math"
	"testing"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/measures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity(t *testing.T) {
	q, err := measures.NewQuantity(1.5, "km")
	require.NoError(t, err)
	m, err := measures.NewUnit("m")
	require.NoError(t, err)
	require.NoError(t, q.Convert(m))
	assert.InDelta(t, 1500, q.GetValue(), 1e-9)
	assert.Equal(t, "1500 m", q.String())

	s, _ := measures.NewUnit("s")
	assert.ErrorIs(t, q.Convert(s), casa.ErrInvalid)
	_, err = measures.NewUnit("furlong")
	assert.ErrorIs(t, err, casa.ErrInvalid)

	deg, err := measures.NewQuantity(180, "deg")
	require.NoError(t, err)
	rad, _ := measures.NewUnit("rad")
	v, err := deg.In(rad)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, v, 1e-12)
	assert.Contains(t, measures.UnitNames(), "GHz")
}

func TestMVDirection(t *testing.T) {
	d := measures.NewMVDirection(math.Pi/2, math.Pi/4)
	assert.InDelta(t, math.Pi/2, d.GetLong(), 1e-12)
	assert.InDelta(t, math.Pi/4, d.GetLat(), 1e-12)

	x := measures.NewMVDirectionXYZ(0, 0, 5)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, x.GetVector(), 1e-12)

	require.NoError(t, x.PutVector([]float64{math.Pi, 0}))
	assert.InDeltaSlice(t, []float64{-1, 0, 0}, x.GetValue(), 1e-12)
	assert.ErrorIs(t, x.PutVector([]float64{1}), casa.ErrInvalid)

	long, _ := measures.NewQuantity(90, "deg")
	lat, _ := measures.NewQuantity(0, "deg")
	q, err := measures.NewMVDirectionQuantity(long, lat)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, q.GetVector(), 1e-12)
	bad, _ := measures.NewQuantity(1, "m")
	_, err = measures.NewMVDirectionQuantity(bad, lat)
	assert.ErrorIs(t, err, casa.ErrInvalid)
}

func TestMVValues(t *testing.T) {
	b := measures.NewMVBaseline(3, 4, 0)
	assert.InDelta(t, 5, b.GetLength(), 1e-12)
	assert.ErrorIs(t, b.PutVector([]float64{1, 2}), casa.ErrInvalid)

	e := measures.NewMVEpoch(60000.25)
	assert.Equal(t, []float64{60000, 0.25}, e.GetVector())
	require.NoError(t, e.PutVector([]float64{10, 1.5}))
	assert.EqualValues(t, 11, e.GetDay())
	assert.InDelta(t, 0.5, e.GetDayFraction(), 1e-12)
	day, _ := measures.NewQuantity(36, "h")
	e, err := measures.NewMVEpochQuantity(day)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, e.Get(), 1e-12)

	v, _ := measures.NewQuantity(measures.SpeedOfLight/2, "m/s")
	dop, err := measures.NewMVDopplerVelocity(v)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dop.GetValue(), 1e-12)

	ghz, _ := measures.NewQuantity(1.4, "GHz")
	f, err := measures.NewMVFrequencyQuantity(ghz)
	require.NoError(t, err)
	assert.InDelta(t, 1.4e9, f.GetValue(), 1)

	r, _ := measures.NewQuantity(6378, "km")
	long, _ := measures.NewQuantity(0, "deg")
	lat, _ := measures.NewQuantity(90, "deg")
	p, err := measures.NewMVPositionQuantity(r, long, lat)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, p.GetLat(), 1e-12)
	km, _ := measures.NewUnit("km")
	length, err := p.GetLength(km)
	require.NoError(t, err)
	assert.InDelta(t, 6378, length.GetValue(), 1e-6)

	uvw := measures.NewMVuvw(1, 2, 3)
	assert.Equal(t, []float64{1, 2, 3}, uvw.GetValue())
	rv := measures.NewMVRadialVelocity(-12)
	assert.Equal(t, []float64{-12}, rv.GetVector())
	em := measures.NewMVEarthMagnetic(1e-5, 0, 0)
	assert.Len(t, em.GetValue(), 3)
}

func TestTypes(t *testing.T) {
	assert.Equal(t, "J2000", measures.DirectionJ2000.String())
	assert.Equal(t, "AZELSW", measures.DirectionAZELNE.String())
	assert.EqualValues(t, 32, measures.DirectionMERCURY)
	assert.EqualValues(t, 19, measures.BaselineDEFAULT)
	assert.Equal(t, measures.EpochUTC, measures.EpochDEFAULT)
	assert.Equal(t, measures.FrequencyLSRD, measures.FrequencyLSR)
	assert.Equal(t, "DopplerType(17)", measures.DopplerType(17).String())

	k, ok := measures.ParseType[measures.EpochType]("TAI")
	require.True(t, ok)
	assert.Equal(t, measures.EpochIAT, k)
	_, ok = measures.ParseType[measures.EpochType]("GPS")
	assert.False(t, ok)
}

func TestMeasure(t *testing.T) {
	mv := measures.NewMVDirection(0.1, 0.2)
	m := measures.NewMeasure(mv, measures.NewRef(measures.DirectionGALACTIC, nil))
	assert.Equal(t, "Direction", m.TellMe())
	assert.Equal(t, "GALACTIC", m.GetRefString())

	require.NoError(t, mv.PutVector([]float64{1, 0, 0}))
	got := m.GetValue()
	assert.InDelta(t, 0.1, got.GetLong(), 1e-12, "measure keeps its own copy")

	x, err := m.GetValueAt(2)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(0.2), x, 1e-12)
	_, err = m.GetValueAt(3)
	assert.ErrorIs(t, err, casa.ErrIndex)

	def := measures.NewMeasure[*measures.MVEpoch, measures.EpochType](measures.NewMVEpoch(1), nil)
	assert.Equal(t, "UTC", def.GetRefString())

	cp := m.Copy()
	cp.Set(measures.NewMVDirection(0, 0))
	assert.InDelta(t, 0.1, m.GetValue().GetLong(), 1e-12)

	ref := measures.NewRef(measures.EpochTAI, nil)
	assert.ErrorIs(t, ref.Set(m), casa.ErrType)
	require.NoError(t, ref.Set(def))
	assert.Equal(t, def, ref.Offset())

	m.SetOffset(cp)
	assert.Equal(t, cp.GetValue(), m.Offset().GetValue())
}

func TestMeasFrame(t *testing.T) {
	ep := measures.NewMeasureType(measures.NewMVEpoch(60000), measures.EpochUTC)
	pos := measures.NewMeasureType(measures.NewMVPosition(1, 2, 3), measures.PositionITRF)
	dir := measures.NewMeasureType(measures.NewMVDirection(0, 0), measures.DirectionJ2000)

	f, err := measures.NewMeasFrame(ep, pos, dir)
	require.NoError(t, err)
	assert.Len(t, f.Measures(), 3)
	got, ok := f.Epoch()
	require.True(t, ok)
	assert.Same(t, ep, got)
	_, ok = f.Direction()
	assert.True(t, ok)

	_, err = measures.NewMeasFrame(ep, pos, dir, ep)
	assert.ErrorIs(t, err, casa.ErrInvalid)

	only, err := measures.NewMeasFrame(pos)
	require.NoError(t, err)
	_, ok = only.Epoch()
	assert.False(t, ok)
}

func TestConvert(t *testing.T) {
	radio := measures.NewMeasureType(measures.NewMVDoppler(0.1), measures.DopplerRADIO)

	toZ := measures.NewConvert(radio, measures.NewRef(measures.DopplerZ, nil))
	z, err := toZ.Do()
	require.NoError(t, err)
	assert.Equal(t, "Z", z.GetRefString())
	assert.InDelta(t, 1/0.9-1, z.GetValue().GetValue(), 1e-12)

	back := measures.NewConvertType[*measures.MVDoppler](measures.DopplerZ, measures.NewRef(measures.DopplerRADIO, nil))
	r, err := back.DoMeasure(z)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, r.GetValue().GetValue(), 1e-12)

	for _, typ := range []measures.DopplerType{measures.DopplerBETA, measures.DopplerGAMMA, measures.DopplerRATIO} {
		there := measures.NewConvertRefs[*measures.MVDoppler](measures.NewRef(measures.DopplerRADIO, nil), measures.NewRef(typ, nil))
		mid, err := there.DoVector([]float64{0.1})
		require.NoError(t, err, typ)
		again := measures.NewConvert(mid, measures.NewRef(measures.DopplerRADIO, nil))
		res, err := again.Do()
		require.NoError(t, err, typ)
		assert.InDelta(t, 0.1, res.GetValue().GetValue(), 1e-9, typ)
	}

	out := measures.NewMeasureType(measures.NewMVDoppler(0), measures.DopplerZ)
	require.NoError(t, toZ.ConvertInto(radio, out))
	assert.InDelta(t, 1/0.9-1, out.GetValue().GetValue(), 1e-12)

	dir := measures.NewMeasureType(measures.NewMVDirection(1, 0.5), measures.DirectionJ2000)
	same := measures.NewConvert(dir, measures.NewRef(measures.DirectionJ2000, nil))
	res, err := same.Do()
	require.NoError(t, err)
	assert.InDeltaSlice(t, dir.GetValue().GetVector(), res.GetValue().GetVector(), 1e-12)

	same.SetOut(measures.NewRef(measures.DirectionGALACTIC, nil))
	_, err = same.Do()
	assert.ErrorIs(t, err, casa.ErrNotImplemented)

	_, err = measures.NewConvertType[*measures.MVDirection](measures.DirectionJ2000, measures.NewRef(measures.DirectionJ2000, nil)).Do()
	assert.ErrorIs(t, err, casa.ErrInvalid)
	res, err = measures.NewConvertType[*measures.MVDirection](measures.DirectionJ2000, measures.NewRef(measures.DirectionJ2000, nil)).
		DoValue(measures.NewMVDirection(0, 0))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, res.GetValue().GetVector(), 1e-12)
}
