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

package casabind

import (
	"github.com/casacore/casabind/bind"
	"github.com/casacore/casabind/casa/measures"
)

func (b *Bindings) defineMeasures(m *bind.Module) {
	bind.AddType[measures.Unit](m, "Unit").
		Constructor(bind.Ctor1(measures.NewUnit)).
		Method("name", bind.Fn1(measures.Unit.Name)).
		Method("conforms", bind.Fn2(measures.Unit.Conforms))

	bind.AddType[*measures.Quantity](m, "Quantity").
		Constructor(bind.Ctor2(measures.NewQuantity)).
		Constructor(bind.Ctor2(func(v float64, u measures.Unit) (*measures.Quantity, error) {
			return measures.QuantityOf(v, u), nil
		})).
		Method("qconvert", bind.ProcE2((*measures.Quantity).Convert), bind.Mutates()).
		Method("getValue", bind.Fn1((*measures.Quantity).GetValue)).
		Method("getValue", bind.FnE2((*measures.Quantity).In)).
		Method("getUnit", bind.Fn1((*measures.Quantity).Unit)).
		Method("string", bind.Fn1((*measures.Quantity).String))

	bind.AddType[measures.Measure](m, "Measure").
		Method("tellMe", bind.Fn1(measures.Measure.TellMe)).
		Method("getRefString", bind.Fn1(measures.Measure.GetRefString))

	bind.AddType[*measures.MeasFrame](m, "MeasFrame").
		Constructor(bind.Ctor0(func() (*measures.MeasFrame, error) { return measures.NewMeasFrame() })).
		Constructor(bind.Ctor1(func(a measures.Measure) (*measures.MeasFrame, error) {
			return measures.NewMeasFrame(a)
		})).
		Constructor(bind.Ctor2(func(a, b measures.Measure) (*measures.MeasFrame, error) {
			return measures.NewMeasFrame(a, b)
		})).
		Constructor(bind.Ctor3(func(a, b, c measures.Measure) (*measures.MeasFrame, error) {
			return measures.NewMeasFrame(a, b, c)
		})).
		Method("size", bind.Fn1(func(f *measures.MeasFrame) int { return len(f.Measures()) }))

	defineValues(m)

	addMeasure[*measures.MVBaseline, measures.BaselineType](m, "MBaseline")
	addMeasure[*measures.MVDirection, measures.DirectionType](m, "MDirection")
	addMeasure[*measures.MVDoppler, measures.DopplerType](m, "MDoppler")
	addMeasure[*measures.MVEarthMagnetic, measures.EarthMagneticType](m, "MEarthMagnetic")
	addMeasure[*measures.MVEpoch, measures.EpochType](m, "MEpoch")
	addMeasure[*measures.MVFrequency, measures.FrequencyType](m, "MFrequency")
	addMeasure[*measures.MVPosition, measures.PositionType](m, "MPosition")
	addMeasure[*measures.MVRadialVelocity, measures.RadialVelocityType](m, "MRadialVelocity")
	addMeasure[*measures.MVuvw, measures.UVWType](m, "Muvw")
}

func defineValues(m *bind.Module) {
	bind.AddType[*measures.MVBaseline](m, "MVBaseline").
		Constructor(bind.Ctor3(func(x, y, z float64) (*measures.MVBaseline, error) {
			return measures.NewMVBaseline(x, y, z), nil
		})).
		Method("getValue", bind.Fn1((*measures.MVBaseline).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVBaseline).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVBaseline).PutVector), bind.Mutates()).
		Method("getLength", bind.Fn1((*measures.MVBaseline).GetLength))

	bind.AddType[*measures.MVDirection](m, "MVDirection").
		Constructor(bind.Ctor2(measures.NewMVDirectionQuantity)).
		Constructor(bind.Ctor2(func(long, lat float64) (*measures.MVDirection, error) {
			return measures.NewMVDirection(long, lat), nil
		})).
		Constructor(bind.Ctor3(func(x, y, z float64) (*measures.MVDirection, error) {
			return measures.NewMVDirectionXYZ(x, y, z), nil
		})).
		Method("getLong", bind.Fn1((*measures.MVDirection).GetLong)).
		Method("getLat", bind.Fn1((*measures.MVDirection).GetLat)).
		Method("setAngle", bind.Proc3((*measures.MVDirection).SetAngle), bind.Mutates()).
		Method("getValue", bind.Fn1((*measures.MVDirection).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVDirection).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVDirection).PutVector), bind.Mutates())

	bind.AddType[*measures.MVDoppler](m, "MVDoppler").
		Constructor(bind.Ctor1(func(v float64) (*measures.MVDoppler, error) {
			return measures.NewMVDoppler(v), nil
		})).
		Constructor(bind.Ctor1(measures.NewMVDopplerVelocity)).
		Method("getValue", bind.Fn1((*measures.MVDoppler).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVDoppler).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVDoppler).PutVector), bind.Mutates())

	bind.AddType[*measures.MVEarthMagnetic](m, "MVEarthMagnetic").
		Constructor(bind.Ctor3(func(x, y, z float64) (*measures.MVEarthMagnetic, error) {
			return measures.NewMVEarthMagnetic(x, y, z), nil
		})).
		Method("getValue", bind.Fn1((*measures.MVEarthMagnetic).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVEarthMagnetic).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVEarthMagnetic).PutVector), bind.Mutates())

	bind.AddType[*measures.MVEpoch](m, "MVEpoch").
		Constructor(bind.Ctor1(measures.NewMVEpochQuantity)).
		Constructor(bind.Ctor1(func(days float64) (*measures.MVEpoch, error) {
			return measures.NewMVEpoch(days), nil
		})).
		Method("get", bind.Fn1((*measures.MVEpoch).Get)).
		Method("getDay", bind.Fn1((*measures.MVEpoch).GetDay)).
		Method("getDayFraction", bind.Fn1((*measures.MVEpoch).GetDayFraction)).
		Method("getVector", bind.Fn1((*measures.MVEpoch).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVEpoch).PutVector), bind.Mutates())

	bind.AddType[*measures.MVFrequency](m, "MVFrequency").
		Constructor(bind.Ctor1(func(hz float64) (*measures.MVFrequency, error) {
			return measures.NewMVFrequency(hz), nil
		})).
		Constructor(bind.Ctor1(measures.NewMVFrequencyQuantity)).
		Method("getValue", bind.Fn1((*measures.MVFrequency).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVFrequency).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVFrequency).PutVector), bind.Mutates())

	bind.AddType[*measures.MVPosition](m, "MVPosition").
		Constructor(bind.Ctor3(measures.NewMVPositionQuantity)).
		Constructor(bind.Ctor3(func(x, y, z float64) (*measures.MVPosition, error) {
			return measures.NewMVPosition(x, y, z), nil
		})).
		Method("getLength", bind.FnE2((*measures.MVPosition).GetLength)).
		Method("getLong", bind.Fn1((*measures.MVPosition).GetLong)).
		Method("getLat", bind.Fn1((*measures.MVPosition).GetLat)).
		Method("getValue", bind.Fn1((*measures.MVPosition).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVPosition).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVPosition).PutVector), bind.Mutates())

	bind.AddType[*measures.MVRadialVelocity](m, "MVRadialVelocity").
		Constructor(bind.Ctor1(func(ms float64) (*measures.MVRadialVelocity, error) {
			return measures.NewMVRadialVelocity(ms), nil
		})).
		Method("getValue", bind.Fn1((*measures.MVRadialVelocity).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVRadialVelocity).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVRadialVelocity).PutVector), bind.Mutates())

	bind.AddType[*measures.MVuvw](m, "MVuvw").
		Constructor(bind.Ctor3(func(u, v, w float64) (*measures.MVuvw, error) {
			return measures.NewMVuvw(u, v, w), nil
		})).
		Method("getValue", bind.Fn1((*measures.MVuvw).GetValue)).
		Method("getVector", bind.Fn1((*measures.MVuvw).GetVector)).
		Method("putVector", bind.ProcE2((*measures.MVuvw).PutVector), bind.Mutates())
}

// addMeasure declares measure name with its reference type enumeration,
// reference and converter. The measure is declared under its own name
// rather than as a binding of Measure so that Ref and Convert can mention
// it in their signatures.
func addMeasure[V measures.Value, K measures.RefType](m *bind.Module, name string) {
	var k K
	types := bind.AddEnum[K](m, name+"!Types", bind.Scoped())
	for _, n := range k.Names() {
		types.Const(n.Name, K(n.Value))
	}
	types.Link()

	bind.AddType[*measures.Ref[K]](m, name+"!Ref").
		Constructor(bind.Ctor1(func(typ K) (*measures.Ref[K], error) {
			return measures.NewRef(typ, nil), nil
		})).
		Constructor(bind.Ctor2(func(typ K, frame *measures.MeasFrame) (*measures.Ref[K], error) {
			return measures.NewRef(typ, frame), nil
		})).
		Method("getType", bind.Fn1((*measures.Ref[K]).GetType)).
		Method("getFrame", bind.Fn1((*measures.Ref[K]).Frame)).
		Method("offset", bind.Fn1((*measures.Ref[K]).Offset)).
		Method("string", bind.Fn1((*measures.Ref[K]).String))

	bind.AddType[*measures.M[V, K]](m, name, bind.Super("Measure")).
		Constructor(bind.Ctor1(func(o *measures.M[V, K]) (*measures.M[V, K], error) { return o.Copy(), nil })).
		Constructor(bind.Ctor1(func(v V) (*measures.M[V, K], error) { return measures.NewMeasure[V, K](v, nil), nil })).
		Constructor(bind.Ctor2(func(v V, typ K) (*measures.M[V, K], error) {
			return measures.NewMeasureType(v, typ), nil
		})).
		Constructor(bind.Ctor2(func(v V, ref *measures.Ref[K]) (*measures.M[V, K], error) {
			return measures.NewMeasure(v, ref), nil
		})).
		Method("setOffset", bind.Proc2((*measures.M[V, K]).SetOffset), bind.Mutates()).
		Method("getValue", bind.Fn1((*measures.M[V, K]).GetValue)).
		Method("getValue", bind.FnE2((*measures.M[V, K]).GetValueAt)).
		Method("getRef", bind.Fn1((*measures.M[V, K]).GetRef)).
		Method("getRefString", bind.Fn1((*measures.M[V, K]).GetRefString)).
		Method("tellMe", bind.Fn1((*measures.M[V, K]).TellMe)).
		Method("set", bind.Proc2((*measures.M[V, K]).Set), bind.Mutates()).
		Method("string", bind.Fn1((*measures.M[V, K]).String))

	bind.AddType[*measures.Convert[V, K]](m, name+"!Convert").
		Constructor(bind.Ctor2(func(in *measures.M[V, K], out *measures.Ref[K]) (*measures.Convert[V, K], error) {
			return measures.NewConvert(in, out), nil
		})).
		Constructor(bind.Ctor2(func(typ K, out *measures.Ref[K]) (*measures.Convert[V, K], error) {
			return measures.NewConvertType[V](typ, out), nil
		})).
		Constructor(bind.Ctor2(func(in, out *measures.Ref[K]) (*measures.Convert[V, K], error) {
			return measures.NewConvertRefs[V](in, out), nil
		})).
		Method("convert", bind.FnE1((*measures.Convert[V, K]).Do)).
		Method("convert", bind.FnE2((*measures.Convert[V, K]).DoMeasure)).
		Method("convert", bind.FnE2((*measures.Convert[V, K]).DoValue)).
		Method("convert", bind.FnE2((*measures.Convert[V, K]).DoVector)).
		Method("convert!", bind.ProcE3((*measures.Convert[V, K]).ConvertInto), bind.Mutates()).
		Method("setModel", bind.Proc2((*measures.Convert[V, K]).SetModel), bind.Mutates()).
		Method("setOut", bind.Proc2((*measures.Convert[V, K]).SetOut), bind.Mutates())

	// Ref.set mentions the measure, which is declared after its Ref
	m.Func("set", bind.ProcE2(func(ref *measures.Ref[K], offset *measures.M[V, K]) error {
		return ref.Set(offset)
	}), bind.Mutates())
	m.Func("putVector", bind.ProcE2(func(v V, vec []float64) error {
		return v.PutVector(vec)
	}), bind.Mutates())
}
