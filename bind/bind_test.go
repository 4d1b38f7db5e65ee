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

package bind_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/casacore/casabind/bind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type Shape interface{ Area() float64 }

type Circle struct{ R float64 }

func (c *Circle) Area() float64 { return math.Pi * c.R * c.R }

type Square struct{ S float64 }

func (s *Square) Area() float64 { return s.S * s.S }

type Color int32

const (
	Red Color = iota
	Green
	Blue
)

type Mode int32

type Option uint8

type Box[T any] struct{ v T }

func (b *Box[T]) Get() T  { return b.v }
func (b *Box[T]) Set(v T) { b.v = v }

func declareBox[T any](param bind.TypeRef) func(*bind.Parametric) {
	return func(p *bind.Parametric) {
		bind.Instantiate[*Box[T]](p, param).
			Constructor(bind.Ctor1(func(v T) (*Box[T], error) { return &Box[T]{v: v}, nil })).
			Method("get", bind.Fn1((*Box[T]).Get)).
			Method("set!", bind.Proc2((*Box[T]).Set), bind.Mutates())
	}
}

func shapes(m *bind.Module) error {
	bind.AddType[Shape](m, "Shape").
		Method("area", bind.Fn1(Shape.Area))
	bind.AddType[*Circle](m, "Circle", bind.Super("Shape")).
		Constructor(bind.Ctor1(func(r float64) (*Circle, error) {
			if r < 0 {
				return nil, errors.New("negative radius")
			}
			return &Circle{R: r}, nil
		})).
		Method("radius", bind.Fn1(func(c *Circle) float64 { return c.R }))
	bind.AddType[*Square](m, "Square", bind.Super("Shape")).
		Constructor(bind.Ctor1(func(s float64) (*Square, error) { return &Square{S: s}, nil }))
	bind.AddEnum[Color](m, "Color").
		Const("Red", Red).Const("Green", Green).Const("Blue", Blue)
	bind.AddEnum[Mode](m, "Mode", bind.Scoped()).
		Const("Red", 0).Const("Fast", 1)
	bind.AddParametric(m, "Box").Apply(
		declareBox[float64]("Float64"),
		declareBox[int32]("Int32"),
		declareBox[string]("String"),
	)
	m.Func("describe", bind.Fn1(func(s Shape) string { return fmt.Sprintf("%.2f", s.Area()) }))
	m.Func("paint", bind.Fn2(func(s Shape, c Color) Color { return c }))
	m.Func("scale", bind.Fn2(func(c *Circle, f float64) *Circle { return &Circle{R: c.R * f} }))
	m.Func("scale", bind.Fn2(func(c *Circle, f int32) *Circle { return &Circle{R: c.R * float64(f)} }))
	return nil
}

func TestLoad(t *testing.T) {
	reg, err := bind.Load("shapes", shapes)
	require.NoError(t, err)

	for _, s := range reg.Symbols() {
		assert.Equal(t, bind.Linked, s.State(), s.Name())
	}
	circle, ok := reg.Symbol("Circle")
	require.True(t, ok)
	assert.Equal(t, "Shape", circle.Super().Name())

	box, ok := reg.Symbol("Box")
	require.True(t, ok)
	assert.Equal(t, bind.KindParametric, box.Kind())
	assert.Len(t, box.Bindings(), 3)
	b, ok := box.Binding("Int32")
	require.True(t, ok)
	assert.Equal(t, bind.TypeRef("Box{Int32}"), b.Ref())
	assert.Equal(t, []string{"get", "set!"}, b.MethodNames())

	assert.Contains(t, reg.Names(), "Red")
	assert.NotContains(t, reg.Names(), "Fast")
	assert.Equal(t, []string{"describe", "paint", "scale"}, reg.Functions())
	assert.NotZero(t, reg.Fingerprint())
}

func TestLoadIsDeterministic(t *testing.T) {
	a, err := bind.Load("shapes", shapes)
	require.NoError(t, err)
	b, err := bind.Load("shapes", shapes)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Manifest(), b.Manifest())
}

func TestEnumTagsAreDistinct(t *testing.T) {
	reg, err := bind.Load("shapes", shapes)
	require.NoError(t, err)

	red, ok := reg.Constant("Red")
	require.True(t, ok)
	modeRed, ok := reg.Constant("Mode.Red")
	require.True(t, ok)
	assert.Equal(t, red.Value(), modeRed.Value())
	assert.NotEqual(t, red, modeRed)
	assert.Equal(t, "Color.Red", red.String())

	c, err := reg.New("Circle", 1.0)
	require.NoError(t, err)
	defer c.Release()

	blue, _ := reg.Constant("Blue")
	got, err := reg.CallFunc("paint", c, blue)
	require.NoError(t, err)
	assert.Equal(t, blue, got)

	_, err = reg.CallFunc("paint", c, modeRed)
	assert.ErrorIs(t, err, bind.ErrNoMatch)
	_, err = reg.CallFunc("paint", c, 2)
	assert.ErrorIs(t, err, bind.ErrNoMatch)
}

func TestDispatch(t *testing.T) {
	reg, err := bind.Load("shapes", shapes)
	require.NoError(t, err)

	c, err := reg.New("Circle", 2)
	require.NoError(t, err)
	defer c.Release()
	assert.True(t, c.IsA("Shape"))
	assert.False(t, c.IsA("Square"))

	r, err := c.Call("radius")
	require.NoError(t, err)
	assert.Equal(t, 2.0, r)

	area, err := c.Call("area")
	require.NoError(t, err)
	assert.InDelta(t, 4*math.Pi, area, 1e-12)

	s, err := reg.CallFunc("describe", c)
	require.NoError(t, err)
	assert.Equal(t, "12.57", s)

	// an exact Float64 beats the lossless Int32 conversion
	out, err := reg.CallFunc("scale", c, 1.5)
	require.NoError(t, err)
	scaled := out.(*bind.Object)
	defer scaled.Release()
	assert.Equal(t, bind.TypeRef("Circle"), scaled.Type())
	v, err := bind.As[*Circle](scaled)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.R)

	// a host integer literal matches both overloads at the same cost
	_, err = reg.CallFunc("scale", c, 2)
	assert.ErrorIs(t, err, bind.ErrAmbiguous)

	_, err = reg.CallFunc("scale", c, int32(2))
	assert.NoError(t, err)

	_, err = reg.CallFunc("scale", c, 1.25e300)
	assert.NoError(t, err)
	_, err = reg.CallFunc("scale", c, "two")
	assert.ErrorIs(t, err, bind.ErrNoMatch)

	_, err = c.Call("perimeter")
	assert.ErrorIs(t, err, bind.ErrNotFound)
}

func TestParametricInstances(t *testing.T) {
	reg, err := bind.Load("shapes", shapes)
	require.NoError(t, err)

	b, err := reg.New("Box{Int32}", 7)
	require.NoError(t, err)
	defer b.Release()

	_, err = b.Call("set!", 1<<40)
	assert.ErrorIs(t, err, bind.ErrNoMatch)
	_, err = b.Call("set!", 9.0)
	require.NoError(t, err)
	v, err := b.Call("get")
	require.NoError(t, err)
	assert.Equal(t, int32(9), v)

	_, err = reg.New("Box{Float32}", 1.0)
	assert.ErrorIs(t, err, bind.ErrNotFound)
	_, err = reg.New("Box{String}", 1.0)
	assert.ErrorIs(t, err, bind.ErrNoMatch)
}

func TestConstructorFailure(t *testing.T) {
	var finalized int
	reg, err := bind.Load("res", func(m *bind.Module) error {
		bind.AddType[*Circle](m, "Circle").
			Constructor(bind.Ctor1(func(r float64) (*Circle, error) {
				c := &Circle{R: r}
				if r < 0 {
					return c, errors.New("negative radius")
				}
				return c, nil
			})).
			Finalizer(func(*Circle) { finalized++ })
		return nil
	})
	require.NoError(t, err)

	_, err = reg.New("Circle", -1.0)
	assert.EqualError(t, err, "Circle: negative radius")
	assert.Equal(t, 1, finalized)

	c, err := reg.New("Circle", 1.0)
	require.NoError(t, err)
	c.Release()
	c.Release()
	assert.Equal(t, 2, finalized)
	assert.True(t, c.Released())

	_, err = c.Call("area")
	assert.ErrorIs(t, err, bind.ErrReleased)
	_, err = c.Value()
	assert.ErrorIs(t, err, bind.ErrReleased)
}

func TestCallPanicIsReturned(t *testing.T) {
	reg, err := bind.Load("panics", func(m *bind.Module) error {
		bind.AddType[*Circle](m, "Circle").
			Constructor(bind.Ctor1(func(r float64) (*Circle, error) {
				if r < 0 {
					panic("negative radius")
				}
				return &Circle{R: r}, nil
			})).
			Method("at", bind.Fn2(func(c *Circle, i int64) float64 { return []float64{c.R}[i] }))
		return nil
	})
	require.NoError(t, err)

	_, err = reg.New("Circle", -1.0)
	assert.ErrorIs(t, err, bind.ErrPanic)
	assert.ErrorContains(t, err, "negative radius")

	c, err := reg.New("Circle", 2.0)
	require.NoError(t, err)
	defer c.Release()
	v, err := c.Call("at", int64(0))
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	_, err = c.Call("at", int64(3))
	assert.ErrorIs(t, err, bind.ErrPanic)
}

func TestReleaseDuringCalls(t *testing.T) {
	reg, err := bind.Load("shapes", shapes)
	require.NoError(t, err)
	c, err := reg.New("Circle", 2.0)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				if _, err := c.Call("radius"); err != nil && !errors.Is(err, bind.ErrReleased) {
					return err
				}
				if _, err := c.Value(); err != nil && !errors.Is(err, bind.ErrReleased) {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		c.Release()
		return nil
	})
	require.NoError(t, g.Wait())
	assert.True(t, c.Released())
}

func TestLoadFailures(t *testing.T) {
	for _, tc := range []struct {
		name  string
		entry func(*bind.Module) error
		want  error
	}{
		{
			name: "duplicate name",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Shape")
				bind.AddType[*Square](m, "Shape")
				return nil
			},
			want: bind.ErrDuplicate,
		},
		{
			name: "duplicate go type",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Circle")
				bind.AddType[*Circle](m, "Round")
				return nil
			},
			want: bind.ErrDuplicate,
		},
		{
			name: "primitive name",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Float64")
				return nil
			},
			want: bind.ErrDuplicate,
		},
		{
			name: "primitive go type",
			entry: func(m *bind.Module) error {
				bind.AddEnum[int32](m, "Kind")
				return nil
			},
			want: bind.ErrInconsistent,
		},
		{
			name: "supertype before base",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Circle", bind.Super("Shape"))
				bind.AddType[Shape](m, "Shape")
				return nil
			},
			want: bind.ErrUndeclared,
		},
		{
			name: "derived type not assignable",
			entry: func(m *bind.Module) error {
				bind.AddType[*Square](m, "Square")
				bind.AddType[*Circle](m, "Circle", bind.Super("Square"))
				return nil
			},
			want: bind.ErrInconsistent,
		},
		{
			name: "forward reference",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Circle").
					Method("square", bind.Fn1(func(*Circle) *Square { return nil }))
				bind.AddType[*Square](m, "Square")
				return nil
			},
			want: bind.ErrUndeclared,
		},
		{
			name: "member added after link",
			entry: func(m *bind.Module) error {
				c := bind.AddType[*Circle](m, "Circle")
				bind.AddType[*Square](m, "Square")
				c.Method("radius", bind.Fn1(func(c *Circle) float64 { return c.R }))
				return nil
			},
			want: bind.ErrSealed,
		},
		{
			name: "identical overloads",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Circle").
					Method("grow", bind.Proc2(func(*Circle, float64) {})).
					Method("grow", bind.Proc2(func(*Circle, float64) {}))
				return nil
			},
			want: bind.ErrAmbiguous,
		},
		{
			name: "inconsistent parametric",
			entry: func(m *bind.Module) error {
				p := bind.AddParametric(m, "Box")
				declareBox[float64]("Float64")(p)
				bind.Instantiate[*Box[int32]](p, "Int32").
					Method("get", bind.Fn1((*Box[int32]).Get))
				return nil
			},
			want: bind.ErrInconsistent,
		},
		{
			name: "wrong receiver",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Circle").
					Method("side", bind.Fn1(func(s *Square) float64 { return s.S }))
				return nil
			},
			want: bind.ErrInconsistent,
		},
		{
			name: "entry error",
			entry: func(m *bind.Module) error {
				bind.AddType[*Circle](m, "Circle")
				return bind.ErrNotFound
			},
			want: bind.ErrNotFound,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := bind.Load("bad", tc.entry)
			assert.Nil(t, reg)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadRecoversPanic(t *testing.T) {
	reg, err := bind.Load("boom", func(m *bind.Module) error {
		bind.AddType[*Circle](m, "Circle")
		panic("boom")
	})
	assert.Nil(t, reg)
	assert.ErrorContains(t, err, "boom")
}

func TestMutualReferenceThroughFreeFunction(t *testing.T) {
	reg, err := bind.Load("pair", func(m *bind.Module) error {
		bind.AddType[*Circle](m, "Circle")
		bind.AddType[*Square](m, "Square").
			Method("inscribed", bind.Fn1(func(s *Square) *Circle { return &Circle{R: s.S / 2} }))
		m.Func("circumscribed", bind.Fn1(func(c *Circle) *Square { return &Square{S: 2 * c.R} }))
		return nil
	})
	require.NoError(t, err)

	c, err := reg.New("Circle", 1.0)
	assert.ErrorIs(t, err, bind.ErrNotFound)
	assert.Nil(t, c)

	sq, ok := reg.Wrap(&Square{S: 4}).(*bind.Object)
	require.True(t, ok)
	in, err := sq.Call("inscribed")
	require.NoError(t, err)
	out, err := reg.CallFunc("circumscribed", in)
	require.NoError(t, err)
	got, err := bind.As[*Square](out.(*bind.Object))
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.S)
}

func TestBitFlags(t *testing.T) {
	reg, err := bind.Load("flags", func(m *bind.Module) error {
		bind.AddEnum[Option](m, "Option", bind.BitFlags()).
			Const("Direct", 1).Const("Undefined", 2).Const("FixedShape", 4)
		bind.AddEnum[Color](m, "Color").Const("Red", Red)
		return nil
	})
	require.NoError(t, err)

	direct, _ := reg.Constant("Direct")
	fixed, _ := reg.Constant("FixedShape")
	both, err := direct.Or(fixed)
	require.NoError(t, err)
	assert.EqualValues(t, 5, both.Value())
	assert.True(t, both.Has(fixed))

	red, _ := reg.Constant("Red")
	_, err = red.Or(red)
	assert.ErrorIs(t, err, bind.ErrNoMatch)
	_, err = direct.Or(red)
	assert.ErrorIs(t, err, bind.ErrNoMatch)
}
