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
	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/array"
	"github.com/casacore/casabind/memory"
)

func (b *Bindings) defineArrays(m *bind.Module) {
	bind.AddType[array.IPosition](m, "IPosition").
		Constructor(bind.Ctor1(func(n int) (array.IPosition, error) {
			return array.NewIPosition(n)
		})).
		Constructor(bind.Ctor2(func(n int, v0 int64) (array.IPosition, error) {
			return array.NewIPosition(n, v0)
		})).
		Constructor(bind.Ctor3(func(n int, v0, v1 int64) (array.IPosition, error) {
			return array.NewIPosition(n, v0, v1)
		})).
		Constructor(bind.Ctor4(func(n int, v0, v1, v2 int64) (array.IPosition, error) {
			return array.NewIPosition(n, v0, v1, v2)
		})).
		Constructor(bind.Ctor5(func(n int, v0, v1, v2, v3 int64) (array.IPosition, error) {
			return array.NewIPosition(n, v0, v1, v2, v3)
		})).
		Constructor(bind.Ctor1(func(vals []int64) (array.IPosition, error) {
			return array.NewIPosition(len(vals), vals...)
		})).
		Method("size", bind.Fn1(array.IPosition.Size)).
		Method("getindex", bind.FnE2(array.IPosition.At)).
		Method("product", bind.Fn1(array.IPosition.Product)).
		Method("string", bind.Fn1(array.IPosition.String))

	bind.AddEnum[array.LengthOrLast](m, "LengthOrLast").
		Const("endIsLength", array.EndIsLength).
		Const("endIsLast", array.EndIsLast)

	bind.AddType[*array.Slicer](m, "Slicer").
		Constructor(bind.Ctor4(array.NewSlicer)).
		Method("ndim", bind.Fn1((*array.Slicer).Ndim)).
		Method("start", bind.Fn1((*array.Slicer).Start)).
		Method("length", bind.Fn1((*array.Slicer).Length)).
		Method("stride", bind.Fn1((*array.Slicer).Stride))

	bind.AddEnum[memory.Policy](m, "StorageInitPolicy").
		Const("COPY", memory.Copy).
		Const("TAKE_OVER", memory.TakeOwnership).
		Const("SHARE", memory.Share)

	bind.AddParametric(m, "Storage").Apply(storages()...).Link()
	bind.AddParametric(m, "Vector").Apply(b.vectors()...).Link()
	bind.AddParametric(m, "Array").Apply(b.arrays()...).Link()
}

func elementRef[T casa.VectorElement]() bind.TypeRef {
	return bind.TypeRef(casa.ElementName[T]())
}

// fromHost builds a container over host data. Data handed over with
// TakeOwnership is first moved into memory from mem, which the container
// returns to mem on its last release, or fromHost does when build fails.
func fromHost[T any, C any](mem memory.Allocator, data []T, policy memory.Policy, build func([]T) (C, error)) (C, error) {
	if policy != memory.TakeOwnership {
		return build(data)
	}
	owned := memory.AllocateSlice[T](mem, len(data))
	copy(owned, data)
	c, err := build(owned)
	if err != nil {
		memory.FreeSlice(mem, owned)
	}
	return c, err
}

func storageOf[T casa.VectorElement](p *bind.Parametric) {
	bind.Instantiate[*memory.View[T]](p, elementRef[T]()).
		Method("length", bind.Fn1((*memory.View[T]).Len)).
		Method("getindex", bind.FnE2((*memory.View[T]).At)).
		Method("values", bind.Fn1((*memory.View[T]).Values)).
		Method("released", bind.Fn1((*memory.View[T]).Released)).
		Finalizer((*memory.View[T]).Release)
}

func vectorOf[T casa.VectorElement](b *Bindings) func(*bind.Parametric) {
	return func(p *bind.Parametric) {
		bind.Instantiate[*array.Vector[T]](p, elementRef[T]()).
			Constructor(bind.Ctor0(func() (*array.Vector[T], error) {
				return array.NewVector[T](b.mem), nil
			})).
			Constructor(bind.Ctor1(func(shape array.IPosition) (*array.Vector[T], error) {
				return array.NewVectorShaped[T](b.mem, shape)
			})).
			Constructor(bind.Ctor3(func(shape array.IPosition, data []T, policy memory.Policy) (*array.Vector[T], error) {
				return fromHost(b.mem, data, policy, func(d []T) (*array.Vector[T], error) {
					return array.VectorFromBuffer(b.mem, shape, d, policy)
				})
			})).
			Constructor(bind.Ctor1(func(values []T) (*array.Vector[T], error) {
				return array.VectorOf(b.mem, values), nil
			})).
			Method("shape", bind.Fn1((*array.Vector[T]).Shape)).
			Method("length", bind.Fn1((*array.Vector[T]).Len)).
			Method("getindex", bind.FnE2((*array.Vector[T]).Index)).
			Method("setindex!", bind.ProcE3((*array.Vector[T]).SetIndex), bind.Mutates()).
			Method("tovector", bind.Fn1((*array.Vector[T]).ToVector), bind.Allocates()).
			Method("getStorage", bind.Fn1((*array.Vector[T]).Storage)).
			Method("freeStorage", bind.Proc2((*array.Vector[T]).FreeStorage)).
			Finalizer((*array.Vector[T]).Release)
	}
}

func arrayOf[T casa.Element](b *Bindings) func(*bind.Parametric) {
	return func(p *bind.Parametric) {
		bind.Instantiate[*array.Array[T]](p, elementRef[T]()).
			Constructor(bind.Ctor0(func() (*array.Array[T], error) {
				return array.New[T](b.mem), nil
			})).
			Constructor(bind.Ctor1(func(shape array.IPosition) (*array.Array[T], error) {
				return array.NewShaped[T](b.mem, shape)
			})).
			Constructor(bind.Ctor3(func(shape array.IPosition, data []T, policy memory.Policy) (*array.Array[T], error) {
				return fromHost(b.mem, data, policy, func(d []T) (*array.Array[T], error) {
					return array.FromBuffer(b.mem, shape, d, policy)
				})
			})).
			Method("shape", bind.Fn1((*array.Array[T]).Shape)).
			Method("ndim", bind.Fn1((*array.Array[T]).Ndim)).
			Method("length", bind.Fn1((*array.Array[T]).Len)).
			Method("getindex", bind.FnE2((*array.Array[T]).Slice)).
			Method("getindex", bind.FnE2((*array.Array[T]).At)).
			Method("setindex!", bind.ProcE3((*array.Array[T]).Set), bind.Mutates()).
			Method("resize!", bind.ProcE2((*array.Array[T]).Resize), bind.Mutates()).
			Method("reshape", bind.FnE2(func(a *array.Array[T], shape array.IPosition) (*array.Array[T], error) {
				return a.Reshape(b.mem, shape)
			}), bind.Allocates()).
			Method("getSlice", bind.FnE2(func(a *array.Array[T], sl *array.Slicer) (*array.Array[T], error) {
				return a.GetSlice(b.mem, sl)
			}), bind.Allocates()).
			Method("putSlice!", bind.ProcE3((*array.Array[T]).PutSlice), bind.Mutates()).
			Method("tovector", bind.Fn1((*array.Array[T]).ToVector), bind.Allocates()).
			Method("getStorage", bind.Fn1((*array.Array[T]).Storage)).
			Method("freeStorage", bind.Proc2((*array.Array[T]).FreeStorage)).
			Finalizer((*array.Array[T]).Release)
	}
}
