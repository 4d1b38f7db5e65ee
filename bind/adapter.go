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

package bind

import "reflect"

// Adapter carries a typed Go function across the boundary: the Go types of
// its parameters and result, and a call trampoline taking the already
// checked host arguments.
type Adapter struct {
	params []reflect.Type
	ret    reflect.Type
	call   func(args []any) (any, error)
}

// Arity is the number of parameters, receiver included.
func (a Adapter) Arity() int { return len(a.params) }

func typeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }

// arg returns args[i] as T. Dispatch has already converted it, so a failed
// assertion is only possible for a nil interface value.
func arg[T any](args []any, i int) T {
	v, _ := args[i].(T)
	return v
}

// Constructors return the new value or an error; on error the binding
// layer releases any partially built value that has a finalizer.

func Ctor0[T any](f func() (T, error)) Adapter {
	return Adapter{
		params: []reflect.Type{},
		ret:    typeOf[T](),
		call: func(args []any) (any, error) {
			v, err := f()
			return v, err
		},
	}
}

func Ctor1[T, A0 any](f func(A0) (T, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0]()},
		ret:    typeOf[T](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0))
			return v, err
		},
	}
}

func Ctor2[T, A0, A1 any](f func(A0, A1) (T, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1]()},
		ret:    typeOf[T](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1))
			return v, err
		},
	}
}

func Ctor3[T, A0, A1, A2 any](f func(A0, A1, A2) (T, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2]()},
		ret:    typeOf[T](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2))
			return v, err
		},
	}
}

func Ctor4[T, A0, A1, A2, A3 any](f func(A0, A1, A2, A3) (T, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3]()},
		ret:    typeOf[T](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3))
			return v, err
		},
	}
}

func Ctor5[T, A0, A1, A2, A3, A4 any](f func(A0, A1, A2, A3, A4) (T, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3](), typeOf[A4]()},
		ret:    typeOf[T](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3), arg[A4](args, 4))
			return v, err
		},
	}
}

func Ctor6[T, A0, A1, A2, A3, A4, A5 any](f func(A0, A1, A2, A3, A4, A5) (T, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3](), typeOf[A4](), typeOf[A5]()},
		ret:    typeOf[T](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3), arg[A4](args, 4), arg[A5](args, 5))
			return v, err
		},
	}
}

// FnN adapts a function of N parameters, receiver included, returning one
// value.
func Fn1[A0, O any](f func(A0) O) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			return f(arg[A0](args, 0)), nil
		},
	}
}

func Fn2[A0, A1, O any](f func(A0, A1) O) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			return f(arg[A0](args, 0), arg[A1](args, 1)), nil
		},
	}
}

func Fn3[A0, A1, A2, O any](f func(A0, A1, A2) O) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			return f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2)), nil
		},
	}
}

func Fn4[A0, A1, A2, A3, O any](f func(A0, A1, A2, A3) O) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			return f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3)), nil
		},
	}
}

func Fn5[A0, A1, A2, A3, A4, O any](f func(A0, A1, A2, A3, A4) O) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3](), typeOf[A4]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			return f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3), arg[A4](args, 4)), nil
		},
	}
}

// FnE1 is Fn1 for functions that can fail.
func FnE1[A0, O any](f func(A0) (O, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0))
			return v, err
		},
	}
}

func FnE2[A0, A1, O any](f func(A0, A1) (O, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1))
			return v, err
		},
	}
}

func FnE3[A0, A1, A2, O any](f func(A0, A1, A2) (O, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2))
			return v, err
		},
	}
}

func FnE4[A0, A1, A2, A3, O any](f func(A0, A1, A2, A3) (O, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3))
			return v, err
		},
	}
}

func FnE5[A0, A1, A2, A3, A4, O any](f func(A0, A1, A2, A3, A4) (O, error)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3](), typeOf[A4]()},
		ret:    typeOf[O](),
		call: func(args []any) (any, error) {
			v, err := f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3), arg[A4](args, 4))
			return v, err
		},
	}
}

// Proc1 adapts a function with no result.
func Proc1[A0 any](f func(A0)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			f(arg[A0](args, 0))
			return nil, nil
		},
	}
}

func Proc2[A0, A1 any](f func(A0, A1)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			f(arg[A0](args, 0), arg[A1](args, 1))
			return nil, nil
		},
	}
}

func Proc3[A0, A1, A2 any](f func(A0, A1, A2)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2))
			return nil, nil
		},
	}
}

func Proc4[A0, A1, A2, A3 any](f func(A0, A1, A2, A3)) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3))
			return nil, nil
		},
	}
}

// ProcE1 adapts a function whose only result is an error.
func ProcE1[A0 any](f func(A0) error) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			return nil, f(arg[A0](args, 0))
		},
	}
}

func ProcE2[A0, A1 any](f func(A0, A1) error) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			return nil, f(arg[A0](args, 0), arg[A1](args, 1))
		},
	}
}

func ProcE3[A0, A1, A2 any](f func(A0, A1, A2) error) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			return nil, f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2))
		},
	}
}

func ProcE4[A0, A1, A2, A3 any](f func(A0, A1, A2, A3) error) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			return nil, f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3))
		},
	}
}

func ProcE5[A0, A1, A2, A3, A4 any](f func(A0, A1, A2, A3, A4) error) Adapter {
	return Adapter{
		params: []reflect.Type{typeOf[A0](), typeOf[A1](), typeOf[A2](), typeOf[A3](), typeOf[A4]()},
		ret:    nil,
		call: func(args []any) (any, error) {
			return nil, f(arg[A0](args, 0), arg[A1](args, 1), arg[A2](args, 2), arg[A3](args, 3), arg[A4](args, 4))
		},
	}
}
