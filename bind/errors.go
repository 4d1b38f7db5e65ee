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

import "errors"

var (
	// ErrDuplicate reports two registrations of the same exported name or
	// Go type.
	ErrDuplicate = errors.New("bind: duplicate registration")
	// ErrUndeclared reports a reference to a symbol or Go type that has not
	// been declared yet.
	ErrUndeclared = errors.New("bind: undeclared reference")
	// ErrAmbiguous reports an overload set the host cannot tell apart.
	ErrAmbiguous = errors.New("bind: ambiguous overload")
	// ErrSealed reports a member added to a symbol that is already Linked.
	ErrSealed = errors.New("bind: symbol already linked")
	// ErrInconsistent reports bindings of one symbol exposing different
	// method surfaces, or a derived type that cannot stand in for its base.
	ErrInconsistent = errors.New("bind: inconsistent binding")
	// ErrNoMatch reports a call whose arguments match no overload.
	ErrNoMatch = errors.New("bind: no matching overload")
	// ErrReleased reports use of a host object after Release.
	ErrReleased = errors.New("bind: object released")
	// ErrNotFound reports a lookup of an unknown name.
	ErrNotFound = errors.New("bind: not found")
	// ErrPanic reports a bound function that panicked during a call.
	ErrPanic = errors.New("bind: bound function panicked")
)
