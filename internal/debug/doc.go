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

/*
Package debug holds the checks and traces casabind compiles in only on
request.

# Assertions

Build with the assert tag to turn Assert into a check that panics with an
error wrapping ErrAssertion. The buffers and arrays use it to catch a
release of storage that is already gone and views out of range. Without
the tag Assert compiles to nothing.

# Trace

Build with the debug tag to send Log messages to a logrus logger on
stderr at debug level, tagged with the component that wrote them. The
bind package traces every free function it declares.
*/
package debug

import "errors"

// ErrAssertion is wrapped by the panic value of a failed Assert.
var ErrAssertion = errors.New("casabind: internal assertion failed")
