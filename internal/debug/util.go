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

//go:build debug || assert

package debug

import "fmt"

// render turns a message argument into text. Anything that is not a
// string, a func() string, an error or a fmt.Stringer is formatted with %v.
func render(v interface{}) string {
	switch m := v.(type) {
	case string:
		return m
	case func() string:
		return m()
	case error:
		return m.Error()
	case fmt.Stringer:
		return m.String()
	}
	return fmt.Sprintf("%v", v)
}
