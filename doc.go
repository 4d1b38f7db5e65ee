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

// Package casabind is the registration script exposing the casa packages
// to a dynamic host through a bind.Registry.
//
// Define declares every symbol in dependency order: application state,
// data types, arrays, table descriptions, tables and columns, and finally
// units, quantities and measures. Parametric symbols (Vector, Array, the
// column descriptions and the columns) are instantiated once per element
// type through the apply lists in elements.gen.go.
//
//	reg, err := casabind.Load()
//	if err != nil {
//		return err
//	}
//	update, _ := reg.Constant("TableOption.Update")
//	tab, err := reg.New("Table", "/data/my.ms", update)
package casabind

//go:generate go run ./internal/tools/elemgen -o elements.gen.go
