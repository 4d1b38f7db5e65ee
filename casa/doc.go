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
Package casa defines the closed list of element types shared by the array,
table and measure containers, and the DataType enumeration that names them.

# Element types

Every generic container in this module is instantiated over exactly the
thirteen element types below. The host sees one exported symbol per
container (for example "Array") backed by one binding per element type.

	Bool      bool
	Char      int8
	UChar     uint8
	Short     int16
	UShort    uint16
	Int       int32
	UInt      uint32
	Int64     int64
	Float     float32
	Double    float64
	Complex   complex64
	DComplex  complex128
	String    string

Row numbers (uint64) are accepted by Vector only.
*/
package casa
