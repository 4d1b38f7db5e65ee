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

package casa

// DataType enumerates the value types a table cell or record field can hold.
// The numbering follows the wrapped library.
type DataType int32

const (
	TpBool DataType = iota
	TpChar
	TpUChar
	TpShort
	TpUShort
	TpInt
	TpUInt
	TpFloat
	TpDouble
	TpComplex
	TpDComplex
	TpString
	TpTable
	TpArrayBool
	TpArrayChar
	TpArrayUChar
	TpArrayShort
	TpArrayUShort
	TpArrayInt
	TpArrayUInt
	TpArrayFloat
	TpArrayDouble
	TpArrayComplex
	TpArrayDComplex
	TpArrayString
	TpRecord
	TpOther
	TpQuantity
	TpArrayQuantity
	TpInt64
	TpArrayInt64
	TpNumberOfTypes
)

var dataTypeNames = [...]string{
	"Bool", "Char", "UChar", "Short", "UShort", "Int", "UInt", "Float", "Double",
	"Complex", "DComplex", "String", "Table",
	"ArrayBool", "ArrayChar", "ArrayUChar", "ArrayShort", "ArrayUShort", "ArrayInt",
	"ArrayUInt", "ArrayFloat", "ArrayDouble", "ArrayComplex", "ArrayDComplex", "ArrayString",
	"Record", "Other", "Quantity", "ArrayQuantity", "Int64", "ArrayInt64",
}

func (dt DataType) String() string {
	if dt >= 0 && int(dt) < len(dataTypeNames) {
		return dataTypeNames[dt]
	}
	return "Unknown"
}

// IsArray reports whether dt is one of the TpArray* types.
func (dt DataType) IsArray() bool {
	switch dt {
	case TpArrayBool, TpArrayChar, TpArrayUChar, TpArrayShort, TpArrayUShort,
		TpArrayInt, TpArrayUInt, TpArrayFloat, TpArrayDouble, TpArrayComplex,
		TpArrayDComplex, TpArrayString, TpArrayQuantity, TpArrayInt64:
		return true
	}
	return false
}

// ArrayOf returns the array counterpart of a scalar type, or TpOther.
func ArrayOf(dt DataType) DataType {
	switch {
	case dt >= TpBool && dt <= TpString:
		return dt + (TpArrayBool - TpBool)
	case dt == TpInt64:
		return TpArrayInt64
	case dt == TpQuantity:
		return TpArrayQuantity
	}
	return TpOther
}

// ScalarOf returns the element type of an array type, or dt itself.
func ScalarOf(dt DataType) DataType {
	switch {
	case dt >= TpArrayBool && dt <= TpArrayString:
		return dt - (TpArrayBool - TpBool)
	case dt == TpArrayInt64:
		return TpInt64
	case dt == TpArrayQuantity:
		return TpQuantity
	}
	return dt
}
