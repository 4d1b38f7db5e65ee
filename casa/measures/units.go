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

package measures

import (
	"fmt"
	"math"
	"sort"

	"github.com/casacore/casabind/casa"
)

// SpeedOfLight in m/s.
const SpeedOfLight = 299792458.0

type unitDef struct {
	factor float64 // to the canonical unit of dim
	dim    string
}

var unitTable = map[string]unitDef{
	"":       {1, ""},
	"m":      {1, "m"},
	"km":     {1e3, "m"},
	"cm":     {1e-2, "m"},
	"mm":     {1e-3, "m"},
	"AU":     {1.495978707e11, "m"},
	"s":      {1, "s"},
	"min":    {60, "s"},
	"h":      {3600, "s"},
	"d":      {86400, "s"},
	"a":      {365.25 * 86400, "s"},
	"Hz":     {1, "Hz"},
	"kHz":    {1e3, "Hz"},
	"MHz":    {1e6, "Hz"},
	"GHz":    {1e9, "Hz"},
	"rad":    {1, "rad"},
	"deg":    {math.Pi / 180, "rad"},
	"arcmin": {math.Pi / (180 * 60), "rad"},
	"arcsec": {math.Pi / (180 * 3600), "rad"},
	"mas":    {math.Pi / (180 * 3600e3), "rad"},
	"m/s":    {1, "m/s"},
	"km/s":   {1e3, "m/s"},
	"c":      {SpeedOfLight, "m/s"},
	"T":      {1, "T"},
	"nT":     {1e-9, "T"},
	"G":      {1e-4, "T"},
}

// UnitNames lists the known unit names.
func UnitNames() []string {
	out := make([]string, 0, len(unitTable))
	for n := range unitTable {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Unit is a named physical unit.
type Unit struct {
	name string
	def  unitDef
}

// NewUnit looks up name in the unit table.
func NewUnit(name string) (Unit, error) {
	d, ok := unitTable[name]
	if !ok {
		return Unit{}, fmt.Errorf("%w: unknown unit %q", casa.ErrInvalid, name)
	}
	return Unit{name: name, def: d}, nil
}

func mustUnit(name string) Unit {
	u, err := NewUnit(name)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Unit) Name() string   { return u.name }
func (u Unit) String() string { return u.name }

// Conforms reports whether values in u can be expressed in o.
func (u Unit) Conforms(o Unit) bool { return u.def.dim == o.def.dim }

// Quantity is a value with a unit.
type Quantity struct {
	value float64
	unit  Unit
}

// NewQuantity returns value in the named unit.
func NewQuantity(value float64, unit string) (*Quantity, error) {
	u, err := NewUnit(unit)
	if err != nil {
		return nil, err
	}
	return &Quantity{value: value, unit: u}, nil
}

// QuantityOf returns value in unit u.
func QuantityOf(value float64, u Unit) *Quantity {
	return &Quantity{value: value, unit: u}
}

func (q *Quantity) GetValue() float64 { return q.value }
func (q *Quantity) Unit() Unit        { return q.unit }

func (q *Quantity) String() string {
	if q.unit.name == "" {
		return fmt.Sprintf("%g", q.value)
	}
	return fmt.Sprintf("%g %s", q.value, q.unit.name)
}

// In returns the value expressed in u.
func (q *Quantity) In(u Unit) (float64, error) {
	if !q.unit.Conforms(u) {
		return 0, fmt.Errorf("%w: %s does not conform to %q", casa.ErrInvalid, q, u.name)
	}
	return q.value * q.unit.def.factor / u.def.factor, nil
}

// Convert changes the unit of q to u in place.
func (q *Quantity) Convert(u Unit) error {
	v, err := q.In(u)
	if err != nil {
		return err
	}
	q.value, q.unit = v, u
	return nil
}

// canonical returns the value in the canonical unit of dim.
func (q *Quantity) canonical(dim string) (float64, error) {
	if q.unit.def.dim != dim {
		return 0, fmt.Errorf("%w: %s is not a %s quantity", casa.ErrInvalid, q, dimName(dim))
	}
	return q.value * q.unit.def.factor, nil
}

func dimName(dim string) string {
	switch dim {
	case "m":
		return "length"
	case "s":
		return "time"
	case "rad":
		return "angle"
	case "m/s":
		return "velocity"
	case "Hz":
		return "frequency"
	case "T":
		return "magnetic field"
	}
	return "dimensionless"
}
