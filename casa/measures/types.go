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

import "fmt"

// TypeName is one named code of a reference type enumeration. Several
// names may share a code; the first one is canonical.
type TypeName struct {
	Name  string
	Value int32
}

// RefType is the constraint satisfied by the reference type enumerations.
type RefType interface {
	~int32
	fmt.Stringer
	// MeasureName is the name of the measure the codes belong to.
	MeasureName() string
	Names() []TypeName
}

func typeString(names []TypeName, measure string, v int32) string {
	for _, n := range names {
		if n.Value == v {
			return n.Name
		}
	}
	return fmt.Sprintf("%sType(%d)", measure, v)
}

// ParseType returns the code with the given name.
func ParseType[K RefType](name string) (K, bool) {
	var k K
	for _, n := range k.Names() {
		if n.Name == name {
			return K(n.Value), true
		}
	}
	return k, false
}

// BaselineType enumerates the reference types of Baseline measures.
type BaselineType int32

const (
	BaselineJ2000     BaselineType = 0
	BaselineJMEAN     BaselineType = 1
	BaselineJTRUE     BaselineType = 2
	BaselineAPP       BaselineType = 3
	BaselineB1950     BaselineType = 4
	BaselineB1950VLA  BaselineType = 5
	BaselineBMEAN     BaselineType = 6
	BaselineBTRUE     BaselineType = 7
	BaselineGALACTIC  BaselineType = 8
	BaselineHADEC     BaselineType = 9
	BaselineAZEL      BaselineType = 10
	BaselineAZELSW    BaselineType = 11
	BaselineAZELGEO   BaselineType = 12
	BaselineAZELSWGEO BaselineType = 13
	BaselineJNAT      BaselineType = 14
	BaselineECLIPTIC  BaselineType = 15
	BaselineMECLIPTIC BaselineType = 16
	BaselineTECLIPTIC BaselineType = 17
	BaselineSUPERGAL  BaselineType = 18
	BaselineITRF      BaselineType = 19
	BaselineTOPO      BaselineType = 20
	BaselineICRS      BaselineType = 21
	BaselineNTypes    BaselineType = 22
	BaselineDEFAULT   BaselineType = 19
	BaselineAZELNE    BaselineType = 11
	BaselineAZELNEGEO BaselineType = 13
)

var baselineTypeNames = []TypeName{
	{"J2000", 0},
	{"JMEAN", 1},
	{"JTRUE", 2},
	{"APP", 3},
	{"B1950", 4},
	{"B1950_VLA", 5},
	{"BMEAN", 6},
	{"BTRUE", 7},
	{"GALACTIC", 8},
	{"HADEC", 9},
	{"AZEL", 10},
	{"AZELSW", 11},
	{"AZELGEO", 12},
	{"AZELSWGEO", 13},
	{"JNAT", 14},
	{"ECLIPTIC", 15},
	{"MECLIPTIC", 16},
	{"TECLIPTIC", 17},
	{"SUPERGAL", 18},
	{"ITRF", 19},
	{"TOPO", 20},
	{"ICRS", 21},
	{"N_Types", 22},
	{"DEFAULT", 19},
	{"AZELNE", 11},
	{"AZELNEGEO", 13},
}

func (BaselineType) MeasureName() string { return "Baseline" }
func (BaselineType) Names() []TypeName   { return baselineTypeNames }
func (t BaselineType) String() string    { return typeString(baselineTypeNames, "Baseline", int32(t)) }

// DirectionType enumerates the reference types of Direction measures.
type DirectionType int32

const (
	DirectionJ2000     DirectionType = 0
	DirectionJMEAN     DirectionType = 1
	DirectionJTRUE     DirectionType = 2
	DirectionAPP       DirectionType = 3
	DirectionB1950     DirectionType = 4
	DirectionB1950VLA  DirectionType = 5
	DirectionBMEAN     DirectionType = 6
	DirectionBTRUE     DirectionType = 7
	DirectionGALACTIC  DirectionType = 8
	DirectionHADEC     DirectionType = 9
	DirectionAZEL      DirectionType = 10
	DirectionAZELSW    DirectionType = 11
	DirectionAZELGEO   DirectionType = 12
	DirectionAZELSWGEO DirectionType = 13
	DirectionJNAT      DirectionType = 14
	DirectionECLIPTIC  DirectionType = 15
	DirectionMECLIPTIC DirectionType = 16
	DirectionTECLIPTIC DirectionType = 17
	DirectionSUPERGAL  DirectionType = 18
	DirectionITRF      DirectionType = 19
	DirectionTOPO      DirectionType = 20
	DirectionICRS      DirectionType = 21
	DirectionNTypes    DirectionType = 22
	DirectionMERCURY   DirectionType = 32
	DirectionVENUS     DirectionType = 33
	DirectionMARS      DirectionType = 34
	DirectionJUPITER   DirectionType = 35
	DirectionSATURN    DirectionType = 36
	DirectionURANUS    DirectionType = 37
	DirectionNEPTUNE   DirectionType = 38
	DirectionPLUTO     DirectionType = 39
	DirectionSUN       DirectionType = 40
	DirectionMOON      DirectionType = 41
	DirectionCOMET     DirectionType = 42
	DirectionNPlanets  DirectionType = 43
	DirectionEXTRA     DirectionType = 32
	DirectionDEFAULT   DirectionType = 0
	DirectionAZELNE    DirectionType = 11
	DirectionAZELNEGEO DirectionType = 13
)

var directionTypeNames = []TypeName{
	{"J2000", 0},
	{"JMEAN", 1},
	{"JTRUE", 2},
	{"APP", 3},
	{"B1950", 4},
	{"B1950_VLA", 5},
	{"BMEAN", 6},
	{"BTRUE", 7},
	{"GALACTIC", 8},
	{"HADEC", 9},
	{"AZEL", 10},
	{"AZELSW", 11},
	{"AZELGEO", 12},
	{"AZELSWGEO", 13},
	{"JNAT", 14},
	{"ECLIPTIC", 15},
	{"MECLIPTIC", 16},
	{"TECLIPTIC", 17},
	{"SUPERGAL", 18},
	{"ITRF", 19},
	{"TOPO", 20},
	{"ICRS", 21},
	{"N_Types", 22},
	{"MERCURY", 32},
	{"VENUS", 33},
	{"MARS", 34},
	{"JUPITER", 35},
	{"SATURN", 36},
	{"URANUS", 37},
	{"NEPTUNE", 38},
	{"PLUTO", 39},
	{"SUN", 40},
	{"MOON", 41},
	{"COMET", 42},
	{"N_Planets", 43},
	{"EXTRA", 32},
	{"DEFAULT", 0},
	{"AZELNE", 11},
	{"AZELNEGEO", 13},
}

func (DirectionType) MeasureName() string { return "Direction" }
func (DirectionType) Names() []TypeName   { return directionTypeNames }
func (t DirectionType) String() string    { return typeString(directionTypeNames, "Direction", int32(t)) }

// DopplerType enumerates the reference types of Doppler measures.
type DopplerType int32

const (
	DopplerRADIO        DopplerType = 0
	DopplerZ            DopplerType = 1
	DopplerRATIO        DopplerType = 2
	DopplerBETA         DopplerType = 3
	DopplerGAMMA        DopplerType = 4
	DopplerNTypes       DopplerType = 5
	DopplerOPTICAL      DopplerType = 1
	DopplerRELATIVISTIC DopplerType = 3
	DopplerDEFAULT      DopplerType = 0
)

var dopplerTypeNames = []TypeName{
	{"RADIO", 0},
	{"Z", 1},
	{"RATIO", 2},
	{"BETA", 3},
	{"GAMMA", 4},
	{"N_Types", 5},
	{"OPTICAL", 1},
	{"RELATIVISTIC", 3},
	{"DEFAULT", 0},
}

func (DopplerType) MeasureName() string { return "Doppler" }
func (DopplerType) Names() []TypeName   { return dopplerTypeNames }
func (t DopplerType) String() string    { return typeString(dopplerTypeNames, "Doppler", int32(t)) }

// EarthMagneticType enumerates the reference types of EarthMagnetic measures.
type EarthMagneticType int32

const (
	EarthMagneticJ2000     EarthMagneticType = 0
	EarthMagneticJMEAN     EarthMagneticType = 1
	EarthMagneticJTRUE     EarthMagneticType = 2
	EarthMagneticAPP       EarthMagneticType = 3
	EarthMagneticB1950     EarthMagneticType = 4
	EarthMagneticB1950VLA  EarthMagneticType = 5
	EarthMagneticBMEAN     EarthMagneticType = 6
	EarthMagneticBTRUE     EarthMagneticType = 7
	EarthMagneticGALACTIC  EarthMagneticType = 8
	EarthMagneticHADEC     EarthMagneticType = 9
	EarthMagneticAZEL      EarthMagneticType = 10
	EarthMagneticAZELSW    EarthMagneticType = 11
	EarthMagneticAZELGEO   EarthMagneticType = 12
	EarthMagneticAZELSWGEO EarthMagneticType = 13
	EarthMagneticJNAT      EarthMagneticType = 14
	EarthMagneticECLIPTIC  EarthMagneticType = 15
	EarthMagneticMECLIPTIC EarthMagneticType = 16
	EarthMagneticTECLIPTIC EarthMagneticType = 17
	EarthMagneticSUPERGAL  EarthMagneticType = 18
	EarthMagneticITRF      EarthMagneticType = 19
	EarthMagneticTOPO      EarthMagneticType = 20
	EarthMagneticICRS      EarthMagneticType = 21
	EarthMagneticNTypes    EarthMagneticType = 22
	EarthMagneticIGRF      EarthMagneticType = 32
	EarthMagneticNModels   EarthMagneticType = 33
	EarthMagneticEXTRA     EarthMagneticType = 32
	EarthMagneticDEFAULT   EarthMagneticType = 32
	EarthMagneticAZELNE    EarthMagneticType = 11
	EarthMagneticAZELNEGEO EarthMagneticType = 13
)

var earthMagneticTypeNames = []TypeName{
	{"J2000", 0},
	{"JMEAN", 1},
	{"JTRUE", 2},
	{"APP", 3},
	{"B1950", 4},
	{"B1950_VLA", 5},
	{"BMEAN", 6},
	{"BTRUE", 7},
	{"GALACTIC", 8},
	{"HADEC", 9},
	{"AZEL", 10},
	{"AZELSW", 11},
	{"AZELGEO", 12},
	{"AZELSWGEO", 13},
	{"JNAT", 14},
	{"ECLIPTIC", 15},
	{"MECLIPTIC", 16},
	{"TECLIPTIC", 17},
	{"SUPERGAL", 18},
	{"ITRF", 19},
	{"TOPO", 20},
	{"ICRS", 21},
	{"N_Types", 22},
	{"IGRF", 32},
	{"N_Models", 33},
	{"EXTRA", 32},
	{"DEFAULT", 32},
	{"AZELNE", 11},
	{"AZELNEGEO", 13},
}

func (EarthMagneticType) MeasureName() string { return "EarthMagnetic" }
func (EarthMagneticType) Names() []TypeName   { return earthMagneticTypeNames }
func (t EarthMagneticType) String() string    { return typeString(earthMagneticTypeNames, "EarthMagnetic", int32(t)) }

// EpochType enumerates the reference types of Epoch measures.
type EpochType int32

const (
	EpochLAST    EpochType = 0
	EpochLMST    EpochType = 1
	EpochGMST1   EpochType = 2
	EpochGAST    EpochType = 3
	EpochUT1     EpochType = 4
	EpochUT2     EpochType = 5
	EpochUTC     EpochType = 6
	EpochTAI     EpochType = 7
	EpochTDT     EpochType = 8
	EpochTCG     EpochType = 9
	EpochTDB     EpochType = 10
	EpochTCB     EpochType = 11
	EpochNTypes  EpochType = 12
	EpochRAZE    EpochType = 32
	EpochEXTRA   EpochType = 32
	EpochIAT     EpochType = 7
	EpochGMST    EpochType = 2
	EpochTT      EpochType = 8
	EpochUT      EpochType = 4
	EpochET      EpochType = 8
	EpochDEFAULT EpochType = 6
)

var epochTypeNames = []TypeName{
	{"LAST", 0},
	{"LMST", 1},
	{"GMST1", 2},
	{"GAST", 3},
	{"UT1", 4},
	{"UT2", 5},
	{"UTC", 6},
	{"TAI", 7},
	{"TDT", 8},
	{"TCG", 9},
	{"TDB", 10},
	{"TCB", 11},
	{"N_Types", 12},
	{"RAZE", 32},
	{"EXTRA", 32},
	{"IAT", 7},
	{"GMST", 2},
	{"TT", 8},
	{"UT", 4},
	{"ET", 8},
	{"DEFAULT", 6},
}

func (EpochType) MeasureName() string { return "Epoch" }
func (EpochType) Names() []TypeName   { return epochTypeNames }
func (t EpochType) String() string    { return typeString(epochTypeNames, "Epoch", int32(t)) }

// FrequencyType enumerates the reference types of Frequency measures.
type FrequencyType int32

const (
	FrequencyREST      FrequencyType = 0
	FrequencyLSRK      FrequencyType = 1
	FrequencyLSRD      FrequencyType = 2
	FrequencyBARY      FrequencyType = 3
	FrequencyGEO       FrequencyType = 4
	FrequencyTOPO      FrequencyType = 5
	FrequencyGALACTO   FrequencyType = 6
	FrequencyLGROUP    FrequencyType = 7
	FrequencyCMB       FrequencyType = 8
	FrequencyNTypes    FrequencyType = 9
	FrequencyUndefined FrequencyType = 64
	FrequencyNOther    FrequencyType = 65
	FrequencyEXTRA     FrequencyType = 64
	FrequencyDEFAULT   FrequencyType = 1
	FrequencyLSR       FrequencyType = 2
)

var frequencyTypeNames = []TypeName{
	{"REST", 0},
	{"LSRK", 1},
	{"LSRD", 2},
	{"BARY", 3},
	{"GEO", 4},
	{"TOPO", 5},
	{"GALACTO", 6},
	{"LGROUP", 7},
	{"CMB", 8},
	{"N_Types", 9},
	{"Undefined", 64},
	{"N_Other", 65},
	{"EXTRA", 64},
	{"DEFAULT", 1},
	{"LSR", 2},
}

func (FrequencyType) MeasureName() string { return "Frequency" }
func (FrequencyType) Names() []TypeName   { return frequencyTypeNames }
func (t FrequencyType) String() string    { return typeString(frequencyTypeNames, "Frequency", int32(t)) }

// PositionType enumerates the reference types of Position measures.
type PositionType int32

const (
	PositionITRF    PositionType = 0
	PositionWGS84   PositionType = 1
	PositionNTypes  PositionType = 2
	PositionDEFAULT PositionType = 0
)

var positionTypeNames = []TypeName{
	{"ITRF", 0},
	{"WGS84", 1},
	{"N_Types", 2},
	{"DEFAULT", 0},
}

func (PositionType) MeasureName() string { return "Position" }
func (PositionType) Names() []TypeName   { return positionTypeNames }
func (t PositionType) String() string    { return typeString(positionTypeNames, "Position", int32(t)) }

// RadialVelocityType enumerates the reference types of RadialVelocity measures.
type RadialVelocityType int32

const (
	RadialVelocityLSRK    RadialVelocityType = 0
	RadialVelocityLSRD    RadialVelocityType = 1
	RadialVelocityBARY    RadialVelocityType = 2
	RadialVelocityGEO     RadialVelocityType = 3
	RadialVelocityTOPO    RadialVelocityType = 4
	RadialVelocityGALACTO RadialVelocityType = 5
	RadialVelocityLGROUP  RadialVelocityType = 6
	RadialVelocityCMB     RadialVelocityType = 7
	RadialVelocityNTypes  RadialVelocityType = 8
	RadialVelocityDEFAULT RadialVelocityType = 0
	RadialVelocityLSR     RadialVelocityType = 1
)

var radialVelocityTypeNames = []TypeName{
	{"LSRK", 0},
	{"LSRD", 1},
	{"BARY", 2},
	{"GEO", 3},
	{"TOPO", 4},
	{"GALACTO", 5},
	{"LGROUP", 6},
	{"CMB", 7},
	{"N_Types", 8},
	{"DEFAULT", 0},
	{"LSR", 1},
}

func (RadialVelocityType) MeasureName() string { return "RadialVelocity" }
func (RadialVelocityType) Names() []TypeName   { return radialVelocityTypeNames }
func (t RadialVelocityType) String() string    { return typeString(radialVelocityTypeNames, "RadialVelocity", int32(t)) }

// UVWType enumerates the reference types of uvw measures.
type UVWType int32

const (
	UVWJ2000     UVWType = 0
	UVWJMEAN     UVWType = 1
	UVWJTRUE     UVWType = 2
	UVWAPP       UVWType = 3
	UVWB1950     UVWType = 4
	UVWB1950VLA  UVWType = 5
	UVWBMEAN     UVWType = 6
	UVWBTRUE     UVWType = 7
	UVWGALACTIC  UVWType = 8
	UVWHADEC     UVWType = 9
	UVWAZEL      UVWType = 10
	UVWAZELSW    UVWType = 11
	UVWAZELGEO   UVWType = 12
	UVWAZELSWGEO UVWType = 13
	UVWJNAT      UVWType = 14
	UVWECLIPTIC  UVWType = 15
	UVWMECLIPTIC UVWType = 16
	UVWTECLIPTIC UVWType = 17
	UVWSUPERGAL  UVWType = 18
	UVWITRF      UVWType = 19
	UVWTOPO      UVWType = 20
	UVWICRS      UVWType = 21
	UVWNTypes    UVWType = 22
	UVWDEFAULT   UVWType = 19
	UVWAZELNE    UVWType = 11
	UVWAZELNEGEO UVWType = 13
)

var uVWTypeNames = []TypeName{
	{"J2000", 0},
	{"JMEAN", 1},
	{"JTRUE", 2},
	{"APP", 3},
	{"B1950", 4},
	{"B1950_VLA", 5},
	{"BMEAN", 6},
	{"BTRUE", 7},
	{"GALACTIC", 8},
	{"HADEC", 9},
	{"AZEL", 10},
	{"AZELSW", 11},
	{"AZELGEO", 12},
	{"AZELSWGEO", 13},
	{"JNAT", 14},
	{"ECLIPTIC", 15},
	{"MECLIPTIC", 16},
	{"TECLIPTIC", 17},
	{"SUPERGAL", 18},
	{"ITRF", 19},
	{"TOPO", 20},
	{"ICRS", 21},
	{"N_Types", 22},
	{"DEFAULT", 19},
	{"AZELNE", 11},
	{"AZELNEGEO", 13},
}

func (UVWType) MeasureName() string { return "uvw" }
func (UVWType) Names() []TypeName   { return uVWTypeNames }
func (t UVWType) String() string    { return typeString(uVWTypeNames, "UVW", int32(t)) }
