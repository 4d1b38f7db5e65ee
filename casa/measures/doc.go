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

// Package measures holds the physical quantities, measure values and
// reference-framed measures of the astronomy library: baselines,
// directions, Doppler shifts, epochs, frequencies, positions, radial
// velocities and uvw coordinates.
//
// Only the arithmetic needed to move values between units and reference
// types that are related algebraically is implemented. Conversions that
// need ephemerides or earth orientation data report
// casa.ErrNotImplemented.
package measures
