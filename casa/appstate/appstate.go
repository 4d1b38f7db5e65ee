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

// Package appstate carries host application settings, such as the location
// of the measures data, into the library.
package appstate

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/casacore/casabind/casa"
)

// ErrUninitialized is returned when no AppState has been installed.
var ErrUninitialized = errors.New("appstate: not initialized")

// AppState is the host state the library consults.
type AppState interface {
	MeasuresDirectory() string
	Initialized() bool
}

// HostState is the AppState of a host that keeps measures data in one
// directory.
type HostState struct {
	dir string
}

func NewHostState(dir string) *HostState { return &HostState{dir: dir} }

func (h *HostState) MeasuresDirectory() string { return h.dir }
func (h *HostState) Initialized() bool         { return true }

// Check verifies that the measures directory exists.
func (h *HostState) Check() error {
	st, err := os.Stat(h.dir)
	if err != nil {
		return fmt.Errorf("%w: measures directory: %v", casa.ErrIO, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: measures directory %s is not a directory", casa.ErrInvalid, h.dir)
	}
	return nil
}

// Source holds the installed AppState. Installing a new state replaces the
// previous one.
type Source struct {
	mu    sync.RWMutex
	state AppState
}

// Initialize installs s.
func (src *Source) Initialize(s AppState) error {
	if s == nil {
		return fmt.Errorf("%w: nil app state", casa.ErrInvalid)
	}
	src.mu.Lock()
	defer src.mu.Unlock()
	src.state = s
	return nil
}

// State returns the installed state, or nil.
func (src *Source) State() AppState {
	src.mu.RLock()
	defer src.mu.RUnlock()
	return src.state
}

// MeasuresDirectory returns the measures directory of the installed state.
func (src *Source) MeasuresDirectory() (string, error) {
	s := src.State()
	if s == nil || !s.Initialized() {
		return "", ErrUninitialized
	}
	return s.MeasuresDirectory(), nil
}
