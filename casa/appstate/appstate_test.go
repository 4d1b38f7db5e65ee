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

package appstate_test

import (
	"path/filepath"
	"testing"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/appstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	var src appstate.Source
	_, err := src.MeasuresDirectory()
	assert.ErrorIs(t, err, appstate.ErrUninitialized)
	assert.ErrorIs(t, src.Initialize(nil), casa.ErrInvalid)

	dir := t.TempDir()
	require.NoError(t, src.Initialize(appstate.NewHostState(dir)))
	got, err := src.MeasuresDirectory()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	require.NoError(t, src.Initialize(appstate.NewHostState("/elsewhere")))
	got, err = src.MeasuresDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", got)
}

func TestHostStateCheck(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, appstate.NewHostState(dir).Check())
	assert.ErrorIs(t, appstate.NewHostState(filepath.Join(dir, "missing")).Check(), casa.ErrIO)
}
