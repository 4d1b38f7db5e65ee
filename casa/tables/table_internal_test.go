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
package tables

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRemovesDirectoryOnCreateFailure(t *testing.T) {
	failed := errors.New("disk full")
	orig := createTable
	createTable = func(string, *snapshot) error { return failed }
	defer func() { createTable = orig }()

	for _, opt := range []TableOption{New, NewNoReplace, Scratch} {
		t.Run(opt.String(), func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "obs.tab")
			_, err := Open(nil, name, opt)
			assert.ErrorIs(t, err, failed)
			_, err = os.Stat(name)
			assert.True(t, os.IsNotExist(err))
		})
	}

	createTable = orig
	name := filepath.Join(t.TempDir(), "obs.tab")
	tab, err := Open(nil, name, New)
	require.NoError(t, err)
	assert.True(t, tableExists(name))
	require.NoError(t, tab.Close())
}
