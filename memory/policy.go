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

package memory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPolicy is returned when a buffer crosses the boundary without
	// one of the three ownership policies.
	ErrInvalidPolicy = errors.New("memory: invalid ownership policy")
	// ErrReleased is returned when reading through a view or buffer that has
	// been released.
	ErrReleased = errors.New("memory: use after release")
)

// Policy decides which side of the boundary is responsible for a buffer.
type Policy int8

const (
	// Copy makes the native side copy the host data. Later host writes are
	// not observed.
	Copy Policy = iota + 1
	// TakeOwnership transfers the host buffer to the native side, which
	// frees it on its final release. The host must not touch it afterwards.
	TakeOwnership
	// Share references the host buffer without owning it. Host writes are
	// observed and the native side never frees it.
	Share
)

func (p Policy) String() string {
	switch p {
	case Copy:
		return "COPY"
	case TakeOwnership:
		return "TAKE_OVER"
	case Share:
		return "SHARE"
	}
	return fmt.Sprintf("Policy(%d)", int8(p))
}

// Valid reports whether p is one of Copy, TakeOwnership or Share.
func (p Policy) Valid() bool { return p >= Copy && p <= Share }

// ParsePolicy accepts the exported constant names (COPY, TAKE_OVER, SHARE),
// case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToUpper(s) {
	case "COPY":
		return Copy, nil
	case "TAKE_OVER", "TAKEOWNERSHIP", "TAKE_OWNERSHIP":
		return TakeOwnership, nil
	case "SHARE":
		return Share, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}
