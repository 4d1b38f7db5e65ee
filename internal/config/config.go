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

// Package config reads the settings of casabind tools from the
// environment and an optional HCL file.
//
// A file named by CASABIND_CONFIG looks like:
//
//	measures_dir  = "/data/casacore"
//	log_level     = "debug"
//	checked_alloc = true
//
//	tables {
//	  scratch_dir = "/tmp"
//	  lock        = "auto"
//	}
//
// Environment variables override the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/casacore/casabind/casa/tables"
	"github.com/casacore/casabind/memory"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/sirupsen/logrus"
)

const (
	EnvConfig       = "CASABIND_CONFIG"
	EnvMeasuresDir  = "CASABIND_MEASURES_DIR"
	EnvLogLevel     = "CASABIND_LOG_LEVEL"
	EnvCheckedAlloc = "CASABIND_CHECKED_ALLOC"
)

// Config holds the settings.
type Config struct {
	MeasuresDir  string        `hcl:"measures_dir,optional"`
	LogLevel     string        `hcl:"log_level,optional"`
	CheckedAlloc bool          `hcl:"checked_alloc,optional"`
	Tables       *TablesConfig `hcl:"tables,block"`
}

// TablesConfig holds table defaults.
type TablesConfig struct {
	ScratchDir string `hcl:"scratch_dir,optional"`
	Lock       string `hcl:"lock,optional"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{LogLevel: "info", Tables: &TablesConfig{Lock: "default"}}
}

// Parse decodes an HCL configuration. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %s", filename, diags.Error())
	}
	cfg := Default()
	cfg.Tables = nil
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %s", filename, diags.Error())
	}
	if cfg.Tables == nil {
		cfg.Tables = Default().Tables
	}
	if cfg.Tables.Lock == "" {
		cfg.Tables.Lock = "default"
	}
	return cfg, cfg.validate()
}

// Load reads the file named by CASABIND_CONFIG, if any, and applies the
// environment on top. lookup is usually os.LookupEnv.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path, ok := lookup(EnvConfig); ok && path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if cfg, err = Parse(src, path); err != nil {
			return nil, err
		}
	}
	if v, ok := lookup(EnvMeasuresDir); ok {
		cfg.MeasuresDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvCheckedAlloc); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvCheckedAlloc, err)
		}
		cfg.CheckedAlloc = b
	}
	return cfg, cfg.validate()
}

// FromEnv is Load over the process environment.
func FromEnv() (*Config, error) { return Load(os.LookupEnv) }

func (c *Config) validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if _, err := c.LockOption(); err != nil {
		return err
	}
	return nil
}

// Logger returns a logger at the configured level writing to stderr.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

// Allocator returns the allocator tools should use. With checked_alloc set
// it counts allocations so leaks can be reported.
func (c *Config) Allocator() memory.Allocator {
	if c.CheckedAlloc {
		return memory.NewCheckedAllocator(memory.NewGoAllocator())
	}
	return memory.DefaultAllocator
}

var lockOptions = map[string]tables.LockOption{
	"permanent":      tables.PermanentLocking,
	"permanent_wait": tables.PermanentLockingWait,
	"auto":           tables.AutoLocking,
	"user":           tables.UserLocking,
	"auto_noread":    tables.AutoNoReadLocking,
	"user_noread":    tables.UserNoReadLocking,
	"none":           tables.NoLocking,
	"default":        tables.DefaultLocking,
}

// LockOption maps the tables.lock setting to a table lock option.
func (c *Config) LockOption() (tables.LockOption, error) {
	name := "default"
	if c.Tables != nil && c.Tables.Lock != "" {
		name = strings.ToLower(c.Tables.Lock)
	}
	opt, ok := lockOptions[name]
	if !ok {
		return 0, fmt.Errorf("invalid table lock %q", name)
	}
	return opt, nil
}
