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

// Package tables implements casacore style tables: typed column
// descriptions, tables held in memory or persisted to a directory, typed
// scalar and array column accessors, and keyword records.
//
// A plain table lives in a directory holding a zstd compressed JSON header
// and one compressed JSON file per column. The table is read completely
// when opened and written back by Flush and by the final Close of a
// writable table.
package tables
