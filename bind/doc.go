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

// Package bind exposes typed Go values to a dynamically typed host through a
// registry of exported symbols.
//
// A Module is the builder handed to a module entry point. The entry point
// declares, in dependency order, every exported type (AddType), every
// parametric type and its per-element bindings (AddParametric, Instantiate,
// Apply), every enumeration and its constants (AddEnum) and every free
// forwarding function (Func). Load runs the entry point once and returns a
// frozen Registry, or an error and no registry at all.
//
// Symbols move through three states. A symbol is Declared when it is added
// and becomes Linked when the script moves on to the next declaration, when
// it is named as a supertype, or when Load finishes. Members can only be
// attached to a Declared symbol, and a signature may only mention a symbol
// that already exists. Mutually referencing types are therefore expressed by
// attaching the cross-referencing operation as a free function once both
// ends are Linked.
//
// Typed Go functions become host callables through the generic adapters
// (Ctor0..Ctor6, Fn1..Fn5, FnE1..FnE5, Proc1..Proc4, ProcE1..ProcE5). The
// host-visible signature is derived from the Go types when the adapter is
// attached, so a parameter whose Go type has no binding yet is reported as a
// forward reference at load time.
package bind
