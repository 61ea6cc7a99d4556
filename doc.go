/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package redbox is the data model of the exception bridge between a
// scripted runtime and a developer-facing error presentation ("redbox").
//
// A runtime reports an exception as an untyped argument list. Package
// decoder turns that list into an ErrorInfo; package router hands the
// result to a Handler. This package defines the values that travel between
// them and the structured Error that is returned whenever a payload does
// not have the documented shape:
//
//	["message", [{"file": "...", "methodName": "...", "lineNumber": 1, "column": 2}, ...], id]
//
// Error follows the dirpx error model: a mandatory code (package code), an
// optional reason (package reason), a human message, the path of the failing
// field, and free-form details. Error values are immutable; every WithX
// helper returns a copy.
package redbox
