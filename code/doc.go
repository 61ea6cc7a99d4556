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

// Package code defines the top-level classification of redbox failures.
//
// A code answers "what kind of failure is this?" for a malformed exception
// payload or a rejected module call, e.g. "invalid", "missing" or
// "out_of_range". Codes are lowercase, underscore-separated identifiers of
// 3 to 64 characters, so they survive JSON, protobuf metadata and log keys
// without escaping.
//
// The empty code is not a valid classification: every redbox.Error carries
// one of the constants in this package or a value produced by Parse.
package code
