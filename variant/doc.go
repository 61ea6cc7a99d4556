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

// Package variant models the untyped values a scripted runtime passes to a
// native module: null, bool, number, string, array and object.
//
// A Value is a closed tagged union. Its kind is known only at runtime, so
// every accessor checks the kind and returns a *KindError instead of
// guessing. Values are immutable: accessors that return containers return
// copies.
//
// Values usually enter through ParseJSON (HTTP), FromProto (gRPC,
// google.protobuf.Value) or FromAny (in-process Go callers).
package variant
