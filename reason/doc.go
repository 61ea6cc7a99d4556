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

// Package reason refines a failure code with the exact place it came from.
//
// Where a code says "invalid", a reason says which element of the exception
// payload was invalid, e.g.:
//
//   - "payload.id.range"
//   - "payload.frame.field"
//   - "module.method.unknown"
//
// Reasons are dot-separated, one to four segments, each segment a lowercase
// identifier. The empty reason is valid and means "no refinement".
//
// Transport mappers match reasons by segment prefix, so related reasons
// should share leading segments ("payload.frame.*").
package reason
