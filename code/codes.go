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

package code

// Payload decoding codes.
//
// These classify why an inbound exception payload was rejected. The decoder
// pairs each of them with a reason from package reason that names the exact
// element that failed.
const (
	// Invalid means a payload element has the wrong kind, e.g. the message
	// is a number or a stack frame is not an object.
	// HTTP 400 / InvalidArgument.
	Invalid Code = "invalid"

	// Missing means a required element is absent: the argument list is
	// shorter than expected, or a strict-mode frame lacks a position key.
	// HTTP 400 / InvalidArgument.
	Missing Code = "missing"

	// OutOfRange means a numeric element does not fit its target type, e.g.
	// an exception id above math.MaxUint32, or a callstack longer than the
	// configured limit.
	// HTTP 400 / OutOfRange.
	OutOfRange Code = "out_of_range"
)

// Module call codes.
//
// These classify failures of the call surface itself rather than of the
// payload it carries.
const (
	// NotFound means the requested module or method does not exist.
	// HTTP 404 / NotFound.
	NotFound Code = "not_found"

	// Unsupported means the call shape is known but not accepted here, e.g.
	// a non-POST request on the HTTP bridge.
	// HTTP 405 / Unimplemented.
	Unsupported Code = "unsupported"

	// Unavailable means the presentation handler rejected the delivery
	// because it cannot take it right now.
	// HTTP 503 / Unavailable.
	Unavailable Code = "unavailable"

	// Internal is the fallback for anything not classified above.
	// HTTP 500 / Internal.
	Internal Code = "internal"
)
