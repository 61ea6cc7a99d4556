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

package apis

// CodedError is an error with a canonical failure code such as "invalid" or
// "not_found". Bridges treat an empty or unknown code as internal.
type CodedError interface {
	error

	// ErrorCode returns the canonical code. Never empty.
	ErrorCode() string
}

// ReasonedError is an error that names the exact element or step that
// failed, e.g. "payload.id.range". The reason may be empty.
type ReasonedError interface {
	error

	ErrorReason() string
}

// DetailedError exposes structured details, typically the payload field
// that failed and what was expected there.
//
// The returned slice must not be modified by the caller.
type DetailedError interface {
	error

	ErrorDetails() []Detail
}
