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

package mapper

import (
	"net/http"

	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
	"google.golang.org/grpc/codes"
)

// defaultHTTP holds the built-in HTTP status for each redbox code.
var defaultHTTP = map[code.Code]int{
	// Payload decoding. The caller sent something the decoder cannot read.
	code.Invalid:    http.StatusBadRequest,
	code.Missing:    http.StatusBadRequest,
	code.OutOfRange: http.StatusBadRequest,

	// Call surface.
	code.NotFound:    http.StatusNotFound,
	code.Unsupported: http.StatusMethodNotAllowed,

	// Server side.
	code.Unavailable: http.StatusServiceUnavailable, // no handler, or the handler refused the report
	code.Internal:    http.StatusInternalServerError,
}

// defaultGRPC holds the built-in gRPC status for each redbox code.
var defaultGRPC = map[code.Code]codes.Code{
	code.Invalid:    codes.InvalidArgument,
	code.Missing:    codes.InvalidArgument,
	code.OutOfRange: codes.OutOfRange,

	code.NotFound:    codes.NotFound,
	code.Unsupported: codes.Unimplemented,

	code.Unavailable: codes.Unavailable,
	code.Internal:    codes.Internal,
}

type defaultRule struct {
	c    code.Code
	r    reason.Reason
	http int
	grpc codes.Code
}

// defaultPrefixes refine the code defaults for transport failures that share
// a code with payload failures.
var defaultPrefixes = []defaultRule{
	{code.OutOfRange, reason.TransportBodyTooLarge, http.StatusRequestEntityTooLarge, codes.ResourceExhausted},
	{code.OutOfRange, reason.PayloadStackTooLong, http.StatusRequestEntityTooLarge, codes.ResourceExhausted},
	{code.Invalid, reason.TransportBodySyntax, http.StatusBadRequest, codes.InvalidArgument},
}
