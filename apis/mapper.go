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

import (
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
	"google.golang.org/grpc/codes"
)

// Mapper resolves a (code, reason) pair into transport statuses. Every
// implementation must be immutable and safe for concurrent use.
type Mapper interface {
	// HTTPStatus returns the HTTP status for the pair, falling back to the
	// code-level rule when no reason rule matches.
	HTTPStatus(c code.Code, r reason.Reason) int

	// GRPCStatus is the gRPC counterpart of HTTPStatus.
	GRPCStatus(c code.Code, r reason.Reason) codes.Code

	// Status resolves both with the same matching logic.
	Status(c code.Code, r reason.Reason) Status

	// Explain describes which rule matched. For diagnostics only.
	Explain(c code.Code, r reason.Reason) string
}

// Status is a resolved pair of transport statuses for one error.
type Status struct {
	HTTP int        // net/http status code
	GRPC codes.Code // gRPC status code
}
