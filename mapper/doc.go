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

// Package mapper turns a redbox failure, expressed as a code
// (dirpx.dev/redbox/code) plus an optional reason (dirpx.dev/redbox/reason),
// into HTTP and gRPC statuses for the transport bridges.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the Code;
//  2. per-Code longest-prefix-match (LPM) on the Reason;
//  3. per-Code default (library or user-adjusted);
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware. The rule "payload.frame" applies to
// "payload.frame.field" but never to "payload.frames". When several rules
// apply, the one with the most segments wins:
//
//	WithHTTPPrefix(code.OutOfRange, "transport", http.StatusBadRequest)
//	WithHTTPPrefix(code.OutOfRange, "transport.body.too_large", http.StatusRequestEntityTooLarge)
//
// # Library defaults
//
// The package ships with defaults for every redbox code (invalid -> 400 /
// InvalidArgument, not_found -> 404 / NotFound, unavailable -> 503 /
// Unavailable, ...) and a few reason rules for transport failures such as
// an oversized request body (413 / ResourceExhausted).
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithHTTPPrefix(code.Invalid, "payload.frame", 422),
//	)
//	if err != nil {
//	    // invalid prefix
//	}
//	st := m.Status(code.Invalid, reason.PayloadFrameField)
//	// st.HTTP == 422, st.GRPC == codes.InvalidArgument
//
// Mapper.Explain returns a human-readable trace of the tier that matched.
// It is meant for logs and tests, not for machine parsing.
//
// All inputs are copied by New. A Mapper is immutable and safe to share.
package mapper
