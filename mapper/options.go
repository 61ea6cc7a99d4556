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
	"dirpx.dev/redbox/code"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTPDefault sets or replaces the default HTTP status for c.
func WithHTTPDefault(c code.Code, http int) Option {
	return func(b *builder) { b.httpDefaults[c] = http }
}

// WithGRPCDefault sets or replaces the default gRPC status for c.
func WithGRPCDefault(c code.Code, grpc codes.Code) Option {
	return func(b *builder) { b.grpcDefaults[c] = int(grpc) }
}

// WithHTTPOverride registers an exact HTTP override for c. Overrides beat
// both prefix rules and defaults.
func WithHTTPOverride(c code.Code, http int) Option {
	return func(b *builder) { b.httpOverride[c] = http }
}

// WithGRPCOverride registers an exact gRPC override for c.
func WithGRPCOverride(c code.Code, grpc codes.Code) Option {
	return func(b *builder) { b.grpcOverride[c] = int(grpc) }
}

// WithHTTPPrefix adds an HTTP longest-prefix-match rule on the reason for c.
// A more specific prefix wins.
func WithHTTPPrefix(c code.Code, prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes[c] = append(b.httpPrefixes[c], prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a gRPC longest-prefix-match rule on the reason for c.
func WithGRPCPrefix(c code.Code, prefix string, grpc codes.Code) Option {
	return func(b *builder) { b.grpcPrefixes[c] = append(b.grpcPrefixes[c], prefixRule{prefix, int(grpc)}) }
}

// WithFallback replaces the statuses used for codes that have no default.
func WithFallback(http int, grpc codes.Code) Option {
	return func(b *builder) {
		b.fallbackHTTP = http
		b.fallbackGRPC = grpc
	}
}
