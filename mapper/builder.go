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
	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is the raw, dot-separated reason prefix. It is normalized and
	// validated when New compiles the per-code tables.
	prefix string
	// val is the status to apply. gRPC values are stored as int and
	// converted when the snapshot is frozen.
	val int
}

type builder struct {
	httpDefaults map[code.Code]int
	grpcDefaults map[code.Code]int

	httpOverride map[code.Code]int
	grpcOverride map[code.Code]int

	httpPrefixes map[code.Code][]prefixRule
	grpcPrefixes map[code.Code][]prefixRule

	// global fallbacks used when a code has no default at all.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[code.Code]int, len(defaultHTTP)),
		grpcDefaults: make(map[code.Code]int, len(defaultGRPC)),

		httpOverride: make(map[code.Code]int),
		grpcOverride: make(map[code.Code]int),
		httpPrefixes: make(map[code.Code][]prefixRule),
		grpcPrefixes: make(map[code.Code][]prefixRule),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}

// seed loads the library defaults. User options applied afterwards win
// because later prefix rules replace earlier ones for the same prefix.
func (b *builder) seed() {
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = int(v)
	}
	for _, d := range defaultPrefixes {
		b.httpPrefixes[d.c] = append(b.httpPrefixes[d.c], prefixRule{string(d.r), d.http})
		b.grpcPrefixes[d.c] = append(b.grpcPrefixes[d.c], prefixRule{string(d.r), int(d.grpc)})
	}
}

// freeze copies src, converting values with conv. Empty maps become nil.
func freeze[V any](src map[code.Code]int, conv func(int) V) map[code.Code]V {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]V, len(src))
	for k, v := range src {
		dst[k] = conv(v)
	}
	return dst
}

func asInt(v int) int         { return v }
func asGRPC(v int) codes.Code { return codes.Code(v) }
