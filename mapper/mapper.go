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
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides, prefix rules).
//  3. Normalize and validate all reason prefixes (via reason.Parse).
//  4. Freeze everything into fresh maps owned by the mapper.
//
// Errors returned from this function indicate invalid prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	b.seed()
	for _, opt := range opts {
		opt(b)
	}

	httpTables := make(map[code.Code]prefixTable[int], len(b.httpPrefixes))
	for c, rules := range b.httpPrefixes {
		if len(rules) == 0 {
			continue
		}
		t, err := compilePrefixes(rules, asInt)
		if err != nil {
			return nil, fmt.Errorf("mapper: invalid HTTP reason-prefix for code %q: %w", c, err)
		}
		httpTables[c] = t
	}

	grpcTables := make(map[code.Code]prefixTable[codes.Code], len(b.grpcPrefixes))
	for c, rules := range b.grpcPrefixes {
		if len(rules) == 0 {
			continue
		}
		t, err := compilePrefixes(rules, asGRPC)
		if err != nil {
			return nil, fmt.Errorf("mapper: invalid gRPC reason-prefix for code %q: %w", c, err)
		}
		grpcTables[c] = t
	}

	return &mapper{
		httpDefault:  freeze(b.httpDefaults, asInt),
		grpcDefault:  freeze(b.grpcDefaults, asGRPC),
		httpOverride: freeze(b.httpOverride, asInt),
		grpcOverride: freeze(b.grpcOverride, asGRPC),
		httpPrefix:   httpTables,
		grpcPrefix:   grpcTables,
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

var (
	defaultOnce   sync.Once
	defaultMapper apis.Mapper
)

// Default returns a shared mapper built with library defaults only.
func Default() apis.Mapper {
	defaultOnce.Do(func() {
		m, err := New()
		if err != nil {
			panic(fmt.Sprintf("mapper: library defaults are invalid: %v", err))
		}
		defaultMapper = m
	})
	return defaultMapper
}

// mapper combines per-code overrides, per-code reason prefix tables and
// per-code defaults. It is read-only after New.
type mapper struct {
	httpDefault map[code.Code]int
	grpcDefault map[code.Code]codes.Code

	// Overrides beat every other tier for their code.
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]codes.Code

	httpPrefix map[code.Code]prefixTable[int]
	grpcPrefix map[code.Code]prefixTable[codes.Code]

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given code and reason.
//
// Resolution order (highest to lowest):
//  1. exact per-code override;
//  2. per-code longest-prefix-match rule on the reason;
//  3. per-code default;
//  4. fallback (500 unless replaced with WithFallback).
func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	v, _, _ := m.resolveHTTP(c, r)
	return v
}

// GRPCStatus resolves a gRPC status with the same precedence as HTTPStatus.
func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	v, _, _ := m.resolveGRPC(c, r)
	return v
}

// Status resolves both HTTP and gRPC using the same inputs.
func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(c, r),
		GRPC: m.GRPCStatus(c, r),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular (code, reason) pair.
//
// Example output:
//
//	code="out_of_range" reason="transport.body.too_large"
//	http: source=prefix pattern="transport.body.too_large" -> 413
//	grpc: source=prefix pattern="transport.body.too_large" -> RESOURCEEXHAUSTED(8)
//
// source is one of override, prefix, default or fallback.
func (m *mapper) Explain(c code.Code, r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q reason=%q\n", c, r)

	hv, hsrc, hpat := m.resolveHTTP(c, r)
	_, _ = fmt.Fprintf(&b, "http: source=%s%s -> %d\n", hsrc, patternSuffix(hpat), hv)

	gv, gsrc, gpat := m.resolveGRPC(c, r)
	_, _ = fmt.Fprintf(&b, "grpc: source=%s%s -> %s(%d)", gsrc, patternSuffix(gpat), grpcName(gv), int(gv))

	return b.String()
}

func (m *mapper) resolveHTTP(c code.Code, r reason.Reason) (v int, source string, pattern reason.Reason) {
	if v, ok := m.httpOverride[c]; ok {
		return v, "override", reason.Empty
	}
	if t, ok := m.httpPrefix[c]; ok {
		if v, p, ok := t.match(r); ok {
			return v, "prefix", p
		}
	}
	if v, ok := m.httpDefault[c]; ok {
		return v, "default", reason.Empty
	}
	return m.fallbackHTTP, "fallback", reason.Empty
}

func (m *mapper) resolveGRPC(c code.Code, r reason.Reason) (v codes.Code, source string, pattern reason.Reason) {
	if v, ok := m.grpcOverride[c]; ok {
		return v, "override", reason.Empty
	}
	if t, ok := m.grpcPrefix[c]; ok {
		if v, p, ok := t.match(r); ok {
			return v, "prefix", p
		}
	}
	if v, ok := m.grpcDefault[c]; ok {
		return v, "default", reason.Empty
	}
	return m.fallbackGRPC, "fallback", reason.Empty
}

func patternSuffix(p reason.Reason) string {
	if p == reason.Empty {
		return ""
	}
	return fmt.Sprintf(" pattern=%q", string(p))
}

// grpcName renders codes.ResourceExhausted as "RESOURCEEXHAUSTED".
func grpcName(c codes.Code) string {
	return strings.ToUpper(c.String())
}
