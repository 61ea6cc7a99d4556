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

package router

import (
	"log/slog"

	"dirpx.dev/redbox/decoder"
)

// FailurePolicy decides what happens after a payload fails to decode.
type FailurePolicy int

const (
	// FailureReturn logs the decode error and returns it to the caller.
	// The handler is not called.
	FailureReturn FailurePolicy = iota
	// FailureReportSoft also shows a soft error describing the malformed
	// payload, so the problem is visible in developer tooling.
	FailureReportSoft
)

// String returns "return" or "report_soft".
func (p FailurePolicy) String() string {
	switch p {
	case FailureReturn:
		return "return"
	case FailureReportSoft:
		return "report_soft"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy parses the String form of a policy.
func ParseFailurePolicy(s string) (FailurePolicy, bool) {
	switch s {
	case "", "return":
		return FailureReturn, true
	case "report_soft":
		return FailureReportSoft, true
	default:
		return FailureReturn, false
	}
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDecoder replaces the default lenient decoder.
func WithDecoder(d *decoder.Decoder) Option {
	return func(r *Router) {
		if d != nil {
			r.decoder = d
		}
	}
}

// WithFailurePolicy sets the decode failure policy. Defaults to
// FailureReturn.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(r *Router) { r.policy = p }
}
