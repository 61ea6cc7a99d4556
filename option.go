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

package redbox

import "dirpx.dev/redbox/reason"

// Option transforms an Error under construction. Used with E.
type Option func(*Error) *Error

// WithReasonOption sets the reason.
func WithReasonOption(r reason.Reason) Option {
	return func(e *Error) *Error { return e.WithReason(r) }
}

// WithFieldOption sets the path of the failing payload element.
func WithFieldOption(field string) Option {
	return func(e *Error) *Error { return e.WithField(field) }
}

// WithDetailOption adds one detail.
func WithDetailOption(k string, v any) Option {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithDetailsOption merges several details.
func WithDetailsOption(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}

// WithCauseOption wraps err.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}
