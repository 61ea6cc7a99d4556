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

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
)

// ErrMalformedPayload matches, via errors.Is, every Error produced for a
// payload that does not have the documented exception shape.
var ErrMalformedPayload = errors.New("redbox: malformed exception payload")

// Error is the structured failure returned by the decoder and the module
// call surface.
//
// It carries:
//   - Code: what kind of failure (required);
//   - Reason: which check failed, e.g. "payload.id.range";
//   - Message: human description;
//   - Field: path of the offending payload element, e.g. "args[1][2].column";
//   - Details: extra key/values such as "expected" and "actual";
//   - Cause: wrapped underlying error.
type Error struct {
	Code    code.Code
	Reason  reason.Reason
	Message string
	Field   string
	Details map[string]any
	Cause   error
}

var (
	_ apis.CodedError    = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
	_ apis.ViewProvider  = (*Error)(nil)
	_ slog.LogValuer     = (*Error)(nil)
)

// E builds a new Error and applies opts in order.
//
//	return redbox.E(code.OutOfRange, "exception id exceeds uint32",
//	    redbox.WithReasonOption(reason.PayloadIDRange),
//	    redbox.WithFieldOption("args[2]"),
//	)
func E(c code.Code, msg string, opts ...Option) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error formats as "<code>[:<reason>]: [<field>: ]<message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	head := string(e.Code)
	if e.Reason != reason.Empty {
		head += ":" + string(e.Reason)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", head, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", head, e.Message)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches ErrMalformedPayload for decode failures.
func (e *Error) Is(target error) bool {
	return target == ErrMalformedPayload && e.IsMalformedPayload()
}

// IsMalformedPayload reports whether e was raised for a payload shape
// violation (a "payload.*" reason).
func (e *Error) IsMalformedPayload() bool {
	return e != nil && e.Reason.HasPrefix("payload")
}

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string { return string(e.Reason) }

// ErrorDetails implements apis.DetailedError. An error with a Field yields
// a single "field" detail; Details values are stringified into Info.
func (e *Error) ErrorDetails() []apis.Detail {
	if e == nil || (e.Field == "" && len(e.Details) == 0) {
		return nil
	}
	d := apis.Detail{Field: e.Field, Reason: string(e.Reason)}
	if e.Field != "" {
		d.Type = "field"
	}
	if len(e.Details) > 0 {
		d.Info = make(map[string]string, len(e.Details))
		for k, v := range e.Details {
			d.Info[k] = fmt.Sprint(v)
		}
	}
	return []apis.Detail{d}
}

// ErrorView implements apis.ViewProvider.
func (e *Error) ErrorView() apis.ErrorView {
	return apis.ErrorView{
		Code:    string(e.Code),
		Reason:  string(e.Reason),
		Message: e.Message,
		Details: e.ErrorDetails(),
	}
}

// LogValue implements slog.LogValuer so loggers get the structured fields
// instead of the flattened message.
func (e *Error) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}
	attrs := []slog.Attr{slog.String("code", string(e.Code))}
	if e.Reason != reason.Empty {
		attrs = append(attrs, slog.String("reason", string(e.Reason)))
	}
	attrs = append(attrs, slog.String("message", e.Message))
	if e.Field != "" {
		attrs = append(attrs, slog.String("field", e.Field))
	}
	for _, k := range slices.Sorted(maps.Keys(e.Details)) {
		attrs = append(attrs, slog.Any(k, e.Details[k]))
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	return slog.GroupValue(attrs...)
}

// WithReason returns a copy of e with Reason set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithField returns a copy of e with Field set.
func (e *Error) WithField(field string) *Error {
	cp := *e
	cp.Field = field
	return &cp
}

// WithDetail returns a copy of e with one more detail. The details map is
// always copied.
func (e *Error) WithDetail(k string, v any) *Error {
	return e.WithDetails(map[string]any{k: v})
}

// WithDetails returns a copy of e with kv merged into Details; kv wins on
// conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(e.Details)+len(kv))
	maps.Copy(m, e.Details)
	maps.Copy(m, kv)
	cp.Details = m
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
