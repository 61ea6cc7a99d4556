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
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"code only", E(code.Internal, "boom"), "internal: boom"},
		{"with reason", E(code.Invalid, "not an array", WithReasonOption(reason.PayloadArgsType)),
			"invalid:payload.args.type: not an array"},
		{"with field", E(code.OutOfRange, "too big",
			WithReasonOption(reason.PayloadIDRange), WithFieldOption("args[2]")),
			"out_of_range:payload.id.range: args[2]: too big"},
		{"nil", nil, "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_CopyOnWrite(t *testing.T) {
	e1 := E(code.Invalid, "bad").WithDetail("expected", "string")
	e2 := e1.WithDetail("actual", "number").WithField("args[0]")

	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatalf("details sizes = %d/%d, want 1/2", len(e1.Details), len(e2.Details))
	}
	if e1.Field != "" {
		t.Fatal("original mutated by WithField")
	}
	if e1.WithDetails(nil) != e1 {
		t.Fatal("WithDetails(nil) must return the receiver")
	}
	e3 := e2.WithDetails(map[string]any{"expected": "array"})
	if e2.Details["expected"] != "string" || e3.Details["expected"] != "array" {
		t.Fatal("merge must copy and let new values win")
	}
}

func TestError_IsMalformedPayload(t *testing.T) {
	decodeErr := E(code.Invalid, "x", WithReasonOption(reason.PayloadFrameField))
	if !errors.Is(decodeErr, ErrMalformedPayload) {
		t.Fatal("payload reason must match ErrMalformedPayload")
	}
	callErr := E(code.NotFound, "x", WithReasonOption(reason.ModuleMethodUnknown))
	if errors.Is(callErr, ErrMalformedPayload) {
		t.Fatal("module reason must not match ErrMalformedPayload")
	}

	var target *Error
	wrapped := errors.Join(errors.New("other"), decodeErr)
	if !errors.As(wrapped, &target) || target.Reason != reason.PayloadFrameField {
		t.Fatal("errors.As must find the structured error")
	}
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(code.Internal, "x", WithCauseOption(root))
	if !errors.Is(e, root) {
		t.Fatal("errors.Is(cause) failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("WithCause(nil) must return the receiver")
	}
}

func TestError_DetailsAndView(t *testing.T) {
	e := E(code.Invalid, "frame field has wrong kind",
		WithReasonOption(reason.PayloadFrameField),
		WithFieldOption("args[1][0].lineNumber"),
		WithDetailsOption(map[string]any{"expected": "number", "actual": "string"}),
	)
	v := e.ErrorView()
	if v.Code != "invalid" || v.Reason != "payload.frame.field" {
		t.Fatalf("view = %+v", v)
	}
	if len(v.Details) != 1 {
		t.Fatalf("details = %+v", v.Details)
	}
	d := v.Details[0]
	if d.Type != "field" || d.Field != "args[1][0].lineNumber" || d.Info["expected"] != "number" {
		t.Fatalf("detail = %+v", d)
	}
	if E(code.Internal, "x").ErrorDetails() != nil {
		t.Fatal("plain error must have no details")
	}
}

func TestError_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := E(code.OutOfRange, "too big",
		WithReasonOption(reason.PayloadIDRange),
		WithFieldOption("args[2]"),
		WithDetailOption("actual", 4294967296.0),
	)
	logger.Warn("decode failed", "err", e)

	out := buf.String()
	for _, want := range []string{"err.code=out_of_range", "err.reason=payload.id.range", "err.field=args[2]", "err.actual="} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}

func TestErrorInfo_Clone(t *testing.T) {
	orig := ErrorInfo{Message: "m", ID: 7, Callstack: []ErrorFrameInfo{{File: "a.js", LineNumber: 1, Column: 2}}}
	cp := orig.Clone()
	cp.Callstack[0].File = "b.js"
	if orig.Callstack[0].File != "a.js" {
		t.Fatal("Clone must not share the callstack")
	}
	if (ErrorInfo{}).Clone().Callstack != nil {
		t.Fatal("Clone of empty callstack must stay nil")
	}
}

func TestErrorFrameInfo_String(t *testing.T) {
	tests := []struct {
		f    ErrorFrameInfo
		want string
	}{
		{ErrorFrameInfo{File: "a.js", MethodName: "f", LineNumber: 10, Column: 2}, "f (a.js:10:2)"},
		{ErrorFrameInfo{File: "a.js", MethodName: "f", LineNumber: 10, Column: UnknownPosition}, "f (a.js:10)"},
		{ErrorFrameInfo{File: "a.js", LineNumber: UnknownPosition, Column: UnknownPosition}, "<anonymous> (a.js)"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorType_String(t *testing.T) {
	if Fatal.String() != "fatal" || Soft.String() != "soft" {
		t.Fatalf("got %q/%q", Fatal, Soft)
	}
	if ErrorType(9).String() != "ErrorType(9)" {
		t.Fatalf("unknown type = %q", ErrorType(9))
	}
}
