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

package adapter

import (
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/redbox"
	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/mapper"
	"dirpx.dev/redbox/reason"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// codedOnly implements apis.CodedError without rendering its own view.
type codedOnly struct{ c, r string }

func (e codedOnly) Error() string       { return "coded: " + e.c }
func (e codedOnly) ErrorCode() string   { return e.c }
func (e codedOnly) ErrorReason() string { return e.r }

func idRangeError() *redbox.Error {
	return redbox.E(code.OutOfRange, "exception id exceeds uint32",
		redbox.WithReasonOption(reason.PayloadIDRange),
		redbox.WithFieldOption("args[2]"),
		redbox.WithDetailOption("actual", 4294967296),
	)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		wantC code.Code
		wantR reason.Reason
	}{
		{"redbox error", idRangeError(), code.OutOfRange, reason.PayloadIDRange},
		{"wrapped", fmt.Errorf("ctx: %w", idRangeError()), code.OutOfRange, reason.PayloadIDRange},
		{"plain", errors.New("boom"), code.Internal, reason.Empty},
		{"coded without reason", codedOnly{c: "not_found"}, code.NotFound, reason.Empty},
		{"bad code", codedOnly{c: "Not Found!"}, code.Internal, reason.Empty},
		{"bad reason", codedOnly{c: "invalid", r: "a..b"}, code.Invalid, reason.Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := CodeOf(tt.err)
			if c != tt.wantC || r != tt.wantR {
				t.Fatalf("CodeOf() = (%q, %q), want (%q, %q)", c, r, tt.wantC, tt.wantR)
			}
		})
	}
}

func TestToView(t *testing.T) {
	if diff := cmp.Diff(apis.ErrorView{}, ToView(nil)); diff != "" {
		t.Fatalf("nil view (-want +got):\n%s", diff)
	}

	got := ToView(fmt.Errorf("wrapped: %w", idRangeError()))
	want := apis.ErrorView{
		Code:    "out_of_range",
		Reason:  "payload.id.range",
		Message: "exception id exceeds uint32",
		Details: []apis.Detail{{
			Type:   "field",
			Field:  "args[2]",
			Reason: "payload.id.range",
			Info:   map[string]string{"actual": "4294967296"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToView mismatch (-want +got):\n%s", diff)
	}

	plain := ToView(errors.New("db password is hunter2"))
	if plain.Code != "internal" || plain.Message != InternalMessage {
		t.Fatalf("plain errors must be hidden, got %+v", plain)
	}

	coded := ToView(codedOnly{c: "unavailable"})
	if coded.Code != "unavailable" || coded.Message != "coded: unavailable" {
		t.Fatalf("coded view = %+v", coded)
	}
}

func TestToGRPCStatus(t *testing.T) {
	st := ToGRPCStatus(idRangeError(), mapper.Default())
	if st.Code() != codes.OutOfRange {
		t.Fatalf("code = %v, want OutOfRange", st.Code())
	}
	if st.Message() != "exception id exceeds uint32" {
		t.Fatalf("message = %q", st.Message())
	}

	var info *errdetails.ErrorInfo
	var br *errdetails.BadRequest
	for _, d := range st.Details() {
		switch d := d.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.BadRequest:
			br = d
		}
	}
	if info == nil || br == nil {
		t.Fatalf("details = %v, want ErrorInfo and BadRequest", st.Details())
	}
	if info.GetDomain() != Domain || info.GetReason() != "payload.id.range" {
		t.Fatalf("ErrorInfo = %v", info)
	}
	wantMeta := map[string]string{"code": "out_of_range", "reason": "payload.id.range", "actual": "4294967296"}
	if diff := cmp.Diff(wantMeta, info.GetMetadata()); diff != "" {
		t.Fatalf("metadata (-want +got):\n%s", diff)
	}
	if len(br.GetFieldViolations()) != 1 || br.GetFieldViolations()[0].GetField() != "args[2]" {
		t.Fatalf("BadRequest = %v", br)
	}
}

func TestToGRPCStatus_NoField(t *testing.T) {
	err := redbox.E(code.NotFound, "no such method", redbox.WithReasonOption(reason.ModuleMethodUnknown))
	st := ToGRPCStatus(err, mapper.Default())
	if st.Code() != codes.NotFound {
		t.Fatalf("code = %v", st.Code())
	}
	for _, d := range st.Details() {
		if _, ok := d.(*errdetails.BadRequest); ok {
			t.Fatal("no BadRequest expected without a field")
		}
	}
	if ok := ToGRPCStatus(nil, mapper.Default()); ok.Code() != codes.OK {
		t.Fatalf("nil error -> %v", ok.Code())
	}
}

func TestFromGRPCStatus_RoundTrip(t *testing.T) {
	got := FromGRPCStatus(ToGRPCStatus(idRangeError(), mapper.Default()))
	want := apis.ErrorView{
		Code:    "out_of_range",
		Reason:  "payload.id.range",
		Message: "exception id exceeds uint32",
		Details: []apis.Detail{{Type: "field", Field: "args[2]", Reason: "payload.id.range"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestFromGRPCStatus_Foreign(t *testing.T) {
	got := FromGRPCStatus(status.New(codes.DeadlineExceeded, "slow"))
	if got.Code != "deadline_exceeded" || got.Message != "slow" || got.Details != nil {
		t.Fatalf("foreign status view = %+v", got)
	}
	if name := grpcCodeName(codes.OK); name != "ok" {
		t.Fatalf("grpcCodeName(OK) = %q", name)
	}
}
