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
	"maps"
	"slices"

	"dirpx.dev/redbox/apis"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is the errdetails.ErrorInfo domain of every redbox status.
const Domain = "redbox.dirpx.dev"

// Metadata keys set on errdetails.ErrorInfo.
const (
	MetaCode   = "code"
	MetaReason = "reason"
)

// ToGRPCStatus converts err into a gRPC status whose code comes from m.
//
// The status carries an errdetails.ErrorInfo with the redbox code and reason
// in its metadata, plus an errdetails.BadRequest listing one violation per
// detail that names a payload field. A nil err yields an OK status.
func ToGRPCStatus(err error, m apis.Mapper) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	v := ToView(err)
	st := status.New(StatusOf(err, m).GRPC, v.Message)

	info := &errdetails.ErrorInfo{
		Reason:   v.Reason,
		Domain:   Domain,
		Metadata: map[string]string{MetaCode: v.Code},
	}
	if info.Reason == "" {
		info.Reason = v.Code
	} else {
		info.Metadata[MetaReason] = v.Reason
	}

	var violations []*errdetails.BadRequest_FieldViolation
	for _, d := range v.Details {
		for _, k := range slices.Sorted(maps.Keys(d.Info)) {
			if _, taken := info.Metadata[k]; !taken {
				info.Metadata[k] = d.Info[k]
			}
		}
		if d.Field != "" {
			violations = append(violations, &errdetails.BadRequest_FieldViolation{
				Field:       d.Field,
				Description: v.Message,
			})
		}
	}

	var withDetails *status.Status
	var derr error
	if len(violations) > 0 {
		withDetails, derr = st.WithDetails(info, &errdetails.BadRequest{FieldViolations: violations})
	} else {
		withDetails, derr = st.WithDetails(info)
	}
	if derr != nil {
		return st
	}
	return withDetails
}

// FromGRPCStatus rebuilds an ErrorView from a status produced by
// ToGRPCStatus. Statuses without redbox details yield a view whose code is
// the lower-cased gRPC code name.
func FromGRPCStatus(st *status.Status) apis.ErrorView {
	v := apis.ErrorView{Message: st.Message()}
	var violations []apis.Detail
	for _, d := range st.Details() {
		switch d := d.(type) {
		case *errdetails.ErrorInfo:
			if d.GetDomain() != Domain {
				continue
			}
			v.Code = d.GetMetadata()[MetaCode]
			v.Reason = d.GetMetadata()[MetaReason]
		case *errdetails.BadRequest:
			for _, fv := range d.GetFieldViolations() {
				violations = append(violations, apis.Detail{
					Type:  "field",
					Field: fv.GetField(),
				})
			}
		}
	}
	if v.Code == "" {
		v.Code = grpcCodeName(st.Code())
	}
	for i := range violations {
		violations[i].Reason = v.Reason
	}
	v.Details = violations
	return v
}

// grpcCodeName renders codes.InvalidArgument as "invalid_argument".
func grpcCodeName(c codes.Code) string {
	name := c.String()
	out := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 && name[i-1] >= 'a' && name[i-1] <= 'z' {
				out = append(out, '_')
			}
			ch += 'a' - 'A'
		}
		out = append(out, ch)
	}
	return string(out)
}
