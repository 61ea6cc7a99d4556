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

package grpcx

import (
	"context"
	"fmt"

	"dirpx.dev/redbox/adapter"
	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/variant"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Client calls a remote ExceptionsManager service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// ReportFatalException sends args, which must be an array.
func (c *Client) ReportFatalException(ctx context.Context, args variant.Value, opts ...grpc.CallOption) error {
	return c.report(ctx, FullMethodReportFatalException, args, opts)
}

// ReportSoftException sends args, which must be an array.
func (c *Client) ReportSoftException(ctx context.Context, args variant.Value, opts ...grpc.CallOption) error {
	return c.report(ctx, FullMethodReportSoftException, args, opts)
}

// UpdateExceptionMessage sends args, which must be an array.
func (c *Client) UpdateExceptionMessage(ctx context.Context, args variant.Value, opts ...grpc.CallOption) error {
	return c.report(ctx, FullMethodUpdateExceptionMessage, args, opts)
}

// DismissRedbox asks the remote side to hide its redbox.
func (c *Client) DismissRedbox(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, FullMethodDismissRedbox, &emptypb.Empty{}, &emptypb.Empty{}, opts...)
}

func (c *Client) report(ctx context.Context, method string, args variant.Value, opts []grpc.CallOption) error {
	in, err := args.ToProtoList()
	if err != nil {
		return fmt.Errorf("grpcx: encode %s arguments: %w", method, err)
	}
	return c.cc.Invoke(ctx, method, in, &emptypb.Empty{}, opts...)
}

// ExtractView rebuilds the apis.ErrorView carried by a gRPC error. It
// reports false when err has no gRPC status.
func ExtractView(err error) (apis.ErrorView, bool) {
	if err == nil {
		return apis.ErrorView{}, false
	}
	st, ok := status.FromError(err)
	if !ok {
		return apis.ErrorView{}, false
	}
	return adapter.FromGRPCStatus(st), true
}

// ExtractViolations returns the field violations attached to a gRPC error,
// or nil when there are none.
func ExtractViolations(err error) []*errdetails.BadRequest_FieldViolation {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return nil
	}
	var out []*errdetails.BadRequest_FieldViolation
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			out = append(out, br.GetFieldViolations()...)
		}
	}
	return out
}

// ExtractErrorInfo returns the redbox ErrorInfo detail of a gRPC error.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == adapter.Domain {
			return info, true
		}
	}
	return nil, false
}
