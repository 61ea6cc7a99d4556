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

	"dirpx.dev/redbox/router"
	"dirpx.dev/redbox/variant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "redbox.v1.ExceptionsManager"

// Full method names, as seen by interceptors.
const (
	FullMethodReportFatalException   = "/" + ServiceName + "/ReportFatalException"
	FullMethodReportSoftException    = "/" + ServiceName + "/ReportSoftException"
	FullMethodUpdateExceptionMessage = "/" + ServiceName + "/UpdateExceptionMessage"
	FullMethodDismissRedbox          = "/" + ServiceName + "/DismissRedbox"
)

// ExceptionsManagerServer is the server API of the service.
type ExceptionsManagerServer interface {
	ReportFatalException(context.Context, *structpb.ListValue) (*emptypb.Empty, error)
	ReportSoftException(context.Context, *structpb.ListValue) (*emptypb.Empty, error)
	UpdateExceptionMessage(context.Context, *structpb.ListValue) (*emptypb.Empty, error)
	DismissRedbox(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// ServiceDesc describes the service for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ExceptionsManagerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ReportFatalException",
			Handler: unaryHandler(FullMethodReportFatalException, func(s ExceptionsManagerServer) func(context.Context, *structpb.ListValue) (*emptypb.Empty, error) {
				return s.ReportFatalException
			}),
		},
		{
			MethodName: "ReportSoftException",
			Handler: unaryHandler(FullMethodReportSoftException, func(s ExceptionsManagerServer) func(context.Context, *structpb.ListValue) (*emptypb.Empty, error) {
				return s.ReportSoftException
			}),
		},
		{
			MethodName: "UpdateExceptionMessage",
			Handler: unaryHandler(FullMethodUpdateExceptionMessage, func(s ExceptionsManagerServer) func(context.Context, *structpb.ListValue) (*emptypb.Empty, error) {
				return s.UpdateExceptionMessage
			}),
		},
		{
			MethodName: "DismissRedbox",
			Handler: unaryHandler(FullMethodDismissRedbox, func(s ExceptionsManagerServer) func(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
				return s.DismissRedbox
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "redbox/v1/exceptions_manager.proto",
}

// unaryHandler builds a grpc.MethodDesc handler, the same shape protoc-gen-go-grpc
// emits for each unary method.
func unaryHandler[Req any, PReq interface {
	*Req
}](fullMethod string, pick func(ExceptionsManagerServer) func(context.Context, PReq) (*emptypb.Empty, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		call := pick(srv.(ExceptionsManagerServer))
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Register registers r on s as ExceptionsManagerServer.
func Register(s grpc.ServiceRegistrar, r *router.Router) {
	s.RegisterService(&ServiceDesc, NewServer(r))
}

// NewServer adapts r to ExceptionsManagerServer.
func NewServer(r *router.Router) ExceptionsManagerServer {
	return &server{router: r}
}

type server struct {
	router *router.Router
}

func (s *server) ReportFatalException(ctx context.Context, in *structpb.ListValue) (*emptypb.Empty, error) {
	return s.invoke(ctx, func() error { return s.router.ReportFatalException(variant.FromProtoList(in)) })
}

func (s *server) ReportSoftException(ctx context.Context, in *structpb.ListValue) (*emptypb.Empty, error) {
	return s.invoke(ctx, func() error { return s.router.ReportSoftException(variant.FromProtoList(in)) })
}

func (s *server) UpdateExceptionMessage(ctx context.Context, in *structpb.ListValue) (*emptypb.Empty, error) {
	return s.invoke(ctx, func() error { return s.router.UpdateExceptionMessage(variant.FromProtoList(in)) })
}

func (s *server) DismissRedbox(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return s.invoke(ctx, s.router.DismissRedbox)
}

// invoke skips the call when the client already gave up.
func (s *server) invoke(ctx context.Context, call func() error) (*emptypb.Empty, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	if err := call(); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}
