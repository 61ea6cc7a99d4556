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
	"errors"
	"log/slog"

	"dirpx.dev/redbox/adapter"
	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/mapper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InterceptorOption configures UnaryServerInterceptor.
type InterceptorOption func(*interceptor)

// WithLogger sets the logger used for failed calls. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) InterceptorOption {
	return func(i *interceptor) {
		if logger != nil {
			i.logger = logger
		}
	}
}

type interceptor struct {
	mapper apis.Mapper
	logger *slog.Logger
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// errors returned by handlers into gRPC statuses.
//
//   - errors implementing apis.CodedError get the status chosen by m, with
//     errdetails attached (see adapter.ToGRPCStatus);
//   - errors that already carry a gRPC status pass through;
//   - anything else becomes codes.Internal with a fixed message.
//
// A nil m uses mapper.Default().
func UnaryServerInterceptor(m apis.Mapper, opts ...InterceptorOption) grpc.UnaryServerInterceptor {
	if m == nil {
		m = mapper.Default()
	}
	in := &interceptor{mapper: m, logger: slog.Default()}
	for _, opt := range opts {
		opt(in)
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		st := in.toStatus(err)
		lvl := slog.LevelInfo
		if st.Code() == codes.Internal || st.Code() == codes.Unknown {
			lvl = slog.LevelError
		}
		in.logger.Log(ctx, lvl, "rpc failed", "method", info.FullMethod, "code", st.Code().String(), "err", err)
		return nil, st.Err()
	}
}

func (in *interceptor) toStatus(err error) *status.Status {
	var ce apis.CodedError
	if errors.As(err, &ce) {
		return adapter.ToGRPCStatus(err, in.mapper)
	}
	if st, ok := status.FromError(err); ok {
		return st
	}
	return adapter.ToGRPCStatus(err, in.mapper)
}
