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

// Package grpcx exposes a router.Router as the gRPC service
// redbox.v1.ExceptionsManager and maps redbox errors to rich gRPC statuses.
//
// The service is declared by hand: report methods take a
// google.protobuf.ListValue holding the exception arguments, DismissRedbox
// takes google.protobuf.Empty, and every method returns
// google.protobuf.Empty. No generated code is needed.
//
// Failed calls carry errdetails.ErrorInfo (domain "redbox.dirpx.dev", the
// redbox code and reason in metadata) and, for payload failures,
// errdetails.BadRequest naming the offending argument path.
package grpcx
