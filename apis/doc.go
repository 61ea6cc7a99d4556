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

// Package apis holds the small contracts shared by the redbox core and its
// transport bridges.
//
// Bridges (httpx, grpcx) only need to know that an error has a code, maybe a
// reason, maybe field details, and how to turn that into a status. They do
// not need the concrete redbox.Error type, and the core does not need to know
// about HTTP or gRPC. This package sits between the two and imports only
// the code and reason packages plus grpc/codes.
package apis
