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

// Package adapter converts redbox errors into the shapes the transport
// bridges ship: apis.ErrorView for HTTP and a rich *status.Status for gRPC.
//
// Conversion goes through the apis interfaces, so any error implementing
// apis.CodedError can be rendered. Errors that implement none of them are
// reported as code.Internal without leaking their text.
package adapter
