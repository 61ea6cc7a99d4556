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

// Package httpx exposes a router.Router over HTTP and renders redbox errors
// as JSON apis.ErrorView responses.
//
// Each module method is served at
//
//	POST /modules/ExceptionsManager/{method}
//
// with the JSON argument array as the request body. A successful call
// answers 204 No Content. Failures answer with the status chosen by an
// apis.Mapper and an ErrorView body.
package httpx
