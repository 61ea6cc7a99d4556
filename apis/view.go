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

package apis

// Detail is one structured piece of an error, small enough to ship over
// JSON or as protobuf error details.
//
// For payload decode failures Field is the path of the element that failed,
// e.g. "args[1][0].lineNumber", and Info carries "expected" and "actual"
// kinds.
type Detail struct {
	Type   string            `json:"type,omitempty"`
	Field  string            `json:"field,omitempty"`
	Reason string            `json:"reason,omitempty"`
	Info   map[string]string `json:"info,omitempty"`
}

// ViewProvider is implemented by errors that can render their own public
// view.
type ViewProvider interface {
	error

	ErrorView() ErrorView
}

// ErrorView is the serializable shape of an error as returned by the HTTP
// bridge.
type ErrorView struct {
	Code    string   `json:"code"`
	Reason  string   `json:"reason,omitempty"`
	Message string   `json:"message,omitempty"`
	Details []Detail `json:"details,omitempty"`
}
