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

package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dirpx.dev/redbox/adapter"
	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/code"
)

// Meta carries response hints the HTTP layer adds on top of the error.
// All fields are optional.
type Meta struct {
	// Correlation is echoed in the X-Correlation-ID header.
	Correlation string
	// RetryAfterSeconds sets Retry-After when positive.
	RetryAfterSeconds int
}

// Writer turns an error into an HTTP response using Mapper.
type Writer struct {
	Mapper apis.Mapper
}

// Write renders err as an apis.ErrorView and writes it with the status
// resolved by the Mapper. A nil err writes nothing.
//
// Errors without a code are written as "internal" with a fixed message.
// Coded errors are exposed as-is.
func (w Writer) Write(rw http.ResponseWriter, err error, meta Meta) int {
	if err == nil {
		return 0
	}
	st := adapter.StatusOf(err, w.Mapper)
	view := adapter.ToView(err)
	if view.Code == "" {
		view.Code = string(code.Internal)
	}

	rw.Header().Set("Content-Type", "application/json")
	if meta.Correlation != "" {
		rw.Header().Set("X-Correlation-ID", meta.Correlation)
	}
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(meta.RetryAfterSeconds))
	}
	rw.WriteHeader(st.HTTP)
	_ = json.NewEncoder(rw).Encode(view)
	return st.HTTP
}
