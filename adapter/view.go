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
	"errors"

	"dirpx.dev/redbox/apis"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
)

// InternalMessage replaces the text of errors that carry no code.
const InternalMessage = "internal error"

// CodeOf returns the code and reason carried by err. Errors without a
// valid code resolve to code.Internal; an unparsable reason is dropped.
func CodeOf(err error) (code.Code, reason.Reason) {
	var ce apis.CodedError
	if !errors.As(err, &ce) {
		return code.Internal, reason.Empty
	}
	c, perr := code.Parse(ce.ErrorCode())
	if perr != nil || c == code.Empty {
		return code.Internal, reason.Empty
	}
	var re apis.ReasonedError
	if !errors.As(err, &re) {
		return c, reason.Empty
	}
	r, perr := reason.Parse(re.ErrorReason())
	if perr != nil {
		return c, reason.Empty
	}
	return c, r
}

// StatusOf resolves the transport statuses of err with m.
func StatusOf(err error, m apis.Mapper) apis.Status {
	c, r := CodeOf(err)
	return m.Status(c, r)
}

// ToView converts err into a public ErrorView. A nil err yields the zero
// view.
//
// Errors that render their own view (apis.ViewProvider) are used as-is.
// Coded errors are assembled from the apis interfaces. Anything else becomes
// an internal error with a fixed message.
//
// No redaction is applied to coded errors: their message and details are
// exposed exactly as the error carries them.
func ToView(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	var vp apis.ViewProvider
	if errors.As(err, &vp) {
		return vp.ErrorView()
	}
	var ce apis.CodedError
	if !errors.As(err, &ce) {
		return apis.ErrorView{Code: string(code.Internal), Message: InternalMessage}
	}
	c, r := CodeOf(err)
	v := apis.ErrorView{
		Code:    string(c),
		Reason:  string(r),
		Message: err.Error(),
	}
	var de apis.DetailedError
	if errors.As(err, &de) {
		if ds := de.ErrorDetails(); len(ds) > 0 {
			v.Details = ds
		}
	}
	return v
}
