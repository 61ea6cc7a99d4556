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

package redbox

import "fmt"

// UnknownPosition is the line or column of a frame whose position was not
// reported (missing or null in the payload).
const UnknownPosition = -1

// ErrorFrameInfo is one frame of a reported callstack.
type ErrorFrameInfo struct {
	File       string
	MethodName string
	LineNumber int
	Column     int
}

// String renders the frame as "method (file:line:column)". Unknown
// positions are omitted.
func (f ErrorFrameInfo) String() string {
	method := f.MethodName
	if method == "" {
		method = "<anonymous>"
	}
	switch {
	case f.LineNumber == UnknownPosition:
		return fmt.Sprintf("%s (%s)", method, f.File)
	case f.Column == UnknownPosition:
		return fmt.Sprintf("%s (%s:%d)", method, f.File, f.LineNumber)
	default:
		return fmt.Sprintf("%s (%s:%d:%d)", method, f.File, f.LineNumber, f.Column)
	}
}

// ErrorInfo is one decoded exception report. Callstack keeps the order of
// the payload; the decoder never filters or reorders frames.
//
// An ErrorInfo is not modified after decoding. A changed message for an
// already shown error arrives as a new ErrorInfo with the same ID through
// Handler.UpdateError.
type ErrorInfo struct {
	Message   string
	ID        uint32
	Callstack []ErrorFrameInfo
}

// Clone returns a deep copy, for handlers that keep reports around.
func (e ErrorInfo) Clone() ErrorInfo {
	cp := e
	if e.Callstack != nil {
		cp.Callstack = make([]ErrorFrameInfo, len(e.Callstack))
		copy(cp.Callstack, e.Callstack)
	}
	return cp
}

// ErrorType tells a handler how severe a newly shown error is.
type ErrorType int

const (
	// Fatal errors came from reportFatalException.
	Fatal ErrorType = iota
	// Soft errors came from reportSoftException.
	Soft
)

// String returns "fatal" or "soft".
func (t ErrorType) String() string {
	switch t {
	case Fatal:
		return "fatal"
	case Soft:
		return "soft"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

// Handler is the error presentation capability the router delivers to.
//
// The router never owns a Handler: it only calls it. Implementations must be
// safe for concurrent use if the router is called from several goroutines.
// Errors returned by the delivery methods reach the router's caller
// unchanged.
type Handler interface {
	// IsDevSupportEnabled gates ShowNewError and UpdateError. It is asked on
	// every report, so it may change over time.
	IsDevSupportEnabled() bool
	// ShowNewError presents a new report.
	ShowNewError(info ErrorInfo, typ ErrorType) error
	// UpdateError replaces the message and callstack of the shown report
	// with the same ID.
	UpdateError(info ErrorInfo) error
	// DismissRedbox hides whatever is currently presented.
	DismissRedbox() error
}
