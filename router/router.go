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

package router

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"dirpx.dev/redbox"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/decoder"
	"dirpx.dev/redbox/reason"
	"dirpx.dev/redbox/variant"
)

// ModuleName is the name the module is registered under.
const ModuleName = "ExceptionsManager"

// Method names, as called by the scripted runtime.
const (
	MethodReportFatalException   = "reportFatalException"
	MethodReportSoftException    = "reportSoftException"
	MethodUpdateExceptionMessage = "updateExceptionMessage"
	MethodDismissRedbox          = "dismissRedbox"
)

// Method is one named entry of the module's call table.
type Method struct {
	Name   string
	Invoke func(args variant.Value) error
}

// Router routes exception reports to a redbox.Handler.
type Router struct {
	handler redbox.Handler
	decoder *decoder.Decoder
	policy  FailurePolicy
	logger  *slog.Logger
}

// New returns a Router delivering to handler. handler may be nil (or a
// typed nil pointer), in which case every method is a no-op.
func New(handler redbox.Handler, opts ...Option) *Router {
	r := &Router{
		handler: handler,
		decoder: decoder.New(),
		policy:  FailureReturn,
		logger:  slog.Default(),
	}
	if isNilHandler(handler) {
		r.handler = nil
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("module", ModuleName)
	return r
}

// Name returns ModuleName.
func (r *Router) Name() string { return ModuleName }

// Constants returns the module's static constants. There are none.
func (r *Router) Constants() map[string]variant.Value {
	return map[string]variant.Value{}
}

// Methods returns the call table in declaration order.
func (r *Router) Methods() []Method {
	return []Method{
		{Name: MethodReportFatalException, Invoke: r.ReportFatalException},
		{Name: MethodReportSoftException, Invoke: r.ReportSoftException},
		{Name: MethodUpdateExceptionMessage, Invoke: r.UpdateExceptionMessage},
		{Name: MethodDismissRedbox, Invoke: func(variant.Value) error { return r.DismissRedbox() }},
	}
}

// Invoke calls the method named name. dismissRedbox ignores args.
func (r *Router) Invoke(name string, args variant.Value) error {
	switch name {
	case MethodReportFatalException:
		return r.ReportFatalException(args)
	case MethodReportSoftException:
		return r.ReportSoftException(args)
	case MethodUpdateExceptionMessage:
		return r.UpdateExceptionMessage(args)
	case MethodDismissRedbox:
		return r.DismissRedbox()
	default:
		return redbox.E(code.NotFound, fmt.Sprintf("module %s has no method %q", ModuleName, name),
			redbox.WithReasonOption(reason.ModuleMethodUnknown),
			redbox.WithDetailOption("method", name),
		)
	}
}

// ReportFatalException shows args as a new fatal error.
func (r *Router) ReportFatalException(args variant.Value) error {
	return r.show(MethodReportFatalException, args, redbox.Fatal)
}

// ReportSoftException shows args as a new soft error.
func (r *Router) ReportSoftException(args variant.Value) error {
	return r.show(MethodReportSoftException, args, redbox.Soft)
}

// UpdateExceptionMessage replaces the shown error that has the same id.
func (r *Router) UpdateExceptionMessage(args variant.Value) error {
	if !r.devSupportEnabled() {
		return nil
	}
	info, err := r.decode(MethodUpdateExceptionMessage, args)
	if err != nil {
		return err
	}
	return r.handler.UpdateError(info)
}

// DismissRedbox hides the redbox. It does not consult IsDevSupportEnabled.
func (r *Router) DismissRedbox() error {
	if r.handler == nil {
		return nil
	}
	return r.handler.DismissRedbox()
}

func (r *Router) show(method string, args variant.Value, typ redbox.ErrorType) error {
	if !r.devSupportEnabled() {
		return nil
	}
	info, err := r.decode(method, args)
	if err != nil {
		return err
	}
	return r.handler.ShowNewError(info, typ)
}

func (r *Router) devSupportEnabled() bool {
	return r.handler != nil && r.handler.IsDevSupportEnabled()
}

// decode applies the failure policy to a decode error. The handler is
// known to be present and enabled here.
func (r *Router) decode(method string, args variant.Value) (redbox.ErrorInfo, error) {
	info, err := r.decoder.Decode(args)
	if err == nil {
		return info, nil
	}
	r.logger.Warn("malformed exception payload", "method", method, "err", err)

	if r.policy != FailureReportSoft {
		return redbox.ErrorInfo{}, err
	}
	report := redbox.ErrorInfo{
		Message:   "malformed exception payload in " + method + ": " + err.Error(),
		Callstack: []redbox.ErrorFrameInfo{},
	}
	if herr := r.handler.ShowNewError(report, redbox.Soft); herr != nil {
		return redbox.ErrorInfo{}, errors.Join(err, herr)
	}
	return redbox.ErrorInfo{}, err
}

// isNilHandler catches typed nil pointers stored in the interface.
func isNilHandler(h redbox.Handler) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
