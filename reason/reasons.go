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

package reason

// Reasons reported by the payload decoder. All of them live under "payload"
// so a single prefix rule can map every decode failure at once.
const (
	// PayloadArgsType: the argument value is not an array.
	PayloadArgsType Reason = "payload.args.type"
	// PayloadArgsArity: the argument array does not have exactly 3 elements.
	PayloadArgsArity Reason = "payload.args.arity"
	// PayloadMessageType: element 0 is not a string.
	PayloadMessageType Reason = "payload.message.type"
	// PayloadStackType: element 1 is not an array.
	PayloadStackType Reason = "payload.stack.type"
	// PayloadStackTooLong: element 1 holds more frames than allowed.
	PayloadStackTooLong Reason = "payload.stack.too_long"
	// PayloadIDType: element 2 is not a finite number.
	PayloadIDType Reason = "payload.id.type"
	// PayloadIDRange: element 2 does not fit an unsigned 32-bit integer.
	PayloadIDRange Reason = "payload.id.range"
	// PayloadFrameType: a callstack entry is not an object.
	PayloadFrameType Reason = "payload.frame.type"
	// PayloadFrameArity: a callstack entry has fewer keys than required
	// (strict frames only).
	PayloadFrameArity Reason = "payload.frame.arity"
	// PayloadFrameField: a frame field has the wrong kind or an
	// unrepresentable numeric value.
	PayloadFrameField Reason = "payload.frame.field"
	// PayloadFrameMissing: a frame lacks a position key (strict frames only).
	PayloadFrameMissing Reason = "payload.frame.missing"
)

// Reasons reported by the module call surface.
const (
	// ModuleMethodUnknown: no method with the requested name.
	ModuleMethodUnknown Reason = "module.method.unknown"
	// ModuleNameUnknown: the call addressed a different module.
	ModuleNameUnknown Reason = "module.name.unknown"
	// RedboxIDUnknown: an update named an id the redbox is not showing.
	RedboxIDUnknown Reason = "redbox.id.unknown"
	// TransportBodyTooLarge: the request body exceeded the bridge limit.
	TransportBodyTooLarge Reason = "transport.body.too_large"
	// TransportBodySyntax: the request body is not valid JSON.
	TransportBodySyntax Reason = "transport.body.syntax"
	// TransportMethodNotAllowed: wrong HTTP verb.
	TransportMethodNotAllowed Reason = "transport.http.method"
)
