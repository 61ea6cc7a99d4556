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

package decoder

import (
	"fmt"
	"math"

	"dirpx.dev/redbox"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
	"dirpx.dev/redbox/variant"
)

// Argument positions inside the report triple.
const (
	argMessage = iota
	argCallstack
	argID
	argCount
)

// Frame keys.
const (
	keyFile       = "file"
	keyMethodName = "methodName"
	keyLineNumber = "lineNumber"
	keyColumn     = "column"
)

// minStrictFrameKeys is the key count every frame had since the producers
// started sending "file", "methodName", "lineNumber" and "column".
const minStrictFrameKeys = 4

// Option configures a Decoder.
type Option func(*Decoder)

// WithStrictFrames requires every frame to have at least four keys and
// explicit "lineNumber" and "column" entries (null is still allowed).
func WithStrictFrames() Option {
	return func(d *Decoder) { d.strictFrames = true }
}

// WithMaxFrames rejects callstacks longer than n frames. n <= 0 disables
// the limit.
func WithMaxFrames(n int) Option {
	return func(d *Decoder) { d.maxFrames = max(n, 0) }
}

// Decoder decodes exception payloads. It holds only configuration and is
// safe for concurrent use.
type Decoder struct {
	strictFrames bool
	maxFrames    int
}

// New returns a Decoder with opts applied. The zero configuration is
// lenient about missing position keys and has no frame limit.
func New(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = New()

// Decode decodes args with the default configuration.
func Decode(args variant.Value) (redbox.ErrorInfo, error) {
	return defaultDecoder.Decode(args)
}

// Decode converts args into an ErrorInfo. On failure the returned error is
// a *redbox.Error and the ErrorInfo is the zero value.
func (d *Decoder) Decode(args variant.Value) (redbox.ErrorInfo, error) {
	elems, err := args.AsArray()
	if err != nil {
		return redbox.ErrorInfo{}, kindErr(reason.PayloadArgsType, "args", variant.KindArray, args,
			"exception arguments must be an array")
	}
	if len(elems) != argCount {
		c := code.Invalid
		if len(elems) < argCount {
			c = code.Missing
		}
		return redbox.ErrorInfo{}, redbox.E(c, fmt.Sprintf("exception arguments must have %d elements, got %d", argCount, len(elems)),
			redbox.WithReasonOption(reason.PayloadArgsArity),
			redbox.WithFieldOption("args"),
			redbox.WithDetailsOption(map[string]any{"expected": argCount, "actual": len(elems)}),
		)
	}

	message, err := elems[argMessage].AsString()
	if err != nil {
		return redbox.ErrorInfo{}, kindErr(reason.PayloadMessageType, argPath(argMessage), variant.KindString, elems[argMessage],
			"exception message must be a string")
	}
	frames, err := elems[argCallstack].AsArray()
	if err != nil {
		return redbox.ErrorInfo{}, kindErr(reason.PayloadStackType, argPath(argCallstack), variant.KindArray, elems[argCallstack],
			"exception callstack must be an array")
	}
	id, err := decodeID(elems[argID])
	if err != nil {
		return redbox.ErrorInfo{}, err
	}
	if d.maxFrames > 0 && len(frames) > d.maxFrames {
		return redbox.ErrorInfo{}, redbox.E(code.OutOfRange, fmt.Sprintf("callstack has %d frames, limit is %d", len(frames), d.maxFrames),
			redbox.WithReasonOption(reason.PayloadStackTooLong),
			redbox.WithFieldOption(argPath(argCallstack)),
			redbox.WithDetailsOption(map[string]any{"limit": d.maxFrames, "actual": len(frames)}),
		)
	}

	callstack := make([]redbox.ErrorFrameInfo, 0, len(frames))
	for i, fv := range frames {
		frame, err := d.decodeFrame(fv, fmt.Sprintf("%s[%d]", argPath(argCallstack), i))
		if err != nil {
			return redbox.ErrorInfo{}, err
		}
		callstack = append(callstack, frame)
	}

	return redbox.ErrorInfo{Message: message, ID: id, Callstack: callstack}, nil
}

// decodeID accepts a number in [0, MaxUint32] and truncates it toward zero.
// The range is checked before truncation, so 4294967295.5 is rejected.
func decodeID(v variant.Value) (uint32, error) {
	path := argPath(argID)
	n, err := v.AsNumber()
	if err != nil {
		return 0, kindErr(reason.PayloadIDType, path, variant.KindNumber, v, "exception id must be a number")
	}
	if math.IsNaN(n) {
		return 0, redbox.E(code.Invalid, "exception id is NaN",
			redbox.WithReasonOption(reason.PayloadIDType),
			redbox.WithFieldOption(path),
		)
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, redbox.E(code.OutOfRange, "exception id does not fit an unsigned 32-bit integer",
			redbox.WithReasonOption(reason.PayloadIDRange),
			redbox.WithFieldOption(path),
			redbox.WithDetailsOption(map[string]any{"min": 0, "max": uint32(math.MaxUint32), "actual": n}),
		)
	}
	return uint32(math.Trunc(n)), nil
}

func (d *Decoder) decodeFrame(v variant.Value, path string) (redbox.ErrorFrameInfo, error) {
	if v.Kind() != variant.KindObject {
		return redbox.ErrorFrameInfo{}, kindErr(reason.PayloadFrameType, path, variant.KindObject, v,
			"callstack frame must be an object")
	}
	if d.strictFrames && v.Len() < minStrictFrameKeys {
		return redbox.ErrorFrameInfo{}, redbox.E(code.Missing, fmt.Sprintf("callstack frame must have at least %d keys, got %d", minStrictFrameKeys, v.Len()),
			redbox.WithReasonOption(reason.PayloadFrameArity),
			redbox.WithFieldOption(path),
			redbox.WithDetailsOption(map[string]any{"expected": minStrictFrameKeys, "actual": v.Len()}),
		)
	}

	var (
		f   redbox.ErrorFrameInfo
		err error
	)
	if f.File, err = frameString(v, keyFile, path); err != nil {
		return redbox.ErrorFrameInfo{}, err
	}
	if f.MethodName, err = frameString(v, keyMethodName, path); err != nil {
		return redbox.ErrorFrameInfo{}, err
	}
	if f.LineNumber, err = d.framePosition(v, keyLineNumber, path); err != nil {
		return redbox.ErrorFrameInfo{}, err
	}
	if f.Column, err = d.framePosition(v, keyColumn, path); err != nil {
		return redbox.ErrorFrameInfo{}, err
	}
	return f, nil
}

// frameString reads a text field; missing and null are "".
func frameString(frame variant.Value, key, path string) (string, error) {
	fv, ok := frame.Lookup(key)
	if !ok || fv.IsNull() {
		return "", nil
	}
	s, err := fv.AsString()
	if err != nil {
		return "", kindErr(reason.PayloadFrameField, path+"."+key, variant.KindString, fv,
			"callstack frame "+key+" must be a string")
	}
	return s, nil
}

// framePosition reads a line or column; null (and, unless strict, missing)
// is redbox.UnknownPosition. Numbers are truncated toward zero and must fit
// an int32.
func (d *Decoder) framePosition(frame variant.Value, key, path string) (int, error) {
	field := path + "." + key
	fv, ok := frame.Lookup(key)
	if !ok {
		if d.strictFrames {
			return 0, redbox.E(code.Missing, "callstack frame has no "+key,
				redbox.WithReasonOption(reason.PayloadFrameMissing),
				redbox.WithFieldOption(field),
			)
		}
		return redbox.UnknownPosition, nil
	}
	if fv.IsNull() {
		return redbox.UnknownPosition, nil
	}
	n, err := fv.AsNumber()
	if err != nil {
		return 0, kindErr(reason.PayloadFrameField, field, variant.KindNumber, fv,
			"callstack frame "+key+" must be a number or null")
	}
	n = math.Trunc(n)
	if math.IsNaN(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, redbox.E(code.OutOfRange, "callstack frame "+key+" does not fit a 32-bit integer",
			redbox.WithReasonOption(reason.PayloadFrameField),
			redbox.WithFieldOption(field),
			redbox.WithDetailOption("actual", n),
		)
	}
	return int(n), nil
}

func kindErr(r reason.Reason, field string, want variant.Kind, got variant.Value, msg string) *redbox.Error {
	return redbox.E(code.Invalid, msg,
		redbox.WithReasonOption(r),
		redbox.WithFieldOption(field),
		redbox.WithDetailsOption(map[string]any{"expected": want.String(), "actual": got.Kind().String()}),
	)
}

func argPath(i int) string { return fmt.Sprintf("args[%d]", i) }
