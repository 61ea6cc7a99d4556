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

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Reason is a validated, dot-separated refinement of a failure code.
type Reason string

// Length limits for a non-empty reason.
const (
	MinLength = 3
	MaxLength = 128
)

// MaxSegments is the deepest reason accepted by Parse.
const MaxSegments = 4

var reasonRe = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`)

var (
	// ErrReasonInvalidFormat is returned when a reason has empty segments,
	// illegal characters or too many segments.
	ErrReasonInvalidFormat = errors.New("redbox: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	ErrReasonInvalidLength = errors.New("redbox: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty means "no reason given".
var Empty Reason = ""

// Normalize trims, lowercases, turns "/" into "." and "-" into "_".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	return strings.ReplaceAll(s, "-", "_")
}

// Parse normalizes and validates s. The empty string yields Empty.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is like Parse but panics on invalid or empty input.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("redbox: empty reason in MustParse")
	}
	return r
}

// Validate reports whether r is canonical. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

// String returns the reason as a plain string.
func (r Reason) String() string { return string(r) }

// Segments splits r on dots. Empty yields nil.
func (r Reason) Segments() []string {
	if r == Empty {
		return nil
	}
	return strings.Split(string(r), ".")
}

// Parent drops the last segment: "payload.frame.field" -> "payload.frame".
// A single-segment reason has Empty as parent.
func (r Reason) Parent() Reason {
	i := strings.LastIndexByte(string(r), '.')
	if i < 0 {
		return Empty
	}
	return r[:i]
}

// HasPrefix reports whether prefix matches r on whole segments, so
// "payload.frame" matches "payload.frame.field" but not "payload.frames".
func (r Reason) HasPrefix(prefix Reason) bool {
	if prefix == Empty {
		return true
	}
	if !strings.HasPrefix(string(r), string(prefix)) {
		return false
	}
	return len(r) == len(prefix) || r[len(prefix)] == '.'
}

// MarshalText implements encoding.TextMarshaler. Empty marshals to an empty
// slice.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	if !reasonRe.MatchString(s) {
		return ErrReasonInvalidFormat
	}
	return nil
}
