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

package code

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is a validated failure classification.
//
// It is a distinct type so that raw strings coming from the wire are never
// mistaken for classifications that went through Parse.
type Code string

// Length limits for a canonical code.
const (
	MinLength = 3
	MaxLength = 64
)

// codeRe accepts 3..64 characters: a leading lowercase letter followed by
// lowercase letters, digits or underscores. Keep in sync with MinLength and
// MaxLength.
var codeRe = regexp.MustCompile(`^[a-z][a-z0-9_]{2,63}$`)

// ErrCodeInvalid is returned when a value is not a canonical code.
var ErrCodeInvalid = errors.New("redbox: invalid code")

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero code. It never passes Validate.
var Empty Code = ""

// Parse normalizes s and validates the result.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if !codeRe.MatchString(s) {
		return Empty, ErrCodeInvalid
	}
	return Code(s), nil
}

// MustParse is like Parse but panics on invalid input. Use it for
// package-level declarations only.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims surrounding space, lowercases and turns dashes into
// underscores. The result still has to be validated.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "-", "_")
}

// Validate reports whether c is canonical. Empty is invalid.
func Validate(c Code) error {
	if !codeRe.MatchString(string(c)) {
		return ErrCodeInvalid
	}
	return nil
}

// String returns the code as a plain string.
func (c Code) String() string { return string(c) }

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input is
// normalized before validation.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
