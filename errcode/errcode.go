/*
   Copyright 2026 The UltraSuite Authors

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

package errcode

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical, validated representation of a symbolic error code.
//
// It is defined as a separate type (not just string) so that other packages
// can explicitly declare which values they expect and to avoid accidental
// mixing of raw user input with normalized values. A Code carries no
// semantics by itself; all policy lives in the configuration resolved for it.
//
// IMPORTANT: Empty codes ("") are NOT allowed. Every reported error MUST
// have a non-empty code.
type Code string

// MinLength and MaxLength define the allowed length range for a canonical
// error code.
//
// We keep these values as separate constants so they can be referenced in
// validation errors, tests, or in other packages that want to mirror the same
// constraints.
const (
	// MinLength is the minimum length for a valid code.
	// We require at least 3 characters so that ultra-short and ambiguous
	// identifiers like "A" or "X1" are not accepted.
	MinLength = 3

	// MaxLength is the maximum length for a valid code.
	// 64 characters is enough for descriptive codes like
	// "TEMP_FILE_CREATE_FAILED" while still preventing unbounded or
	// accidental long strings.
	MaxLength = 64
)

const (
	// codeFmt is the canonical regular expression used to validate error codes.
	//
	// Pattern breakdown:
	//
	//	^ - start of string;
	//	[A-Z] - first character must be an uppercase ASCII letter;
	//	[A-Z0-9_]{2,63} - the remaining characters may be uppercase letters,
	//	                  digits or underscore; the quantifier {2,63} makes the
	//	                  total length 3..64 characters (1 + 2..63);
	//	$ - end of string;
	//
	// Codes are SCREAMING_SNAKE by convention (FILE_NOT_FOUND, VIRUS_FOUND),
	// which keeps them visually distinct from translation keys and config
	// settings in logs and payloads.
	//
	// IMPORTANT: the numeric range {2,63} is tied to MinLength / MaxLength
	// above. If you change MinLength / MaxLength, adjust this pattern as well.
	codeFmt = `^[A-Z][A-Z0-9_]{2,63}$`
)

var (
	// codeRe is the compiled regular expression used at runtime to validate
	// that a string is a canonical error code.
	//
	// We precompile it so that repeated validations (registry loads, runtime
	// Define calls, HTTP simulation endpoints) do not pay the compilation
	// cost over and over again.
	//
	// Examples of valid codes:
	//   - "FILE_NOT_FOUND"
	//   - "VIRUS_FOUND"
	//   - "UNDEFINED_ERROR_CODE"
	//
	// Examples of invalid codes:
	//   - "file_not_found" (lowercase)
	//   - "FILE-NOT-FOUND" (dash instead of underscore)
	//   - "X"              (too short)
	//   - "1ERROR"         (does not start with a letter)
	codeRe = regexp.MustCompile(codeFmt)
)

var (
	// ErrCodeInvalid is returned when a value cannot be parsed or validated
	// as an error code.
	//
	// Having a dedicated sentinel error makes it easier for callers and tests
	// to detect "this is about code format" vs "this is some other error".
	ErrCodeInvalid = errors.New("ultraerr: invalid error code")
)

// Ensure Code implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into larger config or API structs.
var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It is never a valid code to report; callers
// that accept optional codes should compare against Empty explicitly.
var Empty Code = ""

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a canonical Code value.
func Parse(s string) (Code, error) {
	c := Normalize(s)
	if err := validate(string(c)); err != nil {
		return Empty, err
	}
	return c, nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// declaring package-level constants in init() or var blocks.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize takes an arbitrary string and tries to bring it closer to the
// canonical code form.
//
// This function is intentionally conservative: it only performs obvious,
// non-lossy transformations:
//
//   - trims surrounding spaces;
//   - uppercases the value;
//   - replaces '-' with '_';
//
// It does NOT guarantee that the result is valid; callers should still call
// Validate/Parse after normalization.
func Normalize(s string) Code {
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", "_")
	return Code(s)
}

// Validate checks whether the provided Code is valid.
// The empty code ("") is considered invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// Validate is the method form of the package-level Validate.
func (c Code) Validate() error {
	return validate(string(c))
}

// String returns the canonical string representation of the code.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
//
// It always returns the canonical string representation.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Code) UnmarshalText(text []byte) error {
	s := string(bytes.TrimSpace(text))
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// validate is a helper that checks whether the provided string is a valid code.
func validate(s string) error {
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
