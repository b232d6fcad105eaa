// Package input turns raw operator text into typed values.
//
// A Validator is a pure function, independent of how the text was
// prompted for, so the same rules back the interactive menu and its tests.
package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Error reports why a raw value was rejected.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validator parses raw input into a T or returns an *Error.
type Validator[T any] func(raw string) (T, error)

// Check adapts a validator to the func(string) error shape prompt
// libraries expect.
func Check[T any](v Validator[T]) func(string) error {
	return func(raw string) error {
		_, err := v(raw)
		return err
	}
}

// NonEmpty accepts any string that is not blank and returns it trimmed.
func NonEmpty(field string) Validator[string] {
	return func(raw string) (string, error) {
		value := strings.TrimSpace(raw)
		if value == "" {
			return "", &Error{Field: field, Message: fmt.Sprintf("%s cannot be empty.", field)}
		}
		return value, nil
	}
}

// Int accepts a base-10 integer.
func Int(field string) Validator[int64] {
	return func(raw string) (int64, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return 0, &Error{Field: field, Message: fmt.Sprintf("Enter a valid %s.", field)}
		}
		return n, nil
	}
}

// Float accepts a decimal number. NaN and infinities are rejected.
func Float(field string) Validator[float64] {
	return func(raw string) (float64, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &Error{Field: field, Message: fmt.Sprintf("Enter a valid %s.", field)}
		}
		return f, nil
	}
}

// OptionalInt treats blank input as absent and otherwise behaves like Int.
func OptionalInt(field string) Validator[*int64] {
	required := Int(field)
	return func(raw string) (*int64, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		n, err := required(raw)
		if err != nil {
			return nil, &Error{Field: field, Message: fmt.Sprintf("Enter a valid %s or leave empty.", field)}
		}
		return &n, nil
	}
}
