// Package testing provides utilities for writing tests against the emulation
// core. Import it as n64testing to avoid clashing with the standard library.
package testing

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	s := make([]string, len(tags))
	for i := range tags {
		s[i] = fmt.Sprint(tags[i])
	}
	return strings.Join(s, " ") + ": "
}

// ExpectEquality compares value with expected and reports a test error if
// they differ. Optional tags are prefixed to the message and are useful when
// the comparison happens inside a loop.
func ExpectEquality[T comparable](t *testing.T, value T, expected T, tags ...any) bool {
	t.Helper()
	if value != expected {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), value, value, expected)
		return false
	}
	return true
}

// ExpectInequality is the inverse of ExpectEquality.
func ExpectInequality[T comparable](t *testing.T, value T, unexpected T, tags ...any) bool {
	t.Helper()
	if value == unexpected {
		t.Errorf("%sinequality test of type %T failed: '%v' equals '%v'", id(tags...), value, value, unexpected)
		return false
	}
	return true
}

// ExpectApproximate reports a test error if value is further than tolerance
// away from expected.
func ExpectApproximate[T ~float32 | ~float64](t *testing.T, value T, expected T, tolerance float64, tags ...any) bool {
	t.Helper()
	if math.Abs(float64(value)-float64(expected)) > tolerance {
		t.Errorf("%sapproximation test of type %T failed: '%v' is not within %v of '%v'", id(tags...), value, value, tolerance, expected)
		return false
	}
	return true
}

// ExpectSuccess accepts a bool or an error. A true bool or a nil error is a
// success.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		if !v {
			t.Errorf("%sexpected success (bool)", id(tags...))
			return false
		}
	case error:
		t.Errorf("%sexpected success (error: %v)", id(tags...), v)
		return false
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}
	return true
}

// ExpectFailure accepts a bool or an error. A false bool or a non-nil error
// is a failure.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	switch v := v.(type) {
	case nil:
		t.Errorf("%sexpected failure (nil)", id(tags...))
		return false
	case bool:
		if v {
			t.Errorf("%sexpected failure (bool)", id(tags...))
			return false
		}
	case error:
		return true
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}
	return true
}
