package fzerr

import (
	"errors"
	"testing"
)

func TestWrapChainsCauseThroughUnwrap(t *testing.T) {
	cause := errors.New("boom")

	err := Wrap(CategoryConfig, "WRAPPED", "something went wrong", nil, cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}

	if got := err.Error(); got == "" {
		t.Fatalf("expected a non-empty error string")
	}
}

func TestNewLeavesWrappedNil(t *testing.T) {
	err := New(CategoryPool, "CODE", "message", nil)

	if err.Unwrap() != nil {
		t.Fatalf("expected New to produce an error with no wrapped cause")
	}
}

func TestCoverageABIMismatchReportsCategory(t *testing.T) {
	err := CoverageABIMismatch("2.0.0", ">=1.0.0, <2.0.0")

	if err.Category != CategoryCoverageABI {
		t.Fatalf("expected category %q, got %q", CategoryCoverageABI, err.Category)
	}
}
