package sancovabi

import "testing"

func TestGateAcceptsVersionWithinSupportedRange(t *testing.T) {
	v, err := Gate("1.3.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.String() != "1.3.0" {
		t.Fatalf("expected parsed version 1.3.0, got %s", v.String())
	}
}

func TestGateRejectsVersionOutsideSupportedRange(t *testing.T) {
	if _, err := Gate("2.0.0"); err == nil {
		t.Fatalf("expected error for ABI version 2.0.0, outside supported range")
	}
}

func TestGateRejectsUnparseableVersion(t *testing.T) {
	if _, err := Gate("not-a-version"); err == nil {
		t.Fatalf("expected error for unparseable version string")
	}
}
