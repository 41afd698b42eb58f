// Package sancovabi gates attachment to an instrumented binary's SanCov
// regions behind a semver compatibility check between the ABI version
// this engine build declares support for and the version the binary
// reports, mirroring how the teacher's internal/packagemanager resolves
// dependency constraints with Masterminds/semver.
package sancovabi

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"

	"github.com/fuzzcheck-go/fuzzcheck/fzerr"
)

// SupportedRange is the semver constraint this engine build accepts for
// the instrumented binary's declared SanCov ABI version.
const SupportedRange = ">=1.0.0, <2.0.0"

// Gate checks reportedVersion (the instrumented binary's declared SanCov
// ABI version string) against SupportedRange, returning a categorized
// fzerr.StandardError when incompatible.
func Gate(reportedVersion string) (*semver.Version, error) {
	v, err := semver.NewVersion(reportedVersion)
	if err != nil {
		return nil, fzerr.Wrap(fzerr.CategoryCoverageABI, "ABI_UNPARSEABLE",
			fmt.Sprintf("could not parse reported SanCov ABI version %q", reportedVersion),
			map[string]interface{}{"reported": reportedVersion}, err)
	}

	constraint, err := semver.NewConstraint(SupportedRange)
	if err != nil {
		panic("sancovabi: invalid built-in constraint: " + err.Error())
	}

	if !constraint.Check(v) {
		return nil, fzerr.CoverageABIMismatch(v.String(), SupportedRange)
	}

	return v, nil
}
