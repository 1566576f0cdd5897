// Package types provides type-safe constants for the bootstrap manifest.
package types

import (
	"fmt"
	"strings"
)

// FetchPolicy controls when the update check fetches an artifact.
type FetchPolicy string

const (
	// FetchAlways fetches (or verifies) the artifact on every update check.
	FetchAlways FetchPolicy = "always"
	// FetchFirstRun fetches the artifact only when the primary artifact was
	// absent before the check started.
	FetchFirstRun FetchPolicy = "first-run"
)

// AllFetchPolicies returns all valid fetch policies.
func AllFetchPolicies() []FetchPolicy {
	return []FetchPolicy{FetchAlways, FetchFirstRun}
}

// Validate checks if the FetchPolicy is a valid value.
// Empty policy is considered valid (defaults to always).
func (p FetchPolicy) Validate() error {
	switch p {
	case FetchAlways, FetchFirstRun, "":
		return nil
	default:
		return fmt.Errorf("invalid fetch policy '%s' (must be always or first-run)", p)
	}
}

// String returns the string representation of the FetchPolicy.
func (p FetchPolicy) String() string {
	return string(p)
}

// IsFirstRun returns true if the artifact is only fetched on first run.
func (p FetchPolicy) IsFirstRun() bool {
	return p == FetchFirstRun
}

// OrDefault returns FetchAlways for an empty policy.
func (p FetchPolicy) OrDefault() FetchPolicy {
	if p == "" {
		return FetchAlways
	}
	return p
}

// ParseFetchPolicy parses a string into a FetchPolicy.
// Returns an error if the string is not a valid policy.
func ParseFetchPolicy(s string) (FetchPolicy, error) {
	p := FetchPolicy(strings.ToLower(strings.TrimSpace(s)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p.OrDefault(), nil
}
