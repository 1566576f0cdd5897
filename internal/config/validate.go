package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// digestPattern matches a lowercase hex SHA-256 digest.
var digestPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidDigest reports whether s is a lowercase hex SHA-256 digest.
func ValidDigest(s string) bool {
	return digestPattern.MatchString(s)
}

// ValidationError represents a manifest validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the manifest for required fields and valid values.
func Validate(m *Manifest) error {
	var errs []string

	if m.Version != ManifestVersion {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported manifest version %d (want %d)", m.Version, ManifestVersion),
		}.Error())
	}

	if err := validateArtifact("primary", m.Primary); err != nil {
		errs = append(errs, err.Error())
	}
	if m.Primary.Policy.IsFirstRun() {
		errs = append(errs, ValidationError{
			Field:   "primary.policy",
			Message: "primary artifact is always fetched",
		}.Error())
	}

	seen := map[string]string{m.Primary.Path: "primary"}
	for i, a := range m.Artifacts {
		field := fmt.Sprintf("artifacts[%d]", i)
		if err := validateArtifact(field, a); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if prev, ok := seen[a.Path]; ok {
			errs = append(errs, ValidationError{
				Field:   field + ".path",
				Message: fmt.Sprintf("path %s already used by %s", a.Path, prev),
			}.Error())
		}
		seen[a.Path] = field
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func validateArtifact(field string, a Artifact) error {
	if a.URL == "" {
		return ValidationError{Field: field + ".url", Message: "url is required"}
	}
	u, err := url.Parse(a.URL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return ValidationError{Field: field + ".url", Message: fmt.Sprintf("invalid url '%s' (must be http or https)", a.URL)}
	}

	if strings.TrimSpace(a.Path) == "" {
		return ValidationError{Field: field + ".path", Message: "path is required"}
	}

	if a.SHA256 != "" && !ValidDigest(a.SHA256) {
		return ValidationError{Field: field + ".sha256", Message: fmt.Sprintf("invalid sha256 '%s' (must be 64 hex characters)", a.SHA256)}
	}

	if err := a.Policy.Validate(); err != nil {
		return ValidationError{Field: field + ".policy", Message: err.Error()}
	}

	return nil
}
