package config

import (
	"strings"
	"testing"

	"github.com/earthsworth/celestial-bootstrap/internal/types"
)

func validManifest() *Manifest {
	return &Manifest{
		Version: 1,
		Primary: Artifact{
			URL:    "https://example.com/app.jar",
			Path:   ".bootstrap/app.jar",
			SHA256: testDigest,
			Policy: types.FetchAlways,
		},
		Artifacts: []Artifact{
			{URL: "https://example.com/agent.jar", Path: "javaagents/agent.jar", Policy: types.FetchFirstRun},
		},
	}
}

func TestValidDigest(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{testDigest, true},
		{strings.ToUpper(testDigest), false},
		{testDigest[:63], false},
		{testDigest + "0", false},
		{strings.Repeat("g", 64), false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidDigest(tt.in); got != tt.want {
			t.Errorf("ValidDigest(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *Manifest)
		wantErr string
	}{
		{"valid", func(m *Manifest) {}, ""},
		{"wrong version", func(m *Manifest) { m.Version = 2 }, "version"},
		{"missing url", func(m *Manifest) { m.Primary.URL = "" }, "primary.url"},
		{"bad scheme", func(m *Manifest) { m.Primary.URL = "ftp://example.com/app.jar" }, "primary.url"},
		{"missing host", func(m *Manifest) { m.Primary.URL = "https:///app.jar" }, "primary.url"},
		{"missing path", func(m *Manifest) { m.Primary.Path = " " }, "primary.path"},
		{"bad digest", func(m *Manifest) { m.Primary.SHA256 = "abc" }, "primary.sha256"},
		{"first-run primary", func(m *Manifest) { m.Primary.Policy = types.FetchFirstRun }, "primary.policy"},
		{"bad policy", func(m *Manifest) { m.Artifacts[0].Policy = "weekly" }, "artifacts[0].policy"},
		{"duplicate path", func(m *Manifest) { m.Artifacts[0].Path = m.Primary.Path }, "artifacts[0].path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)
			err := Validate(m)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "primary.url", Message: "url is required"}
	if got := err.Error(); got != "primary.url: url is required" {
		t.Errorf("Error() = %q", got)
	}
}
