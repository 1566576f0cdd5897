// Package config handles the artifact manifest, launcher settings and the
// on-disk directory layout.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/earthsworth/celestial-bootstrap/internal/types"
)

// ManifestVersion is the only manifest schema version understood.
const ManifestVersion = 1

// Artifact is a remote file the launcher needs locally.
type Artifact struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	URL  string `yaml:"url" toml:"url" json:"url"`
	// Relative to the base directory unless absolute.
	Path string `yaml:"path" toml:"path" json:"path"`
	// Lowercase hex; empty disables verification.
	SHA256 string            `yaml:"sha256,omitempty" toml:"sha256,omitempty" json:"sha256,omitempty"`
	Policy types.FetchPolicy `yaml:"policy,omitempty" toml:"policy,omitempty" json:"policy,omitempty"`
}

// Resolve returns the artifact's destination under baseDir.
func (a Artifact) Resolve(baseDir string) string {
	if filepath.IsAbs(a.Path) {
		return a.Path
	}
	return filepath.Join(baseDir, filepath.FromSlash(a.Path))
}

// DisplayName returns the name if set, otherwise the file name of the path.
func (a Artifact) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return filepath.Base(a.Path)
}

// Manifest lists the artifacts an update check keeps in place.
type Manifest struct {
	Version   int        `yaml:"version" toml:"version" json:"version"`
	Primary   Artifact   `yaml:"primary" toml:"primary" json:"primary"`
	Artifacts []Artifact `yaml:"artifacts,omitempty" toml:"artifacts,omitempty" json:"artifacts,omitempty"`
}

// Pinned release artifacts.
const (
	celestialURL    = "https://files.earthsworth.org/celestial-3.2.1-SNAPSHOT-fatjar.jar"
	celestialSHA256 = "561beb82c97f03efd25b57f502be20a1ffec8ec87c8345bfcc07ad6c0573e678"

	debuggerURL    = "https://github.com/earthsworth/LunarDebugger/releases/download/v1.2.0/LunarDebugger-fatjar.jar"
	debuggerSHA256 = "9f99d23eae80c96871341c315b79efedbba9d64d3584e2434109f9110de59f8d"
)

// DefaultManifest returns the manifest pinned for this release.
func DefaultManifest() *Manifest {
	return &Manifest{
		Version: ManifestVersion,
		Primary: Artifact{
			Name:   "celestial",
			URL:    celestialURL,
			Path:   BootstrapDir + "/" + PrimaryJarName,
			SHA256: celestialSHA256,
			Policy: types.FetchAlways,
		},
		Artifacts: []Artifact{
			{
				Name:   "lunar-debugger",
				URL:    debuggerURL,
				Path:   AgentDir + "/LunarDebugger.jar",
				SHA256: debuggerSHA256,
				Policy: types.FetchFirstRun,
			},
		},
	}
}

// LoadManifest reads, parses and validates the manifest at path. An empty
// path returns the default manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return DefaultManifest(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect file format for %s", path)
	}

	manifest, err := parse(content, format)
	if err != nil {
		return nil, err
	}

	if err := Validate(manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}
