package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the launcher reads for its
// own settings, e.g. CELESTIAL_BASE_DIR.
const EnvPrefix = "CELESTIAL"

// Setting keys. Flags of the same name are bound onto them.
const (
	KeyBaseDir  = "base-dir"
	KeyProfile  = "profile"
	KeyManifest = "manifest"
	KeyOutput   = "output"
	KeyVerbose  = "verbose"
	KeyDebug    = "debug"
	KeyQuiet    = "quiet"
	KeyNoDialog = "no-dialog"
)

// Settings holds the resolved launcher settings.
type Settings struct {
	BaseDir  string `json:"base_dir" yaml:"base_dir"`
	Profile  string `json:"profile" yaml:"profile"`
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Output   string `json:"output" yaml:"output"`
	Verbose  bool   `json:"verbose" yaml:"verbose"`
	Quiet    bool   `json:"quiet" yaml:"quiet"`
	NoDialog bool   `json:"no_dialog" yaml:"no_dialog"`
}

// NewViper returns a viper instance reading CELESTIAL_* environment
// variables, with defaults for every key.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBaseDir, "")
	v.SetDefault(KeyProfile, DefaultProfile)
	v.SetDefault(KeyManifest, "")
	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyNoDialog, false)
	return v
}

// LoadSettings resolves settings from v. The base directory falls back to
// the profile directory under the user's home.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Profile:  v.GetString(KeyProfile),
		Manifest: v.GetString(KeyManifest),
		Output:   v.GetString(KeyOutput),
		Verbose:  v.GetBool(KeyVerbose) || v.GetBool(KeyDebug),
		Quiet:    v.GetBool(KeyQuiet),
		NoDialog: v.GetBool(KeyNoDialog),
	}

	if s.Verbose && s.Quiet {
		return nil, fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	baseDir, err := ResolveBaseDir(v.GetString(KeyBaseDir), s.Profile)
	if err != nil {
		return nil, err
	}
	s.BaseDir = baseDir

	return s, nil
}
