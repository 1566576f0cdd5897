package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Directory layout under the user's home directory:
//
//	~/.cubewhy/lunarcn/
//	    .bootstrap/celestial.jar
//	    javaagents/LunarDebugger.jar
const (
	AppDir         = ".cubewhy"
	DefaultProfile = "lunarcn"
	BootstrapDir   = ".bootstrap"
	AgentDir       = "javaagents"
	PrimaryJarName = "celestial.jar"
)

// BaseDirFor returns <home>/.cubewhy/<profile>.
func BaseDirFor(home, profile string) string {
	if profile == "" {
		profile = DefaultProfile
	}
	return filepath.Join(home, AppDir, profile)
}

// ResolveBaseDir returns explicit if set, otherwise the default profile
// directory under the user's home.
func ResolveBaseDir(explicit, profile string) (string, error) {
	if explicit != "" {
		return filepath.Clean(explicit), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return BaseDirFor(home, profile), nil
}
