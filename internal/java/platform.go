package java

import (
	"runtime"
	"strings"
)

// Platform describes the current system platform.
type Platform struct {
	OS   string // Operating system (darwin, linux, windows)
	Arch string // Architecture (amd64, arm64)
}

// executableNames maps GOOS to the Java launcher binary name. javaw.exe on
// windows avoids opening a console window.
var executableNames = map[string]string{
	"windows": "javaw.exe",
}

const defaultExecutableName = "java"

// Detect returns the current platform (OS and architecture).
func Detect() Platform {
	return Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// ExecutableName returns the Java launcher file name for this platform.
func (p Platform) ExecutableName() string {
	if name, ok := executableNames[p.OS]; ok {
		return name
	}
	return defaultExecutableName
}

// DownloadURL is where users are sent to get a Java 21 build.
const DownloadURL = "https://www.azul.com/downloads/?version=java-21-lts&package=jdk#zulu"

// InstallHint returns human-readable instructions for installing Java 21.
func (p Platform) InstallHint() string {
	var b strings.Builder
	b.WriteString("Java 21 was not found. Celestial bootstrap cannot download Java for you, please install it manually.\n")

	switch p.OS {
	case "linux":
		b.WriteString("Install it with your package manager, for example:\n")
		b.WriteString("  Ubuntu/Debian: sudo apt install openjdk-21-jdk\n")
		b.WriteString("  Fedora/RHEL:   sudo dnf install java-21-openjdk\n")
		b.WriteString("  Arch Linux:    sudo pacman -S jdk21-openjdk\n")
		b.WriteString("or download a build from:\n")
	case "darwin":
		b.WriteString("Install it with Homebrew (brew install openjdk@21) or download a build from:\n")
	default:
		b.WriteString("Download a build from:\n")
	}
	b.WriteString("  " + DownloadURL)
	return b.String()
}
