package java

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern captures the version number from `java -version` output,
// quoted (openjdk version "21.0.1") or not (java version 21).
var versionPattern = regexp.MustCompile(`version "?(\d+(?:\.\d+){0,2})`)

// MatchesMajor reports whether output carries the `version "N` or
// `version N` marker for the given major version.
func MatchesMajor(output string, major int) bool {
	m := strconv.Itoa(major)
	return strings.Contains(output, `version "`+m) || strings.Contains(output, "version "+m)
}

// ParseVersionOutput extracts the runtime version from `java -version`
// output.
func ParseVersionOutput(output string) (*semver.Version, error) {
	matches := versionPattern.FindStringSubmatch(output)
	if matches == nil {
		return nil, fmt.Errorf("no version string in output %q", firstLine(output))
	}

	v, err := semver.NewVersion(matches[1])
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", matches[1], err)
	}
	return v, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
