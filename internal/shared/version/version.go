// Package version reports the build version of the service.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is overridden at build time with
// -ldflags "-X github.com/orris-inc/moderation/internal/shared/version.Current=v1.2.3".
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether version is a valid semantic version rather
// than a development build such as "dev".
func IsRelease(version string) bool {
	return semver.IsValid(Normalize(version))
}

// Info describes the running build.
type Info struct {
	Version string `json:"version"`
	Release bool   `json:"release"`
}

// Get returns the build info for Current.
func Get() Info {
	return Info{
		Version: Current,
		Release: IsRelease(Current),
	}
}
