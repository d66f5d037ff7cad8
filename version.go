package meson

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/semver"
)

// Version is a semantic version as reported by meson --version.
type Version struct {
	Major int
	Minor int
	Patch int

	Prerelease string // without the leading "-"
	Build      string // without the leading "+"
}

// ParseVersion parses text such as "1.3.2" or "1.4.0-rc1+sha.5114f85"
// into a Version. All three numeric components are required and any
// pre-release/build suffix must follow the semver grammar. Leading and
// trailing whitespace is ignored.
func ParseVersion(text string) (Version, error) {
	trimmed := strings.TrimSpace(text)
	v := "v" + trimmed
	if !semver.IsValid(v) {
		return Version{}, errors.Mark(errors.Newf("failed to parse version %q", trimmed), ErrVersionParse)
	}

	pre := semver.Prerelease(v)
	build := semver.Build(v)
	core := strings.TrimSuffix(strings.TrimSuffix(v, build), pre)

	// semver.IsValid tolerates "v1" and "v1.2"; meson always reports
	// all three components.
	parts := strings.Split(strings.TrimPrefix(core, "v"), ".")
	if len(parts) != 3 {
		return Version{}, errors.Mark(errors.Newf("failed to parse version %q: want major.minor.patch", trimmed), ErrVersionParse)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, errors.Mark(errors.Wrapf(err, "failed to parse version %q", trimmed), ErrVersionParse)
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: strings.TrimPrefix(pre, "-"),
		Build:      strings.TrimPrefix(build, "+"),
	}, nil
}

// String reassembles the version in semver form.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// AtLeast reports whether v is no older than min, given as "X.Y.Z".
// Build metadata is ignored, as in semver precedence.
func (v Version) AtLeast(min string) bool {
	return semver.Compare("v"+v.String(), "v"+min) >= 0
}
