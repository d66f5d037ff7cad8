package meson

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"1.2.3", Version{Major: 1, Minor: 2, Patch: 3}},
		{"0.61.5", Version{Minor: 61, Patch: 5}},
		{"  1.2.3\n", Version{Major: 1, Minor: 2, Patch: 3}},
		{"1.2.3-rc1", Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc1"}},
		{"1.2.3+sha.5114f85", Version{Major: 1, Minor: 2, Patch: 3, Build: "sha.5114f85"}},
		{"1.2.3-rc.1+build.11", Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Build: "build.11"}},
		{"10.20.30", Version{Major: 10, Minor: 20, Patch: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVersionInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"not-a-version",
		"1",
		"1.2",
		"1.2.3.4",
		"v1.2.3",
		"01.2.3",
		"1.2.x",
		"1.2.3-",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseVersion(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrVersionParse), "error %v is not ErrVersionParse", err)
		})
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{Version{Major: 1, Minor: 2, Patch: 3}, "1.2.3"},
		{Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc1"}, "1.2.3-rc1"},
		{Version{Major: 1, Minor: 2, Patch: 3, Build: "meta"}, "1.2.3+meta"},
		{Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc1", Build: "meta"}, "1.2.3-rc1+meta"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}

func TestVersionAtLeast(t *testing.T) {
	v := Version{Major: 1, Minor: 4, Patch: 0}
	assert.True(t, v.AtLeast("1.4.0"))
	assert.True(t, v.AtLeast("1.3.9"))
	assert.True(t, v.AtLeast("0.61.5"))
	assert.False(t, v.AtLeast("1.4.1"))
	assert.False(t, v.AtLeast("2.0.0"))

	// A pre-release sorts before its release.
	rc := Version{Major: 1, Minor: 4, Patch: 0, Prerelease: "rc1"}
	assert.False(t, rc.AtLeast("1.4.0"))
	assert.True(t, rc.AtLeast("1.3.0"))
}
