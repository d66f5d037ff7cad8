// Package buildfile provides functionality for parsing mesonbuild
// project build files.
package buildfile

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File represents a project build file consumed by the mesonbuild CLI.
// All fields are optional; command-line flags override them.
type File struct {
	Source     string            `yaml:"source"`      // Project source directory
	Out        string            `yaml:"out"`         // Output path holding build/ and install/
	Profile    string            `yaml:"profile"`     // Build profile passed as --buildtype
	NativeFile string            `yaml:"native-file"` // Meson native file
	CrossFile  string            `yaml:"cross-file"`  // Meson cross file
	Options    map[string]string `yaml:"options"`     // Project options emitted as -D flags
}

// Parse reads and parses a build file from either provided data or a
// file path. If data is non-nil, it is used directly and the file
// parameter is ignored. Otherwise, the file is read from the provided
// path. Unknown keys are rejected.
func Parse(file string, data []byte) (*File, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader = f
	}

	var bf File

	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(&bf); err != nil && err != io.EOF {
		return nil, err
	}

	return &bf, nil
}
