package meson

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Phase identifies the lifecycle step a meson subprocess was running
// when it failed.
type Phase string

const (
	PhaseVersion   Phase = "version"
	PhaseConfigure Phase = "configure"
	PhaseBuild     Phase = "build"
	PhaseInstall   Phase = "install"
)

// Sentinel errors. Test for them with errors.Is.
var (
	// ErrProcessLaunch marks failures to spawn the meson executable at
	// all (not found, not executable).
	ErrProcessLaunch = errors.New("meson could not be launched")

	// ErrInvalidUTF8 marks captured meson output that is not valid text.
	ErrInvalidUTF8 = errors.New("meson output is not valid UTF-8")

	// ErrVersionParse marks meson --version output that is not a
	// semantic version.
	ErrVersionParse = errors.New("meson version is not a semantic version")

	// ErrOutDirNotSet is returned when no out path was set and OUT_DIR
	// is absent from the environment.
	ErrOutDirNotSet = errors.New("OUT_DIR is not set")

	// ErrConfigConsumed is returned by Config.Build after the
	// configuration has already driven a build.
	ErrConfigConsumed = errors.New("build configuration already consumed")
)

// ExitError reports a meson subprocess that terminated normally with a
// non-zero exit code.
type ExitError struct {
	Phase Phase
	Code  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("meson %s exited unsuccessfully with code %d", e.Phase, e.Code)
}

// SignalError reports a meson subprocess terminated by a signal. No
// exit code is available in this case.
type SignalError struct {
	Phase  Phase
	Signal string // signal name if known, otherwise empty
}

func (e *SignalError) Error() string {
	if e.Signal == "" {
		return fmt.Sprintf("meson %s exited by signal", e.Phase)
	}
	return fmt.Sprintf("meson %s exited by signal %s", e.Phase, e.Signal)
}
