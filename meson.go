package meson

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/mesonext/meson/internal/diag"
)

// Config holds the resolved meson executable and the parameters of one
// build. Create it with Find, adjust it through the setters, then hand
// it to Build exactly once.
type Config struct {
	mesonPath string
	version   Version

	nativeFile string
	crossFile  string
	outPath    string

	options map[string]string

	profile    string
	profileSet bool

	env Env

	stdout io.Writer
	stderr io.Writer

	consumed bool
}

// Find locates the system meson installation and queries its version.
func Find() (*Config, error) {
	return FindEnv(SystemEnv())
}

// FindEnv is Find with an explicit environment lookup.
func FindEnv(env Env) (*Config, error) {
	path := resolveMeson(env)
	version, err := queryVersion(path)
	if err != nil {
		return nil, err
	}
	return &Config{
		mesonPath: path,
		version:   version,
		options:   make(map[string]string),
		env:       env,
	}, nil
}

// resolveMeson picks the executable to run. A per-target override
// (MESON_<TARGET upper-snake>, only consulted when TARGET is set) wins
// over the generic MESON override, which wins over the plain command
// name. Resolution itself never fails; a missing tool only surfaces
// when it is first spawned.
func resolveMeson(env Env) string {
	if target, ok := env("TARGET"); ok {
		key := "MESON_" + strings.ReplaceAll(strings.ToUpper(target), "-", "_")
		if path, ok := env(key); ok {
			return path
		}
	}
	if path, ok := env("MESON"); ok {
		return path
	}
	return "meson"
}

// queryVersion runs <meson> --version and parses the trimmed output.
func queryVersion(mesonPath string) (Version, error) {
	out, err := exec.Command(mesonPath, "--version").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Version{}, statusError(PhaseVersion, exitErr)
		}
		return Version{}, errors.Mark(errors.Wrapf(err, "failed to run %s --version", mesonPath), ErrProcessLaunch)
	}
	if !utf8.Valid(out) {
		return Version{}, errors.Mark(errors.Newf("%s --version wrote invalid UTF-8", mesonPath), ErrInvalidUTF8)
	}
	return ParseVersion(string(out))
}

// MesonPath returns the resolved meson executable path or command name.
func (c *Config) MesonPath() string { return c.mesonPath }

// MesonVersion returns the version reported by meson --version.
func (c *Config) MesonVersion() Version { return c.version }

// SetNativeFile sets the meson native file passed as --native-file.
func (c *Config) SetNativeFile(path string) { c.nativeFile = path }

// SetCrossFile sets the meson cross file passed as --cross-file.
func (c *Config) SetCrossFile(path string) { c.crossFile = path }

// SetOutPath overrides the OUT_DIR environment variable. The build and
// install directories are derived beneath it.
func (c *Config) SetOutPath(path string) { c.outPath = path }

// SetOption sets a project option emitted as -D<key>=<value>. An
// existing value for key is overwritten.
func (c *Config) SetOption(key, value string) { c.options[key] = value }

// SetProfile sets the build profile passed as --buildtype, verbatim.
// Setting it to "" omits the --buildtype flag entirely.
func (c *Config) SetProfile(profile string) {
	c.profile = profile
	c.profileSet = true
}

// SetStdout redirects the driven tool's standard output (default
// os.Stdout).
func (c *Config) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr redirects the driven tool's standard error (default
// os.Stderr).
func (c *Config) SetStderr(w io.Writer) { c.stderr = w }

// BuildDir returns <out>/build, where meson setup is pointed.
func (c *Config) BuildDir() (string, error) {
	out, err := c.outDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(out, "build"), nil
}

// InstallDir returns <out>/install, passed to meson as --prefix.
func (c *Config) InstallDir() (string, error) {
	out, err := c.outDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(out, "install"), nil
}

// Build runs configure, build and install for the meson project in
// sourceDir, aborting on the first failure. It consumes the
// configuration: a second call fails with ErrConfigConsumed.
func (c *Config) Build(sourceDir string) error {
	if c.consumed {
		return errors.Mark(errors.Newf("failed to build %s: configuration already consumed", sourceDir), ErrConfigConsumed)
	}
	c.consumed = true

	out, err := c.outDir()
	if err != nil {
		return err
	}
	buildDir := filepath.Join(out, "build")
	installDir := filepath.Join(out, "install")

	if err := c.configure(sourceDir, buildDir, installDir); err != nil {
		return err
	}

	// Defensive when configure was skipped by the sentinel check.
	for _, dir := range []string{buildDir, installDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if err := c.run(PhaseBuild, sourceDir, "build", "-C", buildDir); err != nil {
		return err
	}
	return c.run(PhaseInstall, sourceDir, "install", "-C", buildDir)
}

// configure runs meson setup unless a previous setup already completed
// (meson writes build.ninja into the build directory on success).
func (c *Config) configure(sourceDir, buildDir, installDir string) error {
	if configured(buildDir) {
		return nil
	}
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return err
	}

	args := []string{"setup"}
	if profile := c.resolveProfile(); profile != "" {
		args = append(args, "--buildtype", profile)
	} else {
		diag.Infof("profile is empty, ignoring the --buildtype option")
	}
	args = append(args, c.optionArgs()...)
	if c.nativeFile != "" {
		args = append(args, "--native-file", c.nativeFile)
	}
	if c.crossFile != "" {
		args = append(args, "--cross-file", c.crossFile)
	}
	args = append(args, "--prefix", installDir, sourceDir)

	return c.run(PhaseConfigure, sourceDir, args...)
}

func configured(buildDir string) bool {
	_, err := os.Stat(filepath.Join(buildDir, "build.ninja"))
	return err == nil
}

// optionArgs renders the options map as -D flags in sorted key order.
func (c *Config) optionArgs() []string {
	if len(c.options) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.options))
	for k := range c.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, "-D"+k+"="+c.options[k])
	}
	return args
}

// resolveProfile returns the --buildtype value. An explicit profile
// wins. Otherwise PROFILE is consulted: "debug" and "release" map to
// themselves, an unrecognized value warns and falls back to "release",
// and an absent variable defaults to "release" without a warning.
func (c *Config) resolveProfile() string {
	if c.profileSet {
		return c.profile
	}
	profile, ok := c.env("PROFILE")
	if !ok {
		return "release"
	}
	switch profile {
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		diag.Warnf("PROFILE %q is unknown, using release; override it with SetProfile", profile)
		return "release"
	}
}

// outDir resolves the output directory: the explicit out path if set,
// otherwise OUT_DIR. An absent OUT_DIR is a programmer error (the
// caller is not running inside a build script) and is never silently
// defaulted.
func (c *Config) outDir() (string, error) {
	if c.outPath != "" {
		return c.outPath, nil
	}
	if out, ok := c.env("OUT_DIR"); ok {
		return out, nil
	}
	return "", errors.Mark(errors.New("OUT_DIR is not set and no out path was given; are you running outside of a build script?"), ErrOutDirNotSet)
}

// run spawns one meson subprocess with cwd = dir and applies the
// uniform status handling shared by all phases.
func (c *Config) run(phase Phase, dir string, args ...string) error {
	cmd := exec.Command(c.mesonPath, args...)
	cmd.Dir = dir
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return statusError(phase, exitErr)
		}
		return errors.Mark(errors.Wrapf(err, "failed to run %s %s", c.mesonPath, args[0]), ErrProcessLaunch)
	}
	return nil
}

// statusError converts an abnormal wait status into the per-phase
// error: a non-zero exit carries its code, a signal death carries none.
func statusError(phase Phase, exitErr *exec.ExitError) error {
	if code := exitErr.ExitCode(); code >= 0 {
		return &ExitError{Phase: phase, Code: code}
	}
	return &SignalError{Phase: phase, Signal: signalName(exitErr)}
}
