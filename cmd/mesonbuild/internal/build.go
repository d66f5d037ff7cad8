package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesonext/meson"
	"github.com/mesonext/meson/pkgs/buildfile"
)

var (
	buildFilePath   string
	buildOut        string
	buildProfile    string
	buildNativeFile string
	buildCrossFile  string
	buildOptions    []string
	buildQuiet      bool
)

var buildCmd = &cobra.Command{
	Use:   "build [sourceDir]",
	Short: "Configure, build and install a Meson project",
	Long: `Build runs meson setup, build and install for the project in sourceDir.
Settings are read from the build file when present; flags override it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildFilePath, "file", "f", "mesonbuild.yaml", "Build file to read settings from")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output path holding the build and install directories")
	buildCmd.Flags().StringVar(&buildProfile, "profile", "", "Build profile passed as --buildtype")
	buildCmd.Flags().StringVar(&buildNativeFile, "native-file", "", "Path to a Meson native file")
	buildCmd.Flags().StringVar(&buildCrossFile, "cross-file", "", "Path to a Meson cross file")
	buildCmd.Flags().StringArrayVarP(&buildOptions, "option", "D", nil, "Project option as key=value (repeatable)")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "Discard Meson's own output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	config, err := meson.Find()
	if err != nil {
		return fmt.Errorf("failed to find meson: %w", err)
	}

	bf, err := loadBuildFile(buildFilePath, cmd.Flags().Changed("file"))
	if err != nil {
		return err
	}
	applyBuildFile(config, bf)

	sourceDir := "."
	if bf.Source != "" {
		sourceDir = bf.Source
	}
	if len(args) == 1 {
		sourceDir = args[0]
	}

	if buildOut != "" {
		config.SetOutPath(buildOut)
	}
	if buildProfile != "" {
		config.SetProfile(buildProfile)
	}
	if buildNativeFile != "" {
		config.SetNativeFile(buildNativeFile)
	}
	if buildCrossFile != "" {
		config.SetCrossFile(buildCrossFile)
	}
	options, err := parseOptionArgs(buildOptions)
	if err != nil {
		return err
	}
	for key, value := range options {
		config.SetOption(key, value)
	}

	if buildQuiet {
		config.SetStdout(io.Discard)
		config.SetStderr(io.Discard)
	}

	if err := config.Build(sourceDir); err != nil {
		return fmt.Errorf("failed to build %s: %w", sourceDir, err)
	}
	return nil
}

// loadBuildFile reads the build file. A missing file is only an error
// when the user pointed at it explicitly.
func loadBuildFile(path string, explicit bool) (*buildfile.File, error) {
	bf, err := buildfile.Parse(path, nil)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &buildfile.File{}, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return bf, nil
}

func applyBuildFile(config *meson.Config, bf *buildfile.File) {
	if bf.Out != "" {
		config.SetOutPath(bf.Out)
	}
	if bf.Profile != "" {
		config.SetProfile(bf.Profile)
	}
	if bf.NativeFile != "" {
		config.SetNativeFile(bf.NativeFile)
	}
	if bf.CrossFile != "" {
		config.SetCrossFile(bf.CrossFile)
	}
	for key, value := range bf.Options {
		config.SetOption(key, value)
	}
}

// parseOptionArgs parses repeated -D key=value flags.
func parseOptionArgs(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	options := make(map[string]string, len(raw))
	for _, opt := range raw {
		key, value, ok := strings.Cut(opt, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q, want key=value", opt)
		}
		options[key] = value
	}
	return options, nil
}
