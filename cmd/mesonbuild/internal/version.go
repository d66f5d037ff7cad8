package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesonext/meson"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the resolved Meson executable and its version",
	Long:  `Version resolves the Meson executable from the environment, queries it and prints the parsed version.`,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	config, err := meson.Find()
	if err != nil {
		return fmt.Errorf("failed to find meson: %w", err)
	}

	fmt.Printf("%s %s\n", config.MesonPath(), config.MesonVersion())
	return nil
}
