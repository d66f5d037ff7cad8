package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mesonbuild",
	Short: "mesonbuild drives Meson builds from build scripts",
	Long:  `mesonbuild locates the system Meson installation and runs its setup, build and install steps against a project source tree.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
