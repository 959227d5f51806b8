package cli

import (
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pkgforge",
	Short: "pkgforge - manage generic packages in a forge package registry",
	Long: `pkgforge uploads, downloads and manages generic binary artifacts in the
package registry of a forge project.

Configure a forge with 'pkgforge forge add', store a token with
'pkgforge auth token', then upload and download artifacts by
(package name, version, file name).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(forgeCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(versionCmd)
}
