package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var downloadOutput string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <project> <package> <version> <file>",
	Short: "Download an artifact from a project's package registry",
	Long: `Download one generic package file.

Without --output the file lands in the current directory under its
remote name. An --output naming an existing directory places the file
inside it; any other --output is used as the destination path.

Example:
  pkgforge download 42 my-app 1.0.0 app.tar.gz --output /tmp`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(args[0], args[1], args[2], args[3])
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "destination path or directory")
}

func runDownload(project, name, version, fileName string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	path, err := client.Packages.Download(context.Background(), project, name, version, fileName, downloadOutput)
	if err != nil {
		return err
	}

	fmt.Printf("Downloaded to %s\n", path)
	return nil
}
