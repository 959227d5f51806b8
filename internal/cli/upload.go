package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"pkgforge/internal/registry"
)

var (
	uploadName     string
	uploadVersion  string
	uploadFileName string
	uploadType     string
	uploadStatus   string
	uploadProgress bool
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <project> <path...>",
	Short: "Upload artifacts to a project's package registry",
	Long: `Upload one or more files as generic packages.

Paths may be glob patterns ('dist/**/*.tar.gz'). Without --name the
package name is derived from each file name; without --version the
package version defaults to 1.0.0. Uploading a (name, version, file)
triple that already exists is refused.

Examples:
  pkgforge upload 42 build/app.tar.gz
  pkgforge upload mygroup/myproject dist/**/*.zip --version 2.1.0
  pkgforge upload 42 big.iso --progress`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(args[0], args[1:])
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "package name (default: file name without extension)")
	uploadCmd.Flags().StringVar(&uploadVersion, "version", "", "package version (default: 1.0.0)")
	uploadCmd.Flags().StringVar(&uploadFileName, "file-name", "", "remote file name (default: local base name)")
	uploadCmd.Flags().StringVar(&uploadType, "type", "", "package type (only 'generic' is supported)")
	uploadCmd.Flags().StringVar(&uploadStatus, "status", "", "package status: default, hidden or processing")
	uploadCmd.Flags().BoolVar(&uploadProgress, "progress", false, "show upload progress")
}

func runUpload(project string, patterns []string) error {
	paths := expandPatterns(patterns)
	if len(paths) == 0 {
		return fmt.Errorf("no files matched")
	}

	if len(paths) > 1 && (uploadName != "" || uploadFileName != "") {
		return fmt.Errorf("--name and --file-name only apply to single-file uploads")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	failed := 0
	for _, path := range paths {
		if err := uploadOne(ctx, client, project, path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to upload %s: %v\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to upload %d of %d file(s)", failed, len(paths))
	}
	return nil
}

func uploadOne(ctx context.Context, client *registry.Client, project, path string) error {
	req := registry.UploadRequest{
		ProjectID:   project,
		FilePath:    path,
		PackageName: uploadName,
		Version:     uploadVersion,
		FileName:    uploadFileName,
		PackageType: uploadType,
		Status:      uploadStatus,
	}

	if uploadProgress {
		req.Progress = func(transferred, total int64) {
			pct := 100.0
			if total > 0 {
				pct = float64(transferred) / float64(total) * 100
			}
			fmt.Printf("\r%s: %s / %s (%.1f%%)", path, formatBytes(transferred), formatBytes(total), pct)
			if transferred >= total {
				fmt.Println()
			}
		}
	}

	result, err := client.Packages.Upload(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %s v%s (%s, %s)\n",
		result.PackageName, result.PackageVersion, result.FileName, formatBytes(result.FileSize))
	if verbose && result.PackageID != nil {
		fmt.Printf("Package id: %d\n", *result.PackageID)
	}
	return nil
}

// expandPatterns resolves glob patterns to file paths. An argument that
// matches nothing is kept verbatim so the upload pipeline reports the
// missing file.
func expandPatterns(patterns []string) []string {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil || len(matches) == 0 {
			paths = append(paths, pattern)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}
