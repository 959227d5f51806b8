package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pkgforge/internal/registry"
)

var (
	listType string
	listName string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list <project>",
	Short:   "List packages in a project",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(args[0])
	},
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "filter by package type (generic, pypi, npm, maven, ...)")
	listCmd.Flags().StringVar(&listName, "name", "", "filter by package name")
}

func runList(project string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	packages, err := client.Packages.List(context.Background(), project, registry.ListFilter{
		PackageType: listType,
		PackageName: listName,
	})
	if err != nil {
		return err
	}

	if len(packages) == 0 {
		fmt.Println("No packages found.")
		return nil
	}

	fmt.Printf("%-8s %-30s %-15s %-10s %s\n", "ID", "NAME", "VERSION", "TYPE", "CREATED")
	for _, pkg := range packages {
		created := ""
		if !pkg.CreatedAt.IsZero() {
			created = pkg.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("%-8d %-30s %-15s %-10s %s\n", pkg.ID, pkg.Name, pkg.Version, pkg.PackageType, created)
	}
	return nil
}
