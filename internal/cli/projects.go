package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pkgforge/internal/registry"
	"pkgforge/internal/session"
)

var (
	projectsSearchIn  string
	projectsNamespace string
	projectsRecent    int
)

// projectsCmd represents the projects command
var projectsCmd = &cobra.Command{
	Use:   "projects [query]",
	Short: "Discover projects on the forge",
	Long: `List or search projects.

Without arguments, lists projects owned by the configured credential.
With a query, searches and filters against --search-in (name, path or
description).

Examples:
  pkgforge projects
  pkgforge projects docker --search-in name
  pkgforge projects --namespace mygroup
  pkgforge projects --recent 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return runProjects(query)
	},
}

func init() {
	projectsCmd.Flags().StringVar(&projectsSearchIn, "search-in", "name", "search field: name, path or description")
	projectsCmd.Flags().StringVar(&projectsNamespace, "namespace", "", "list projects under a namespace")
	projectsCmd.Flags().IntVar(&projectsRecent, "recent", 0, "show the N most recently active projects")
}

func runProjects(query string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var projects []session.ProjectInfo

	switch {
	case projectsRecent > 0:
		projects, err = client.Projects.Recent(ctx, projectsRecent)
	case projectsNamespace != "":
		projects, err = client.Projects.ByNamespace(ctx, projectsNamespace)
	case query != "":
		projects, err = client.Projects.Search(ctx, query, registry.SearchField(projectsSearchIn))
	default:
		projects, err = client.Projects.ListAll(ctx)
	}
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	for _, p := range projects {
		fmt.Printf("%-8d %s\n", p.ID, p.PathWithNamespace)
		if verbose && p.Description != "" {
			fmt.Printf("         %s\n", p.Description)
		}
	}
	return nil
}
