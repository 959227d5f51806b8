package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <project> <package-id>",
	Short: "Show a package's full attributes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		packageID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid package id %q: %w", args[1], err)
		}
		return runGet(args[0], packageID)
	},
}

func runGet(project string, packageID int) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	attrs, err := client.Packages.Get(context.Background(), project, packageID)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-20s %v\n", k+":", attrs[k])
	}
	return nil
}
