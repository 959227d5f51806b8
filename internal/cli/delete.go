package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <project> <package-id>",
	Short: "Delete a package from a project",
	Long: `Delete a package (and all its files) by id.

Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		packageID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid package id %q: %w", args[1], err)
		}
		return runDelete(args[0], packageID)
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")
}

func runDelete(project string, packageID int) error {
	if !deleteYes {
		fmt.Printf("Delete package %d from project %s? [y/N] ", packageID, project)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Packages.Delete(context.Background(), project, packageID); err != nil {
		return err
	}

	fmt.Printf("Deleted package %d\n", packageID)
	return nil
}
