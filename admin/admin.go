// Package admin implements the moderation and content-management commands.
package admin

import (
	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
)

// NewCmd instantiates and returns the admin command.
func NewCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderation and content management",
	}
	cmd.AddCommand(newSolutionsCmd(client))
	cmd.AddCommand(newProblemCmd(client))
	cmd.AddCommand(newContestCmd(client))
	cmd.AddCommand(newImageCmd(client))
	return cmd
}
