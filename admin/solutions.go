package admin

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/cli"
	"github.com/agiantii/bcoj/internal/markdown"
)

func newSolutionsCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solutions",
		Short: "Moderate submitted solutions",
	}
	cmd.AddCommand(newReviewCmd(client))
	cmd.AddCommand(newApproveCmd(client))
	cmd.AddCommand(newRejectCmd(client))
	return cmd
}

func newReviewCmd(client *api.Client) *cobra.Command {
	var opts struct {
		PageSize int
	}
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review pending solutions one by one",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			request := &api.SearchSolutionsRequest{
				Visible:  0,
				PageNum:  1,
				PageSize: opts.PageSize,
			}
			solutions, err := client.SearchSolutions(ctx, request)
			cobra.CheckErr(err)
			if len(solutions) == 0 {
				cli.Notice("no pending solutions\n")
				return
			}

			for _, solution := range solutions {
				cli.Title("#%d %s (problem %d, user %d)", solution.ID, solution.Title, solution.ProblemID, solution.UserID)
				fmt.Print(markdown.Render(solution.Content, cli.Width()))
				if cli.QueryUser("Approve this solution?") {
					cobra.CheckErr(client.ApproveSolution(ctx, solution.ID))
					cli.UserCommand("approved\n")
				} else {
					cobra.CheckErr(client.RejectSolution(ctx, solution.ID))
					cli.UserCommand("rejected\n")
				}
			}
		},
	}
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 20, "maximum number of solutions to review")
	return cmd
}

func newApproveCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <solutionId>",
		Short: "Approve a solution",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			solutionID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			cobra.CheckErr(client.ApproveSolution(cmd.Context(), solutionID))
			cli.UserCommand("approved\n")
		},
	}
}

func newRejectCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <solutionId>",
		Short: "Reject a solution",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			solutionID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			cobra.CheckErr(client.RejectSolution(cmd.Context(), solutionID))
			cli.UserCommand("rejected\n")
		},
	}
}
