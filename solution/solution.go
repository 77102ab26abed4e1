// Package solution implements solution browsing and sharing commands.
package solution

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/auth"
	"github.com/agiantii/bcoj/internal/cli"
	"github.com/agiantii/bcoj/internal/markdown"
)

// NewCmd instantiates and returns the solution command.
func NewCmd(client *api.Client, credentials *auth.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solution",
		Short: "Browse and share solutions",
	}
	cmd.AddCommand(newListCmd(client))
	cmd.AddCommand(newSearchCmd(client))
	cmd.AddCommand(newAddCmd(client, credentials))
	return cmd
}

func newListCmd(client *api.Client) *cobra.Command {
	var opts struct {
		PageNum  int
		PageSize int
		Full     bool
	}
	cmd := &cobra.Command{
		Use:   "list <problemId>",
		Short: "List the approved solutions of a problem",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			problemID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			solutions, err := client.GetSolutionsByProblemID(cmd.Context(), problemID, opts.PageNum, opts.PageSize)
			cobra.CheckErr(err)

			cli.Title("SOLUTIONS FOR PROBLEM %d", problemID)
			for _, solution := range solutions {
				cli.UserInput("%6d  %-50s  %d likes\n", solution.ID, solution.Title, solution.Likes)
				if opts.Full {
					fmt.Print(markdown.Render(solution.Content, cli.Width()))
					cli.Separator()
				}
			}
		},
	}
	cmd.Flags().IntVar(&opts.PageNum, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 10, "page size")
	cmd.Flags().BoolVar(&opts.Full, "full", false, "render the full content of each solution")
	return cmd
}

func newSearchCmd(client *api.Client) *cobra.Command {
	var opts struct {
		ProblemID int64
		PageNum   int
		PageSize  int
	}
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search approved solutions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request := &api.SearchSolutionsRequest{
				Keyword:   args[0],
				Visible:   1,
				PageNum:   opts.PageNum,
				PageSize:  opts.PageSize,
				ProblemID: opts.ProblemID,
			}
			solutions, err := client.SearchSolutions(cmd.Context(), request)
			cobra.CheckErr(err)
			for _, solution := range solutions {
				cli.UserInput("%6d  problem %-6d  %s\n", solution.ID, solution.ProblemID, solution.Title)
			}
		},
	}
	cmd.Flags().Int64Var(&opts.ProblemID, "problem", 0, "restrict to a problem")
	cmd.Flags().IntVar(&opts.PageNum, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 10, "page size")
	return cmd
}

func newAddCmd(client *api.Client, credentials *auth.Store) *cobra.Command {
	var opts struct {
		Title string
	}
	cmd := &cobra.Command{
		Use:   "add <problemId> <file.md>",
		Short: "Share a solution for a problem",
		Long:  "Share a markdown solution for a problem. It becomes visible once a moderator approves it.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			problemID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			content, err := os.ReadFile(args[1])
			cobra.CheckErr(err)
			userID, err := credentials.UserID()
			cobra.CheckErr(err)

			request := &api.AddSolutionRequest{
				ProblemID: problemID,
				UserID:    userID,
				Title:     opts.Title,
				Content:   string(content),
			}
			cobra.CheckErr(client.AddSolution(cmd.Context(), request))
			cli.UserCommand("solution submitted for review\n")
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "title of the solution")
	cmd.MarkFlagRequired("title")
	return cmd
}
