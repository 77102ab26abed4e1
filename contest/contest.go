// Package contest implements contest browsing commands.
package contest

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/cli"
)

// NewCmd instantiates and returns the contest command.
func NewCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contest",
		Short: "Browse contests",
	}
	cmd.AddCommand(newListCmd(client))
	cmd.AddCommand(newProblemsCmd(client))
	return cmd
}

func newListCmd(client *api.Client) *cobra.Command {
	var opts struct {
		Keyword  string
		PageNum  int
		PageSize int
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contests",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			contests, err := client.SearchContests(cmd.Context(), opts.Keyword, opts.PageNum, opts.PageSize)
			cobra.CheckErr(err)

			cli.Title("CONTESTS")
			for _, contest := range contests {
				cli.UserInput("%6d  %-40s  %s -> %s (%d min)\n",
					contest.ID, contest.Title, contest.StartTime, contest.EndTime, contest.Duration)
			}
		},
	}
	cmd.Flags().StringVar(&opts.Keyword, "keyword", "", "filter by keyword")
	cmd.Flags().IntVar(&opts.PageNum, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 10, "page size")
	return cmd
}

func newProblemsCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "problems <contestId>",
		Short: "List the problems of a contest",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			contestID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			problems, err := client.GetContestProblems(cmd.Context(), contestID)
			cobra.CheckErr(err)

			for _, problem := range problems {
				cli.UserInput("%3d  %-40s  difficulty %d  (problem %d)\n",
					problem.ProblemSeq, problem.Title, problem.Difficulty, problem.ID)
			}
		},
	}
}
