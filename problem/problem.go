// Package problem implements problem browsing commands.
package problem

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/cli"
	"github.com/agiantii/bcoj/internal/markdown"
)

// NewCmd instantiates and returns the problem command.
func NewCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Browse problems",
	}
	cmd.AddCommand(newListCmd(client))
	cmd.AddCommand(newDetailCmd(client))
	return cmd
}

func newListCmd(client *api.Client) *cobra.Command {
	var opts struct {
		Title    string
		Tag      string
		PageNum  int
		PageSize int
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List problems",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			request := &api.SearchProblemsRequest{
				TitleKeyword: opts.Title,
				TagName:      opts.Tag,
				PageNum:      opts.PageNum,
				PageSize:     opts.PageSize,
			}
			problems, err := client.SearchProblems(cmd.Context(), request)
			cobra.CheckErr(err)

			cli.Title("PROBLEMS (page %d)", opts.PageNum)
			for _, problem := range problems {
				tags := ""
				for _, tag := range problem.Tags {
					tags += " [" + tag.Name + "]"
				}
				cli.UserInput("%6d  %-40s  difficulty %d  %d/%d accepted%s\n",
					problem.ID, problem.Title, problem.Difficulty,
					problem.AcceptedCount, problem.SubmissionCount, tags)
			}
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "filter by title keyword")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "filter by tag name")
	cmd.Flags().IntVar(&opts.PageNum, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 20, "page size")
	return cmd
}

func newDetailCmd(client *api.Client) *cobra.Command {
	var opts struct {
		ShowCases bool
	}
	cmd := &cobra.Command{
		Use:   "detail <problemId>",
		Short: "Show a problem",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			problemID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			ctx := cmd.Context()

			problem, err := client.GetProblemDetail(ctx, problemID)
			cobra.CheckErr(err)

			cli.Title("%d. %s", problem.ID, problem.Title)
			cli.Notice("difficulty %d | time limit %dms | memory limit %dMB\n",
				problem.Difficulty, problem.TimeLimit, problem.MemoryLimit)
			if submissions, err := client.GetSubmissionCount(ctx, problemID); err == nil {
				passed, _ := client.GetPassedCount(ctx, problemID)
				cli.Notice("passed %d of %d submissions\n", passed, submissions)
			}
			fmt.Print(markdown.Render(problem.Description, cli.Width()))

			if problem.TestInput != "" || problem.TestOutput != "" {
				cli.Separator()
				cli.UserInput("sample input:\n%s\n", problem.TestInput)
				cli.UserInput("sample output:\n%s\n", problem.TestOutput)
			}

			if opts.ShowCases {
				cases, err := client.GetProblemCases(ctx, problemID)
				cobra.CheckErr(err)
				for i, problemCase := range cases {
					cli.Separator()
					cli.UserInput("case #%d\ninput:\n%s\noutput:\n%s\n", i+1, problemCase.Input, problemCase.Output)
				}
			}
		},
	}
	cmd.Flags().BoolVar(&opts.ShowCases, "cases", false, "show the visible test cases")
	return cmd
}
