package admin

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/cli"
)

func newContestCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contest",
		Short: "Manage contests",
	}
	cmd.AddCommand(newContestAddCmd(client))
	cmd.AddCommand(newContestDeleteCmd(client))
	cmd.AddCommand(newContestAddProblemCmd(client))
	return cmd
}

func newContestAddCmd(client *api.Client) *cobra.Command {
	var opts struct {
		Title           string
		Description     string
		StartTime       string
		EndTime         string
		Duration        int
		PenaltyConstant int
	}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contest",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			request := &api.AddContestRequest{
				Title:           opts.Title,
				Description:     opts.Description,
				StartTime:       opts.StartTime,
				EndTime:         opts.EndTime,
				Duration:        opts.Duration,
				PenaltyConstant: opts.PenaltyConstant,
			}
			cobra.CheckErr(client.AddContest(cmd.Context(), request))
			cli.UserCommand("contest created: %s\n", opts.Title)
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "description")
	cmd.Flags().StringVar(&opts.StartTime, "start", "", "start time, e.g. 2026-09-01T10:00:00")
	cmd.Flags().StringVar(&opts.EndTime, "end", "", "end time")
	cmd.Flags().IntVar(&opts.Duration, "duration", 120, "duration in minutes")
	cmd.Flags().IntVar(&opts.PenaltyConstant, "penalty", 20, "penalty constant in minutes")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func newContestDeleteCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <contestId>",
		Short: "Delete a contest",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			contestID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			if !cli.QueryUser("Delete contest " + args[0] + "?") {
				return
			}
			cobra.CheckErr(client.DeleteContest(cmd.Context(), contestID))
			cli.UserCommand("deleted\n")
		},
	}
}

func newContestAddProblemCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "add-problem <contestId> <problemId>",
		Short: "Attach a problem to a contest",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			contestID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			problemID, err := strconv.ParseInt(args[1], 10, 64)
			cobra.CheckErr(err)
			cobra.CheckErr(client.AddProblemToContest(cmd.Context(), contestID, problemID))
			cli.UserCommand("problem attached\n")
		},
	}
}
