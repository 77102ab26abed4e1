// Package submit implements code submission and the judging watch loop.
package submit

import (
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/auth"
	"github.com/agiantii/bcoj/internal/cli"
	"github.com/agiantii/bcoj/internal/configuration"
	"github.com/agiantii/bcoj/internal/file"
	"github.com/agiantii/bcoj/internal/judge"
)

// NewCmd instantiates and returns the submit command.
func NewCmd(client *api.Client, config *configuration.Config, credentials *auth.Store) *cobra.Command {
	var opts struct {
		Language  string
		Test      bool
		ContestID int64
	}
	cmd := &cobra.Command{
		Use:   "submit <problemId> <file>",
		Short: "Submit code for judging",
		Long:  "Submit code for judging and watch the verdict. With --test, run against the sample case instead of submitting officially.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			problemID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			source, err := file.ParseSource(args[1], opts.Language)
			cobra.CheckErr(err)
			userID, err := credentials.UserID()
			cobra.CheckErr(err)

			interval := time.Duration(config.Judge.PollIntervalMs) * time.Millisecond
			poller := judge.NewPoller(client, interval, func(submission *api.Submission) {
				cli.Notice("status: %s\n", cli.StatusBadge(judge.Status(submission.Status)))
			})

			mode := judge.ModeOfficial
			if opts.Test {
				mode = judge.ModeTest
			}
			submission, err := poller.Submit(ctx, &judge.SubmitRequest{
				ProblemID: problemID,
				UserID:    userID,
				Language:  source.Language,
				Code:      string(source.Content),
				Mode:      mode,
				ContestID: opts.ContestID,
			})
			cobra.CheckErr(err)

			if opts.Test {
				printTestRun(submission)
				return
			}

			cli.UserCommand("submitted #%s, waiting for verdict\n", submission.ID)

			// Ctrl-C stops the watch loop; the submission keeps judging
			// server-side.
			interruptSignalChannel := make(chan os.Signal, 1)
			signal.Notify(interruptSignalChannel, os.Interrupt)
			defer signal.Stop(interruptSignalChannel)
			go func() {
				<-interruptSignalChannel
				cli.UserCommand("#Interrupted\n")
				poller.Stop()
			}()

			result, err := poller.Run(ctx, submission.ID)
			cobra.CheckErr(err)
			printVerdict(result)

			if judge.Status(result.Status).CompileFailure() {
				cli.Separator()
				cli.AIOutput("BCOJ: ")
				err := poller.StreamCompileAdvice(ctx, string(source.Content), result, func(chunk string) {
					cli.AIOutput(chunk)
				})
				cli.AIOutput("\n")
				cobra.CheckErr(err)
			}
		},
	}
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "", "language of the submission, inferred from the file extension when omitted")
	cmd.Flags().BoolVarP(&opts.Test, "test", "t", false, "run against the sample case instead of submitting")
	cmd.Flags().Int64Var(&opts.ContestID, "contest", 0, "submit within a contest")

	cmd.AddCommand(newStatusCmd(client))
	return cmd
}

func newStatusCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "status <submissionId>",
		Short: "Query a submission's status once",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			submission, err := client.GetSubmissionStatus(cmd.Context(), api.ID(args[0]))
			cobra.CheckErr(err)
			printVerdict(submission)
		},
	}
}

func printVerdict(submission *api.Submission) {
	cli.UserInput("verdict: %s", cli.StatusBadge(judge.Status(submission.Status)))
	if judge.Status(submission.Status).Terminal() {
		cli.UserInput("  (%dms, %dMB)", submission.Runtime, submission.Memory)
	}
	cli.UserInput("\n")
	if submission.FailMsg != "" {
		cli.Error("%s\n", submission.FailMsg)
	}
}

func printTestRun(submission *api.Submission) {
	// Test runs report the verdict in the backend's uppercase creation enum.
	passed := strings.EqualFold(submission.Status, string(judge.StatusAccepted))
	if passed {
		cli.UserCommand("sample passed (%dms, %dMB)\n", submission.Runtime, submission.Memory)
	} else {
		cli.Error("sample failed: %s\n", cli.StatusBadge(judge.Status(submission.Status)))
	}
	cli.UserInput("input:\n%s\n", submission.Input)
	cli.UserInput("expected output:\n%s\n", submission.ExpectedOutput)
	cli.UserInput("actual output:\n%s\n", submission.Output)
	if submission.FailMsg != "" {
		cli.Error("%s\n", submission.FailMsg)
	}
}
