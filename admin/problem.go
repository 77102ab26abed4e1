package admin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/cli"
)

func newProblemCmd(client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Manage problems",
	}
	cmd.AddCommand(newProblemAddCmd(client))
	cmd.AddCommand(newUploadCasesCmd(client))
	return cmd
}

func newProblemAddCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file.json>",
		Short: "Add a problem from a JSON file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			bytes, err := os.ReadFile(args[0])
			cobra.CheckErr(err)
			request := &api.CreateProblemRequest{}
			cobra.CheckErr(json.Unmarshal(bytes, request))
			cobra.CheckErr(client.CreateProblem(cmd.Context(), request))
			cli.UserCommand("problem created: %s\n", request.Title)
		},
	}
}

func newUploadCasesCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-cases <problemId> <file.zip>",
		Short: "Upload a zip of test cases for a problem",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			problemID, err := strconv.ParseInt(args[0], 10, 64)
			cobra.CheckErr(err)
			zipFile, err := os.Open(args[1])
			cobra.CheckErr(err)
			defer zipFile.Close()

			err = client.UploadProblemCasesZip(cmd.Context(), problemID, filepath.Base(args[1]), zipFile)
			cobra.CheckErr(err)
			cli.UserCommand("test cases uploaded\n")
		},
	}
}
