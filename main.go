package main

import (
	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/admin"
	"github.com/agiantii/bcoj/chat"
	"github.com/agiantii/bcoj/contest"
	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/auth"
	"github.com/agiantii/bcoj/internal/configuration"
	"github.com/agiantii/bcoj/problem"
	"github.com/agiantii/bcoj/solution"
	"github.com/agiantii/bcoj/submit"
	"github.com/agiantii/bcoj/user"
	"github.com/agiantii/bcoj/webserver"
)

const configFilepath = "~/.bcoj/config.json"

var rootCmd = &cobra.Command{
	Use:   "bcoj",
	Short: "A CLI for the BCOJ online judge",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	// Instantiate the api client.
	credentials := auth.NewStore(config.CredentialsFile)
	client := api.NewClient(config, credentials)

	rootCmd.AddCommand(user.NewCmd(client, credentials))
	rootCmd.AddCommand(problem.NewCmd(client))
	rootCmd.AddCommand(submit.NewCmd(client, config, credentials))
	rootCmd.AddCommand(solution.NewCmd(client, credentials))
	rootCmd.AddCommand(contest.NewCmd(client))
	rootCmd.AddCommand(chat.NewCmd(client, config, credentials))
	rootCmd.AddCommand(admin.NewCmd(client))
	rootCmd.AddCommand(webserver.NewServeCmd(config))
	rootCmd.Execute()
}
