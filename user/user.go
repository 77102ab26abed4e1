// Package user implements account commands.
package user

import (
	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/auth"
	"github.com/agiantii/bcoj/internal/cli"
)

// NewCmd instantiates and returns the user command.
func NewCmd(client *api.Client, credentials *auth.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account operations",
	}
	cmd.AddCommand(newLoginCmd(client, credentials))
	cmd.AddCommand(newRegisterCmd(client))
	cmd.AddCommand(newLogoutCmd(credentials))
	cmd.AddCommand(newWhoamiCmd(credentials))
	return cmd
}

func newLoginCmd(client *api.Client, credentials *auth.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in to the judge",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			username := args[0]
			password, err := cli.PromptPassword("Password:")
			cobra.CheckErr(err)

			result, err := client.Login(cmd.Context(), username, password)
			cobra.CheckErr(err)
			cobra.CheckErr(credentials.Set(result))
			cli.UserCommand("logged in as %s (user id %d)\n", username, result.UserID)
		},
	}
}

func newRegisterCmd(client *api.Client) *cobra.Command {
	var opts struct {
		Email string
	}
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			password, err := cli.PromptPassword("Password:")
			cobra.CheckErr(err)

			request := &api.RegisterRequest{
				Username: args[0],
				Password: password,
				Email:    opts.Email,
			}
			cobra.CheckErr(client.Register(cmd.Context(), request))
			cli.UserCommand("registered %s, you can now log in\n", args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "email address")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(credentials *auth.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored login token",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			cobra.CheckErr(credentials.Clear())
			cli.UserCommand("logged out\n")
		},
	}
}

func newWhoamiCmd(credentials *auth.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			current, err := credentials.Load()
			cobra.CheckErr(err)
			if current == nil {
				cli.Notice("not logged in\n")
				return
			}
			if current.UserInfo != nil {
				cli.UserInput("%s <%s> (%s), user id %d\n",
					current.UserInfo.Username, current.UserInfo.Email, current.UserInfo.Role, current.UserID)
				return
			}
			cli.UserInput("user id %d\n", current.UserID)
		},
	}
}
