// Package chat implements the interactive assistant command.
package chat

import (
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/api"
	"github.com/agiantii/bcoj/internal/auth"
	chatsession "github.com/agiantii/bcoj/internal/chat"
	"github.com/agiantii/bcoj/internal/cli"
	"github.com/agiantii/bcoj/internal/configuration"
	"github.com/agiantii/bcoj/internal/store"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(client *api.Client, config *configuration.Config, credentials *auth.Store) *cobra.Command {
	var opts struct {
		ChatID    string
		ProblemID int64
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant",
		Long:  "Back and forth chat with the judge's assistant. Ctrl-C stops the current answer.",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			// Instantiate the transcript store.
			s, err := store.New(config.Chat.Database)
			cobra.CheckErr(err)
			defer s.Close()

			userID, err := credentials.UserID()
			cobra.CheckErr(err)

			// Resume a chat if relevant, else ask the backend for a new one.
			var cached *store.Chat
			if opts.ChatID != "" {
				cached, err = s.Get(opts.ChatID)
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					cobra.CheckErr(err)
				}
			} else {
				created, err := client.NewChat(ctx, userID, "")
				cobra.CheckErr(err)
				opts.ChatID = string(created.ID)
				cached = s.NewChat(opts.ChatID, created.Title)
			}
			if cached == nil {
				cached = s.NewChat(opts.ChatID, "")
			}
			credentials.SetChatID(opts.ChatID)

			// Print assistant tokens as they arrive; the session reports
			// every append and we emit the delta.
			printedLengths := map[string]int{}
			onUpdate := func(message *chatsession.Message) {
				if message.Role != chatsession.RoleAssistant {
					return
				}
				printed := printedLengths[message.ID]
				if len(message.Content) >= printed {
					cli.AIOutput(message.Content[printed:])
				} else {
					// Content was replaced wholesale (stream failure).
					cli.AIOutput("\n" + message.Content)
				}
				printedLengths[message.ID] = len(message.Content)
			}
			session := chatsession.NewSession(client, opts.ChatID, cached.Title, onUpdate)
			session.Messages = cached.Messages

			// Headers.
			cli.Title("BCOJ CHAT [%s]", opts.ChatID)

			// Print history.
			for _, message := range session.Messages {
				if message.Role == chatsession.RoleUser {
					cli.UserInput("> %s\n", message.Content)
				}
				if message.Role == chatsession.RoleAssistant {
					cli.AIOutput(message.Content + "\n")
				}
			}

			for {
				// Query user for prompt.
				text, err := cli.PromptUser(config.Chat.PromptHistory)
				cobra.CheckErr(err)
				if strings.TrimSpace(text) == "" {
					continue
				}
				// Quick feedback so user knows the query has been submitted.
				cli.AIOutput("BCOJ: ")

				// Stream the answer; an interrupt cancels this exchange only.
				interruptSignalChannel := make(chan os.Signal, 1)
				signal.Notify(interruptSignalChannel, os.Interrupt)
				streamDone := make(chan struct{})
				interruptedChannel := make(chan bool, 1)
				go func() {
					select {
					case <-interruptSignalChannel:
						cli.UserCommand("#Interrupted")
						session.Cancel()
						interruptedChannel <- true
					case <-streamDone:
						interruptedChannel <- false
					}
				}()

				err = session.Send(ctx, text, opts.ProblemID)
				close(streamDone)
				interrupted := <-interruptedChannel
				signal.Stop(interruptSignalChannel)
				cli.AIOutput("\n")
				if err != nil {
					if errors.Is(err, chatsession.ErrStreamActive) {
						continue
					}
					cli.Error("%v\n", err)
					continue
				}

				if !interrupted {
					// Persist the transcript.
					cached.Title = session.Title
					cached.Messages = session.Messages
					cobra.CheckErr(s.Write(cached))
				}
			}
		},
	}
	cmd.Flags().StringVar(&opts.ChatID, "id", "", "resume a chat session id")
	cmd.Flags().Int64Var(&opts.ProblemID, "problem", 0, "give the assistant a problem as context")

	cmd.AddCommand(newListCmd(client, config, credentials))
	cmd.AddCommand(newDeleteCmd(config))
	return cmd
}

func newListCmd(client *api.Client, config *configuration.Config, credentials *auth.Store) *cobra.Command {
	var opts struct {
		PageSize int
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chat sessions",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			userID, err := credentials.UserID()
			cobra.CheckErr(err)
			sessions, err := client.GetChatHistory(cmd.Context(), userID)
			cobra.CheckErr(err)

			// Local transcripts give us message counts for sessions we have.
			s, err := store.New(config.Chat.Database)
			cobra.CheckErr(err)
			defer s.Close()
			cachedMessageCounts := map[string]int{}
			if cachedChats, err := s.List(opts.PageSize); err == nil {
				for _, cachedChat := range cachedChats {
					cachedMessageCounts[cachedChat.ID] = len(cachedChat.Messages)
				}
			}

			cli.Title("CHAT SESSIONS")
			for _, session := range sessions {
				if count, ok := cachedMessageCounts[string(session.ID)]; ok {
					cli.UserInput("%s  %-40s  %d messages cached\n", session.ID, title(session.Title), count)
					continue
				}
				cli.UserInput("%s  %-40s\n", session.ID, title(session.Title))
			}
		},
	}
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 100, "maximum number of sessions to list")
	return cmd
}

func newDeleteCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <chatId>",
		Short: "Delete a locally cached transcript",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if !cli.QueryUser("Delete the local transcript of " + args[0] + "?") {
				return
			}
			s, err := store.New(config.Chat.Database)
			cobra.CheckErr(err)
			defer s.Close()
			cobra.CheckErr(s.Delete(args[0]))
			cli.UserCommand("deleted\n")
		},
	}
}

func title(text string) string {
	if text == "" {
		return "(untitled)"
	}
	return text
}
