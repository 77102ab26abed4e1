package webserver

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"

	"github.com/agiantii/bcoj/internal/configuration"
	"github.com/agiantii/bcoj/internal/store"
)

//go:embed templates
var templatesFS embed.FS

type PageData struct {
	Title string
	Query string
	Chat  *ChatViewModel
	Chats []ChatViewModel
}

type ChatViewModel struct {
	*store.Chat
	FormattedTime string
}

func NewServeCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		Port     int
		PageSize int
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a web interface for browsing chat transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.New(config.Chat.Database)
			if err != nil {
				return err
			}
			defer s.Close()
			server := &Server{
				store:    s,
				pageSize: opts.PageSize,
			}
			return server.Start(opts.Port)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 3030, "Port to serve on")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 50, "Number of chats to display")
	return cmd
}

type Server struct {
	store    *store.Store
	pageSize int
	tmpl     *template.Template
}

func (s *Server) Start(port int) error {
	funcMap := sprig.HtmlFuncMap()
	funcMap["formatMessage"] = formatMessage
	funcMap["messageRole"] = messageRole

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	s.tmpl = tmpl

	http.HandleFunc("/", s.handleInbox)
	http.HandleFunc("/chat/", s.handleChatRoutes)

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Server starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, nil)
}

func (s *Server) handleChatRoutes(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) != 3 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleChat(w, r)
	case http.MethodDelete:
		s.handleDeleteChat(w, r, parts[2])
	default:
		http.NotFound(w, r)
	}
}
