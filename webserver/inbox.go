package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/agiantii/bcoj/internal/store"
)

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	chats, err := s.store.List(s.pageSize)
	if err != nil {
		http.Error(w, "Failed to list chats", http.StatusInternalServerError)
		return
	}
	if query != "" {
		chats = filterChats(chats, query)
	}

	chatViews := make([]ChatViewModel, 0, len(chats))
	for _, chat := range chats {
		chatViews = append(chatViews, ChatViewModel{
			Chat:          chat,
			FormattedTime: time.UnixMicro(chat.UpdateTimestamp).Format("Jan 2, 2006 3:04 PM"),
		})
	}

	data := &PageData{
		Title: "Inbox",
		Chats: chatViews,
		Query: query,
	}

	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// filterChats keeps the chats whose title or messages contain the query,
// case-insensitively.
func filterChats(chats []*store.Chat, query string) []*store.Chat {
	query = strings.ToLower(query)
	var matches []*store.Chat
	for _, chat := range chats {
		if strings.Contains(strings.ToLower(chat.Title), query) {
			matches = append(matches, chat)
			continue
		}
		for _, message := range chat.Messages {
			if strings.Contains(strings.ToLower(message.Content), query) {
				matches = append(matches, chat)
				break
			}
		}
	}
	return matches
}
