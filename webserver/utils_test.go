package webserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agiantii/bcoj/internal/chat"
	"github.com/agiantii/bcoj/internal/store"
)

func TestFormatMessageEscapesCodeBlocks(t *testing.T) {
	content := "Try this:\n```go\nif x < 1 {\n\treturn\n}\n```"
	html := string(formatMessage(content))
	assert.True(t, strings.Contains(html, `<code class="language-go">`))
	assert.True(t, strings.Contains(html, "&lt; 1"))
	assert.False(t, strings.Contains(html, "```"))
}

func TestFormatMessageLeavesPlainTextAlone(t *testing.T) {
	assert.Equal(t, "just a sentence", string(formatMessage("just a sentence")))
}

func TestMessageRole(t *testing.T) {
	assert.Equal(t, "You", messageRole(chat.RoleUser))
	assert.Equal(t, "Assistant", messageRole(chat.RoleAssistant))
	assert.Equal(t, "system", messageRole(chat.Role("system")))
}

func TestFilterChats(t *testing.T) {
	chats := []*store.Chat{
		{ID: "1", Title: "Two Sum help"},
		{ID: "2", Title: "graphs", Messages: []*chat.Message{
			{Role: chat.RoleUser, Content: "explain Dijkstra please"},
		}},
		{ID: "3", Title: "unrelated"},
	}

	byTitle := filterChats(chats, "two sum")
	if assert.Len(t, byTitle, 1) {
		assert.Equal(t, "1", byTitle[0].ID)
	}

	byContent := filterChats(chats, "dijkstra")
	if assert.Len(t, byContent, 1) {
		assert.Equal(t, "2", byContent[0].ID)
	}

	assert.Empty(t, filterChats(chats, "no match"))
}
