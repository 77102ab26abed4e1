package api

import (
	"context"
	"net/url"
	"strconv"
)

// NewChat asks the backend to create a chat session and returns its id and
// derived title.
func (c *Client) NewChat(ctx context.Context, userID int64, title string) (*ChatSession, error) {
	params := url.Values{}
	params.Set("userId", strconv.FormatInt(userID, 10))
	if title != "" {
		params.Set("title", title)
	}
	session := &ChatSession{}
	if err := c.get(ctx, "/chat/new", params, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetChatHistory lists the user's chat sessions, most recent first.
func (c *Client) GetChatHistory(ctx context.Context, userID int64) ([]*ChatSession, error) {
	params := url.Values{}
	params.Set("userId", strconv.FormatInt(userID, 10))
	var sessions []*ChatSession
	if err := c.get(ctx, "/chat/getHistory", params, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
