package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/agiantii/bcoj/internal/auth"
)

// Login authenticates against the backend and returns the credentials it
// issued. The token travels in the envelope's map field, the user in data.
func (c *Client) Login(ctx context.Context, username, password string) (*auth.Credentials, error) {
	params := url.Values{}
	params.Set("username", username)
	params.Set("password", password)
	response, err := c.do(ctx, http.MethodGet, "/user/login", params, nil, "")
	if err != nil {
		return nil, err
	}

	credentials := &auth.Credentials{}
	if raw, ok := response.Map["token"]; ok {
		if err := json.Unmarshal(raw, &credentials.Token); err != nil {
			return nil, errors.Wrap(err, "unmarshaling token")
		}
	}
	if credentials.Token == "" {
		return nil, errors.New("login response carried no token")
	}

	user := &User{}
	if err := decodeData(response.Data, user); err != nil {
		return nil, errors.Wrap(err, "unmarshaling user")
	}
	credentials.UserID = user.ID
	credentials.UserInfo = &auth.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	return credentials, nil
}

// RegisterRequest to create a new user.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Register a new user.
func (c *Client) Register(ctx context.Context, request *RegisterRequest) error {
	return c.postJSON(ctx, "/user/add", nil, request, nil)
}

// GetUser by id.
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	params := url.Values{}
	params.Set("arg0", strconv.FormatInt(userID, 10))
	user := &User{}
	if err := c.get(ctx, "/user/get", params, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers by keyword.
func (c *Client) SearchUsers(ctx context.Context, keyword string) ([]*User, error) {
	params := url.Values{}
	params.Set("arg0", keyword)
	var users []*User
	if err := c.get(ctx, "/user/search", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser by id.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	params := url.Values{}
	params.Set("arg0", strconv.FormatInt(userID, 10))
	return c.get(ctx, "/user/delete", params, nil)
}

// UpdateUserRequest carries the fields to change.
type UpdateUserRequest struct {
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    *int   `json:"status,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UpdateUser by id.
func (c *Client) UpdateUser(ctx context.Context, userID int64, request *UpdateUserRequest) error {
	return c.putJSON(ctx, "/user/"+strconv.FormatInt(userID, 10), request, nil)
}
