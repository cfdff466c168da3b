package client

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login obtains a bearer token and installs it in the session store.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return "", err
	}
	c.session.SetToken(out.Token)
	return out.Token, nil
}

// Logout drops the token locally. The backend keeps no session state.
func (c *Client) Logout() {
	c.session.Clear()
}
