package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// User is the subset of the auth user object the exporter reports.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the token response of a successful sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type passwordCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInWithPassword logs in with email and password. On success the access
// token is used as bearer for every subsequent request of this client.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(passwordCredentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("grant_type", "password")
	req, err := c.newRequest(ctx, http.MethodPost, c.buildURL(authPath, "token", params), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, decodeAuthError(res)
	}

	var session Session
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("error decoding sign-in response: %w", err)
	}
	if session.AccessToken == "" {
		return nil, &AuthError{Status: res.StatusCode, Msg: "missing access_token in sign-in response"}
	}
	c.accessToken = session.AccessToken
	c.logger.Debug("signed in", "user_id", session.User.ID, "email", session.User.Email)
	return &session, nil
}

// SignOut revokes the current user session. It is a no-op without one.
func (c *Client) SignOut(ctx context.Context) error {
	if c.accessToken == "" {
		return nil
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.buildURL(authPath, "logout", nil), nil)
	if err != nil {
		return err
	}
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return decodeAuthError(res)
	}
	io.Copy(io.Discard, res.Body)
	c.accessToken = ""
	return nil
}
