// Package restclient talks to a hosted Supabase project: the PostgREST data
// API under /rest/v1 and the GoTrue auth server under /auth/v1.
package restclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	restPath = "/rest/v1/"
	authPath = "/auth/v1/"

	defaultTimeout = 60 * time.Second
)

// Options tunes a Client. The zero value is usable.
type Options struct {
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	// Timeout applies to every request. Defaults to 60s.
	Timeout time.Duration
	// RequestsPerSecond paces requests. Zero or less means unlimited.
	RequestsPerSecond float64
	Logger            *slog.Logger
}

// Client is a session with one project. It carries the API key sent on every
// request and, after SignInWithPassword, the user's access token.
type Client struct {
	base        *url.URL
	apiKey      string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// New creates a client for the project at endpoint (e.g. "https://abc.supabase.co")
// authenticating with apiKey, which is either the public anon key or a
// privileged service key.
func New(endpoint, apiKey string, opts Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, InvalidURLError(err.Error())
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, InvalidURLError(endpoint)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		base:       parsed,
		apiKey:     apiKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger.With(slog.String("component", "restclient")),
	}, nil
}

// Authenticated reports whether a user access token is attached.
func (c *Client) Authenticated() bool {
	return c.accessToken != ""
}

// buildURL joins prefix and name onto the project endpoint.
func (c *Client) buildURL(prefix, name string, params url.Values) *url.URL {
	u := *c.base
	u.Path = path.Join(c.base.Path, prefix, name)
	u.RawQuery = params.Encode()
	return &u
}

// bearer is the token sent in the Authorization header. Without a user
// session the API key doubles as the bearer token.
func (c *Client) bearer() string {
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.apiKey
}

func (c *Client) newRequest(ctx context.Context, method string, u *url.URL, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, HTTPError(err.Error())
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do waits for the rate limiter and sends the request.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, HTTPError(err.Error())
	}
	c.logger.Debug("request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", res.StatusCode,
		"duration", time.Since(start),
	)
	return res, nil
}

// decodeAPIError builds an APIError from a failed data API response.
func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode}
	body, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err == nil && len(body) > 0 {
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil {
			apiErr.Message = strings.TrimSpace(string(body))
		}
	}
	apiErr.Status = res.StatusCode
	return apiErr
}

// decodeAuthError builds an AuthError from a failed auth response.
func decodeAuthError(res *http.Response) error {
	authErr := &AuthError{Status: res.StatusCode}
	body, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err == nil && len(body) > 0 {
		if jsonErr := json.Unmarshal(body, authErr); jsonErr != nil {
			authErr.Msg = strings.TrimSpace(string(body))
		}
	}
	authErr.Status = res.StatusCode
	return authErr
}
