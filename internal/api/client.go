package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenStore is the durable session-token storage the client reads before
// every call and tears down on a 401.
type TokenStore interface {
	Load() string
	Clear()
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenStore

	// OnUnauthorized fires after the token has been cleared because some
	// call got a 401. The engine uses it to broadcast session_expired so
	// the UI navigates to login.
	OnUnauthorized func()

	RatePerSec float64
	RateBurst  int
}

// Client wraps the remote HRMS REST API. One method per remote operation;
// every failure resolves to *Error, never a raw transport error.
type Client struct {
	base           string
	hc             *http.Client
	tokens         TokenStore
	limiter        *hostLimiter
	onUnauthorized func()
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 5
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 10
	}
	return &Client{
		base:           strings.TrimRight(cfg.BaseURL, "/"),
		hc:             &http.Client{Timeout: timeout},
		tokens:         cfg.Tokens,
		limiter:        newHostLimiter(perSec, burst),
		onUnauthorized: cfg.OnUnauthorized,
	}
}

// envelope is the server's uniform response wrapper. The LinkedIn auth
// endpoint puts authUrl at the top level rather than inside data.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []FieldError    `json:"errors"`
	AuthURL string          `json:"authUrl"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, unexpectedError()
		}
		rd = bytes.NewReader(b)
	}

	if err := c.limiter.waitURL(ctx, u); err != nil {
		return nil, networkError()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, unexpectedError()
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.tokens.Load(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		// Timeouts, refused connections, DNS: all one fixed message.
		return nil, networkError()
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		// Cross-cutting: any call can invalidate the session.
		c.tokens.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, networkError()
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, unexpectedError()
	}

	if res.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = UnexpectedErrorMessage
		}
		return nil, &Error{Message: msg, Errors: env.Errors}
	}
	return &env, nil
}

// get/post/put/delete decode the envelope's data into out when out != nil.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	env, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	env, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) del(ctx context.Context, path string, out any) error {
	env, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func decodeData(env *envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return unexpectedError()
	}
	return nil
}

// Health pings the remote API.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/api/health", nil, nil)
}
