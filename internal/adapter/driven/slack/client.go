// Package slack implements the StatusClient port against the Slack Web API
// profile endpoints (users.profile.get and users.profile.set).
package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
	"github.com/ericfisherdev/statuspanel/internal/domain/port/driven"
)

// DefaultBaseURL is the production Slack Web API root.
const DefaultBaseURL = "https://slack.com/api"

const (
	profileGetMethod = "users.profile.get"
	profileSetMethod = "users.profile.set"
)

// maxResponseBytes bounds how much of a response body is read before decoding.
const maxResponseBytes = 1 << 20

// Compile-time interface satisfaction check.
var _ driven.StatusClient = (*Client)(nil)

// Client implements the driven.StatusClient port with plain JSON-over-HTTP calls.
// The token is supplied per call, so one Client serves every workspace.
type Client struct {
	http    *http.Client
	baseURL string
	now     func() time.Time
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the clock used to compute absolute expiration timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithRateLimit caps outgoing requests at rps per second with a burst of rps.
// A non-positive rps disables limiting.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
}

// NewClient creates a Client for the production API with the given request timeout.
// A zero timeout leaves the transport default in place.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: DefaultBaseURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server,
// and for pointing the app at an API-compatible endpoint.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}

	c := &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(u.String(), "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchProfile reads the status fields of the token owner's profile.
func (c *Client) FetchProfile(ctx context.Context, token string) (*model.RemoteProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(profileGetMethod), nil)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var resp profileGetResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	if !resp.OK {
		return nil, apiError(resp.Error)
	}
	if resp.Profile == nil {
		return nil, protocolError("response has no profile", nil)
	}

	return &model.RemoteProfile{
		StatusText:       resp.Profile.StatusText,
		StatusEmoji:      resp.Profile.StatusEmoji,
		StatusExpiration: resp.Profile.StatusExpiration,
	}, nil
}

// do sends req and decodes the JSON body into v. Transport failures and
// undecodable bodies are mapped to *model.RemoteError; the API-level ok flag is
// left to the caller.
func (c *Client) do(req *http.Request, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return transportError(err)
		}
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("slack: request failed", "url", req.URL.Path, "error", err)
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("slack: response",
		"url", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportError(err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return protocolError(fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode), err)
		}
		return protocolError("invalid response body", err)
	}

	return nil
}

func (c *Client) endpoint(method string) string {
	return c.baseURL + "/" + method
}

func transportError(err error) *model.RemoteError {
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = urlErr.Err.Error()
	}
	return &model.RemoteError{Kind: model.ErrorKindTransport, Message: msg, Err: err}
}

func protocolError(msg string, err error) *model.RemoteError {
	return &model.RemoteError{Kind: model.ErrorKindProtocol, Message: msg, Err: err}
}

// apiError maps an ok=false response to a protocol error carrying the API's error code.
func apiError(code string) *model.RemoteError {
	if code == "" {
		code = model.FallbackErrorMessage
	}
	return protocolError(code, nil)
}
