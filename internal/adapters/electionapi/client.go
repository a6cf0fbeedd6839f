// Package electionapi is the HTTP adapter for the election server.
package electionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/observability/metrics"
	"github.com/Vinothdevgit/voting-client/internal/observability/statsd"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "ballot-cli"
	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10

	// HeaderRequestID correlates client logs with server logs.
	HeaderRequestID = "X-Request-ID"
)

// Config captures the connection settings for the election server.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient overrides the underlying client. Its Transport is used as
	// the base for authenticated calls.
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    statsd.Sink
	// RequestID generates X-Request-ID values. Defaults to uuid.NewString.
	RequestID func() string
}

// Client talks to the election server. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	hc        *http.Client
	userAgent string
	logger    *slog.Logger
	metrics   statsd.Sink
	requestID func() string
}

// NewClient builds a client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("election api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse election api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("election api base url must be http or https, got %q", base.Scheme)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		jar, jerr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if jerr != nil {
			return nil, fmt.Errorf("create cookie jar: %w", jerr)
		}
		hc = &http.Client{Timeout: timeout, Jar: jar}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rid := cfg.RequestID
	if rid == nil {
		rid = uuid.NewString
	}

	return &Client{
		base:      base,
		hc:        hc,
		userAgent: fallbackString(strings.TrimSpace(cfg.UserAgent), defaultUserAgent),
		logger:    logger.With("component", "electionapi"),
		metrics:   cfg.Metrics,
		requestID: rid,
	}, nil
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// bearer returns an http.Client that authorises every request with credential.
func (c *Client) bearer(credential string) (*http.Client, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, apperrors.Unauthenticated("not signed in")
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential, TokenType: "Bearer"})
	return &http.Client{
		Transport: &oauth2.Transport{Source: src, Base: c.hc.Transport},
		Timeout:   c.hc.Timeout,
		Jar:       c.hc.Jar,
	}, nil
}

// call describes a single request.
type call struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
	out         any
}

func (c *Client) jsonCall(op, method, path string, in, out any) (call, error) {
	cl := call{op: op, method: method, path: path, out: out}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return call{}, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s request", op)
		}
		cl.body = bytes.NewReader(b)
		cl.contentType = "application/json"
	}
	return cl, nil
}

// do performs the request once. It never retries.
func (c *Client) do(ctx context.Context, hc *http.Client, cl call) error {
	target := c.base.JoinPath(cl.path)
	req, err := http.NewRequestWithContext(ctx, cl.method, target.String(), cl.body)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "create %s request", cl.op)
	}

	rid := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, rid)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	log := c.logger.With("op", cl.op, "request_id", rid)
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		mapped := apperrors.MapTransportError(err)
		metrics.EmitAPICall(c.metrics, metrics.APICall{Op: cl.op, Duration: time.Since(start), Err: mapped})
		log.Warn("election api request failed", "error", err)
		return mapped
	}

	callErr := c.handle(resp, cl)
	metrics.EmitAPICall(c.metrics, metrics.APICall{
		Op: cl.op, Status: resp.StatusCode, Duration: time.Since(start), Err: callErr,
	})
	if callErr != nil {
		log.Debug("election api error response", "status", resp.StatusCode, "error", callErr)
	}
	return callErr
}

func (c *Client) handle(resp *http.Response, cl call) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleErrorResponse(resp)
	}
	if cl.out == nil {
		return drainSuccess(resp)
	}

	decodeErr := json.NewDecoder(resp.Body).Decode(cl.out)
	closeErr := resp.Body.Close()
	if decodeErr != nil {
		return apperrors.Wrapf(decodeErr, apperrors.ErrCodeRejected, "unexpected %s response", cl.op)
	}
	if closeErr != nil {
		return fmt.Errorf("close response body: %w", closeErr)
	}
	return nil
}

func drainSuccess(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}

func handleErrorResponse(resp *http.Response) error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	closeErr := resp.Body.Close()
	if readErr != nil {
		body = nil
	}
	appErr := apperrors.FromResponse(resp.StatusCode, body)
	if closeErr != nil && readErr == nil {
		appErr.Cause = fmt.Errorf("close response body: %w", closeErr)
	}
	return appErr
}
