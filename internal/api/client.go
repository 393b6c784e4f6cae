// Package api is a client for the lease-transaction backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/Veraticus/leasetx/internal/common"
)

// maxPayload caps the size of a decoded response body.
const maxPayload = 8 << 20

// DefaultErrorMessage is shown when the backend reports failure without a
// message.
const DefaultErrorMessage = "검색 중 오류가 발생했습니다."

// Fetcher serves cacheable reads. Fetch fills out from the cache under key,
// calling load and storing its result on a miss.
type Fetcher interface {
	Fetch(ctx context.Context, key string, out any, load func(context.Context) (any, error)) error
}

// Options configures a Client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RetryMax      int
	RetryWaitMin  time.Duration
	RetryWaitMax  time.Duration
	RatePerSecond float64
	Cache         Fetcher
	Logger        *slog.Logger
}

// Client talks to the backend over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
	cache   Fetcher
}

// New returns a client for the backend at opts.BaseURL.
func New(opts Options) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rc.Logger = logger.With("component", "api")

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}

	return &Client{
		baseURL: opts.BaseURL,
		http:    rc,
		limiter: rate.NewLimiter(limit, 1),
		cache:   opts.Cache,
	}
}

// Error is a failure reported by the backend itself.
type Error struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status >= 400 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

// Unwrap lets callers match common.ErrAPI.
func (e *Error) Unwrap() error {
	return common.ErrAPI
}

// envelope holds the failure fields every endpoint may return.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e envelope) failed() bool {
	return e.Error != "" || (e.Success != nil && !*e.Success)
}

func (e envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return DefaultErrorMessage
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, u, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, c.baseURL+path, payload, out)
}

func (c *Client) do(ctx context.Context, method, path, u string, payload []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrTransport, path, err)
	}

	var body any
	if payload != nil {
		body = payload
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrTransport, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := readAllLimit(resp.Body, maxPayload)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrTransport, path, err)
	}

	slog.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	var env envelope
	envErr := json.Unmarshal(data, &env)

	if resp.StatusCode >= 400 {
		msg := DefaultErrorMessage
		if envErr == nil && (env.Error != "" || env.Message != "") {
			msg = env.message()
		}
		return &Error{Endpoint: path, Status: resp.StatusCode, Message: msg}
	}
	if envErr != nil {
		return fmt.Errorf("%w: %s: invalid response body: %w", common.ErrAPI, path, envErr)
	}
	if env.failed() {
		return &Error{Endpoint: path, Status: resp.StatusCode, Message: env.message()}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: invalid response body: %w", common.ErrAPI, path, err)
	}
	return nil
}

// fetch routes a read through the cache when one is configured.
func (c *Client) fetch(ctx context.Context, key string, out any, load func(context.Context) (any, error)) error {
	if c.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return err
		}
		return assign(v, out)
	}
	return c.cache.Fetch(ctx, key, out, load)
}

// assign copies v into out through JSON, matching what a cache round trip does.
func assign(v, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

var errPayloadTooLarge = errors.New("payload too large")

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, errPayloadTooLarge
	}
	return buf.Bytes(), nil
}
