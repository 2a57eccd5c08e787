package integrations

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pastebin/pkg/buildinfo"
	perrors "github.com/matzehuels/pastebin/pkg/errors"
	"github.com/matzehuels/pastebin/pkg/observability"
)

// Doer performs a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client provides shared HTTP functionality for API bindings.
// It applies default headers, logs and emits hooks for each request.
type Client struct {
	http    Doer
	logger  *log.Logger
	headers map[string]string
}

// NewClient creates a Client that sends requests through doer.
// A nil doer selects [NewHTTPClient]; a nil logger selects log.Default().
// Headers are applied to all requests made through this client.
func NewClient(doer Doer, logger *log.Logger, headers map[string]string) *Client {
	if doer == nil {
		doer = NewHTTPClient()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		http:    doer,
		logger:  logger,
		headers: headers,
	}
}

// Logger returns the logger used for request logging.
func (c *Client) Logger() *log.Logger {
	return c.logger
}

// PostForm sends form as an application/x-www-form-urlencoded POST body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*Response, error) {
	return c.do(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil, "")
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "build %s request", method)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		c.logger.Debug("http request failed", "method", method, "host", host, "path", path, "err", err)
		return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "read %s response", path)
	}

	elapsed := time.Since(start)
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, elapsed)
	c.logger.Debug("http request",
		"method", method,
		"host", host,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed", elapsed.Round(time.Millisecond),
	)

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
