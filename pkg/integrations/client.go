package integrations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keggrest/kegg/pkg/cache"
	kerrors "github.com/keggrest/kegg/pkg/errors"
	"github.com/keggrest/kegg/pkg/httputil"
	"github.com/keggrest/kegg/pkg/observability"
)

// maxErrorBody bounds how much of a failed response is kept in a TransportError.
const maxErrorBody = 512

// Client provides the shared HTTP fetcher used by the KEGG client.
// It handles URL cleaning, response caching, retry logic, and common request
// headers.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
	attempts  int
	delay     time.Duration
	refresh   bool
	logger    *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed with
// [WithHTTPClient] is copied first, so its other users keep their timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithRetry sets the number of attempts for transient failures and the
// initial delay between them. attempts <= 1 disables retries.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

// WithRefresh bypasses cache reads. Fresh responses are still stored.
func WithRefresh(refresh bool) Option {
	return func(c *Client) { c.refresh = refresh }
}

// WithHeaders sets headers applied to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) { c.headers = headers }
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client backed by the given cache.
//
// namespace prefixes cache keys (see [cache.HTTPKey]) and labels cache
// metrics. A nil backend disables caching. ttl is the lifetime of cached
// responses; 0 means they never expire.
func NewClient(backend cache.Cache, namespace string, ttl time.Duration, opts ...Option) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	c := &Client{
		http:      NewHTTPClient(),
		cache:     backend,
		namespace: namespace,
		ttl:       ttl,
		attempts:  1,
		delay:     time.Second,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// Cached retrieves a value from cache or executes fetch and caches the result.
// When the client was built with [WithRefresh], the cache is bypassed and
// fetch is always called. fetch runs under the client's retry policy.
// Cache failures never fail the request.
func (c *Client) Cached(ctx context.Context, key string, fetch func() (string, error)) (string, error) {
	hooks := observability.Cache()
	if !c.refresh {
		data, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Debug("cache read failed", "key", key, "error", err)
		}
		if ok {
			hooks.OnCacheHit(ctx, c.namespace)
			return string(data), nil
		}
		hooks.OnCacheMiss(ctx, c.namespace)
	}

	var body string
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		body, err = fetch()
		return err
	})
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, []byte(body), c.ttl); err != nil {
		c.logger.Debug("cache write failed", "key", key, "error", err)
	} else {
		hooks.OnCacheSet(ctx, c.namespace, len(body))
	}
	return body, nil
}

// Fetch cleans rawURL and returns its body, going through the cache.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	u := httputil.CleanURL(rawURL)
	return c.Cached(ctx, cache.HTTPKey(c.namespace, u), func() (string, error) {
		return c.GetText(ctx, u)
	})
}

// GetText performs a single HTTP GET and returns the response body with
// surrounding whitespace removed. The URL is cleaned with
// [httputil.CleanURL] first.
//
// Any non-2xx status yields a [*kerrors.TransportError] that unwraps to
// [ErrNotFound] for 404 and [ErrNetwork] otherwise. Connection failures,
// 429 and 5xx responses are marked retryable, honoring Retry-After.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	u := httputil.CleanURL(rawURL)
	c.logger.Debug("GET", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "invalid url %q", u)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", httputil.Retryable(fmt.Errorf("%w: reading body: %v", ErrNetwork, err))
	}

	if err := checkStatus(u, resp.StatusCode, data); err != nil {
		var re *httputil.RetryableError
		if errors.As(err, &re) {
			re.After = httputil.RetryAfter(resp.Header)
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func checkStatus(u string, code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	te := &kerrors.TransportError{
		URL:    u,
		Status: code,
		Body:   truncate(strings.TrimSpace(string(body)), maxErrorBody),
		Cause:  ErrNetwork,
	}
	switch {
	case code == http.StatusNotFound:
		te.Cause = ErrNotFound
		return te
	case code >= 500, code == http.StatusTooManyRequests:
		return httputil.Retryable(te)
	default:
		return te
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

