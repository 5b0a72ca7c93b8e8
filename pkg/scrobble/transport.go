package scrobble

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// defaultTimeout bounds every outbound call. Nothing blocks past this.
	defaultTimeout = 25 * time.Second

	// defaultCacheSize and defaultCacheTTL bound the response cache.
	defaultCacheSize = 100
	defaultCacheTTL  = 300 * time.Second

	userAgent = "tunelog/1.0"
)

// Freshness controls how a single request interacts with the response cache.
type Freshness int

const (
	// PreferCached serves a cached response if one is within the TTL.
	PreferCached Freshness = iota
	// MustRevalidate bypasses the cache and always hits the network. The
	// fresh response still replaces the cached entry.
	MustRevalidate
)

// ClientConfig holds transport configuration.
type ClientConfig struct {
	HTTPClient   *http.Client  // Optional: defaults to a 25s-timeout client
	DisableCache bool          // Optional: build the non-caching variant
	CacheSize    int           // Optional: max cached responses (defaults to 100)
	CacheTTL     time.Duration // Optional: cache entry lifetime (defaults to 300s)
	AllowHTTP    bool          // Optional: permit plain-http URLs (used for testing)
	Logger       zerolog.Logger
}

// Client is the single outbound HTTP client shared by all provider adapters.
// It enforces success-code discipline, caches raw response bodies, and rate
// limits outgoing calls. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	cache      *expirable.LRU[string, []byte]
	cacheTTL   time.Duration
	limiter    *rate.Limiter
	allowHTTP  bool
	logger     zerolog.Logger
}

// NewClient creates a transport client. With DisableCache unset the client
// caches successful response bodies in a bounded TTL map; call-sites pick
// per request whether a cached body is acceptable via Freshness.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		httpClient: httpClient,
		cacheTTL:   cfg.CacheTTL,
		// Providers tolerate roughly 5 requests per second.
		limiter:   rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		allowHTTP: cfg.AllowHTTP,
		logger:    cfg.Logger.With().Str("component", "transport").Logger(),
	}

	if !cfg.DisableCache {
		size := cfg.CacheSize
		if size <= 0 {
			size = defaultCacheSize
		}
		if c.cacheTTL <= 0 {
			c.cacheTTL = defaultCacheTTL
		}
		c.cache = expirable.NewLRU[string, []byte](size, nil, c.cacheTTL)
	}

	return c
}

// Get fetches rawURL and returns the response body.
//
// Failure taxonomy:
//   - network/timeout/TLS problems return *TransportError
//   - non-2xx responses return *StatusError with a display message
func (c *Client) Get(ctx context.Context, rawURL string, fresh Freshness) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "https" && !c.allowHTTP {
		return nil, fmt.Errorf("refusing non-https url %q", rawURL)
	}

	key := "GET " + rawURL
	if c.cache != nil && fresh == PreferCached {
		if body, ok := c.cache.Get(key); ok {
			c.logger.Debug().Str("url", u.Redacted()).Msg("cache hit")
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	// Rewrite cache-control both ways so intermediate caches cooperate with
	// the freshness the call-site asked for.
	if fresh == MustRevalidate {
		req.Header.Set("Cache-Control", "no-cache, must-revalidate")
	} else {
		req.Header.Set("Cache-Control", fmt.Sprintf("max-stale=%d", int(c.cacheTTL.Seconds())))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug().Int("status", resp.StatusCode).Str("url", u.Redacted()).Msg("request failed")
		return nil, statusError(resp.StatusCode)
	}

	if c.cache != nil {
		c.cache.Add(key, body)
	}

	return body, nil
}

// GetJSON fetches rawURL and decodes the body as loose JSON, returning the
// root value for traversal with the lenient accessors. A 200 response that is
// not JSON at all surfaces as *MalformedError.
func (c *Client) GetJSON(ctx context.Context, rawURL string, fresh Freshness) (any, error) {
	body, err := c.Get(ctx, rawURL, fresh)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &MalformedError{Path: "(body)"}
	}
	return v, nil
}

// PurgeCache drops all cached responses. Used by callers after write-style
// actions performed outside this package invalidate what the providers report.
func (c *Client) PurgeCache() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
