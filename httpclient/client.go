package httpclient

import (
	"context"
	nethttp "net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gomez1112/eznetworking/cache"
	"github.com/gomez1112/eznetworking/logger"
	"github.com/gomez1112/eznetworking/retry"
)

// client implements the Client interface. It holds no per-call state
// beyond stack-local loop variables; the cache is the only shared mutable
// resource, so one client instance serves any number of concurrent fetches.
type client struct {
	transport    Transport
	decoder      Decoder
	log          logger.Logger
	store        cache.Store
	cacheTTL     time.Duration
	sf           *singleflight.Group
	defaults     map[string]string
	auth         *BasicAuth
	interceptors []RequestInterceptor
	callCount    atomic.Int64
}

// NewClient creates a fetch client with default configuration: net/http
// transport, JSON decoder, caching disabled, no-op logger.
func NewClient() Client {
	return NewBuilder().Build()
}

// Builder provides a fluent interface for configuring the fetch client
type Builder struct {
	transport    Transport
	httpClient   *nethttp.Client
	decoder      Decoder
	log          logger.Logger
	cacheTTL     time.Duration
	store        cache.Store
	singleFlight bool
	timeout      time.Duration
	defaults     map[string]string
	auth         *BasicAuth
	interceptors []RequestInterceptor
}

// NewBuilder creates a new client builder
func NewBuilder() *Builder {
	return &Builder{
		timeout:  DefaultTimeout,
		defaults: make(map[string]string),
	}
}

// WithTransport sets a custom transport, replacing the net/http default
func (b *Builder) WithTransport(t Transport) *Builder {
	b.transport = t
	return b
}

// WithHTTPClient backs the default transport with a custom *http.Client
func (b *Builder) WithHTTPClient(c *nethttp.Client) *Builder {
	b.httpClient = c
	return b
}

// WithTimeout sets the per-request timeout of the default transport
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithDecoder sets a custom response decoder, replacing the JSON default
func (b *Builder) WithDecoder(d Decoder) *Builder {
	b.decoder = d
	return b
}

// WithLogger sets the structured logger. Without one, the client is silent.
func (b *Builder) WithLogger(log logger.Logger) *Builder {
	b.log = log
	return b
}

// WithCache enables response caching with the given TTL.
func (b *Builder) WithCache(ttl time.Duration) *Builder {
	b.cacheTTL = ttl
	return b
}

// WithCacheStore enables caching backed by a caller-supplied store.
func (b *Builder) WithCacheStore(store cache.Store, ttl time.Duration) *Builder {
	b.store = store
	b.cacheTTL = ttl
	return b
}

// WithSingleFlight collapses concurrent cache misses for the same
// fingerprint into one transport call. Only meaningful with caching enabled.
func (b *Builder) WithSingleFlight() *Builder {
	b.singleFlight = true
	return b
}

// WithDefaultHeader adds a header sent with every request unless the
// descriptor overrides it
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.defaults[key] = value
	return b
}

// WithBasicAuth sets client-level basic authentication credentials
func (b *Builder) WithBasicAuth(username, password string) *Builder {
	b.auth = &BasicAuth{Username: username, Password: password}
	return b
}

// WithRequestInterceptor adds a request interceptor, run against the wire
// request before every send attempt
func (b *Builder) WithRequestInterceptor(interceptor RequestInterceptor) *Builder {
	b.interceptors = append(b.interceptors, interceptor)
	return b
}

// Build creates the client with the configured options
func (b *Builder) Build() Client {
	c := &client{
		transport:    b.transport,
		decoder:      b.decoder,
		log:          b.log,
		store:        b.store,
		cacheTTL:     b.cacheTTL,
		defaults:     b.defaults,
		auth:         b.auth,
		interceptors: b.interceptors,
	}
	if c.transport == nil {
		httpClient := b.httpClient
		if httpClient == nil {
			httpClient = &nethttp.Client{Timeout: b.timeout}
		}
		c.transport = NewHTTPTransport(httpClient)
	}
	if c.decoder == nil {
		c.decoder = jsonDecoder{}
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.store == nil && c.cacheTTL > 0 {
		c.store = cache.NewMemoryStore()
	}
	if b.singleFlight && c.store != nil {
		c.sf = &singleflight.Group{}
	}
	return c
}

// Fetch runs the full pipeline and decodes the payload into out.
func (c *client) Fetch(ctx context.Context, req *Request, out any, opts ...FetchOption) error {
	body, err := c.FetchBytes(ctx, req, opts...)
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

// FetchBytes runs the pipeline without decoding: cache lookup, transport
// attempts under the retry policy, cache store on success.
func (c *client) FetchBytes(ctx context.Context, req *Request, opts ...FetchOption) ([]byte, error) {
	options := fetchOptions{policy: retry.None()}
	for _, opt := range opts {
		opt(&options)
	}
	policy := options.policy.Normalize()

	// Malformed descriptors fail before any cache or transport interaction.
	if err := req.validate(); err != nil {
		return nil, err
	}

	var fingerprint string
	if c.store != nil {
		fp, err := req.Fingerprint()
		if err != nil {
			return nil, err
		}
		fingerprint = fp

		if body, err := c.store.Get(ctx, fingerprint); err == nil {
			c.log.Debug().
				Str("method", req.Method()).
				Str("url", req.URL()).
				Msg("cache hit")
			return body, nil
		}
	}

	if c.sf != nil {
		v, err, _ := c.sf.Do(fingerprint, func() (any, error) {
			return c.attempt(ctx, req, policy, fingerprint)
		})
		if err != nil {
			return nil, err
		}
		// Shared results go to multiple callers; hand each its own copy.
		shared := v.([]byte)
		body := make([]byte, len(shared))
		copy(body, shared)
		return body, nil
	}

	return c.attempt(ctx, req, policy, fingerprint)
}

// attempt is the retry loop: send, classify, back off, repeat. On success
// the payload is stored under the fingerprint before returning. On
// exhaustion the last observed error is surfaced unchanged.
func (c *client) attempt(ctx context.Context, req *Request, policy retry.Policy, fingerprint string) ([]byte, error) {
	shouldRetry := policy.Predicate
	if shouldRetry == nil {
		shouldRetry = IsRetryable
	}

	start := time.Now()
	call := c.callCount.Add(1)

	for attempt := 1; ; attempt++ {
		// Rebuilt each attempt so the body reader starts fresh.
		wire, err := req.build(ctx, c.defaults, c.auth)
		if err != nil {
			return nil, err
		}
		if err := c.runInterceptors(ctx, wire); err != nil {
			return nil, NewUnknownError("request interceptor failed", err)
		}

		c.log.Debug().
			Str("method", req.Method()).
			Str("url", req.URL()).
			Int("attempt", attempt).
			Int64("call", call).
			Msg("fetch attempt")

		body, err := c.transport.Send(ctx, wire)
		if err == nil {
			if c.store != nil {
				if err := c.store.Set(ctx, fingerprint, body, c.cacheTTL); err != nil {
					c.log.Warn().Err(err).Msg("cache store failed")
				}
			}
			c.log.Debug().
				Str("method", req.Method()).
				Str("url", req.URL()).
				Int("attempt", attempt).
				Int("bytes", len(body)).
				Dur("elapsed", time.Since(start)).
				Msg("fetch succeeded")
			return body, nil
		}

		if attempt >= policy.MaxAttempts || !shouldRetry(err) {
			c.log.Warn().
				Err(err).
				Str("method", req.Method()).
				Str("url", req.URL()).
				Int("attempt", attempt).
				Msg("fetch failed")
			return nil, err
		}

		delay := policy.Delay(attempt)
		c.log.Debug().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("retrying after failure")

		if waitErr := c.wait(ctx, delay); waitErr != nil {
			// Cancelled mid-backoff: unwind immediately, nothing cached.
			return nil, waitErr
		}
	}
}

// wait suspends only the calling fetch for the backoff delay, returning
// early with the context error on cancellation.
func (c *client) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// decode runs the configured decoder over the payload. Decode failures
// are deterministic for given bytes and are therefore never retried.
func (c *client) decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := c.decoder.Decode(data, out); err != nil {
		return NewDecodingError(err)
	}
	return nil
}

// ClearCache empties the response cache. No-op when caching is disabled.
func (c *client) ClearCache(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.store.Clear(ctx)
}

// runInterceptors executes all request interceptors
func (c *client) runInterceptors(ctx context.Context, req *nethttp.Request) error {
	for _, interceptor := range c.interceptors {
		if err := interceptor(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
