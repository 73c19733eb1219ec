package httpclient

import (
	"context"
	"encoding/json"
	nethttp "net/http"

	"github.com/google/uuid"

	"github.com/gomez1112/eznetworking/retry"
)

// HeaderXRequestID is the header name used for request correlation
const HeaderXRequestID = "X-Request-ID"

// Client defines the fetch engine interface. A single Client instance is
// safe for use by many concurrent fetches.
type Client interface {
	// Fetch executes the request, applying the cache and retry pipeline,
	// and decodes the response body into out. Pass a nil out to skip
	// decoding.
	Fetch(ctx context.Context, req *Request, out any, opts ...FetchOption) error

	// FetchBytes executes the same pipeline and returns the raw payload
	// without decoding. The returned slice is owned by the caller.
	FetchBytes(ctx context.Context, req *Request, opts ...FetchOption) ([]byte, error)

	// ClearCache empties the response cache. No-op when caching is disabled.
	ClearCache(ctx context.Context) error
}

// Transport sends a single wire request and returns the response payload,
// or a classified error: a NetworkError when no HTTP response was
// obtainable, an HTTPStatusError for responses outside 200-299.
// Implementations must be safe to call concurrently.
type Transport interface {
	Send(ctx context.Context, req *nethttp.Request) ([]byte, error)
}

// Decoder turns raw response bytes into a typed value.
// Implementations must be safe to call concurrently.
type Decoder interface {
	Decode(data []byte, out any) error
}

// BasicAuth contains basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// RequestInterceptor is called on the wire request before each send attempt
type RequestInterceptor func(ctx context.Context, req *nethttp.Request) error

// FetchOption customizes a single Fetch call.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	policy retry.Policy
}

// WithRetryPolicy sets the retry policy for this fetch. The default is
// retry.None: a single attempt, no retries.
func WithRetryPolicy(p retry.Policy) FetchOption {
	return func(o *fetchOptions) {
		o.policy = p
	}
}

// jsonDecoder is the default decoder. encoding/json is already permissive
// where it matters here: object keys match case-insensitively and unknown
// fields are ignored.
type jsonDecoder struct{}

func (jsonDecoder) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

// NewRequestIDInterceptor creates a request interceptor that stamps each
// outgoing request with a fresh X-Request-ID unless one is already present.
func NewRequestIDInterceptor() RequestInterceptor {
	return NewRequestIDInterceptorFor(HeaderXRequestID)
}

// NewRequestIDInterceptorFor creates an interceptor that uses a custom header name
func NewRequestIDInterceptorFor(header string) RequestInterceptor {
	if header == "" {
		header = HeaderXRequestID
	}
	return func(_ context.Context, req *nethttp.Request) error {
		if req.Header.Get(header) == "" {
			req.Header.Set(header, uuid.NewString())
		}
		return nil
	}
}

// FetchAs executes the request and decodes the payload into a value of
// type T. It is a convenience wrapper around Client.Fetch for callers who
// prefer a typed result over an out-parameter.
func FetchAs[T any](ctx context.Context, c Client, req *Request, opts ...FetchOption) (T, error) {
	var out T
	if err := c.Fetch(ctx, req, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
