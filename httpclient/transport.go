package httpclient

import (
	"context"
	"io"
	nethttp "net/http"
	"time"
)

// DefaultTimeout is the default per-request timeout of the built-in transport
const DefaultTimeout = 30 * time.Second

// httpTransport is the default Transport backed by net/http. It owns
// status validation: 2xx responses are unwrapped to their body bytes,
// anything else becomes an HTTPStatusError. Per-call deadlines beyond the
// caller's context are its responsibility via http.Client.Timeout.
type httpTransport struct {
	client *nethttp.Client
}

// NewHTTPTransport wraps an *http.Client as a Transport. A nil client gets
// a fresh one with DefaultTimeout.
func NewHTTPTransport(c *nethttp.Client) Transport {
	if c == nil {
		c = &nethttp.Client{Timeout: DefaultTimeout}
	}
	return &httpTransport{client: c}
}

// Send executes the wire request and returns the response body.
func (t *httpTransport) Send(_ context.Context, req *nethttp.Request) ([]byte, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, NewNetworkError("request execution failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, NewHTTPStatusError(resp.StatusCode, nethttp.StatusText(resp.StatusCode), body)
	}

	return body, nil
}
