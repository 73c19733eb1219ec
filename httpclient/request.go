package httpclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	nethttp "net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
)

// QueryParam is a single name/value pair appended to the request URL.
// Parameters keep the order they were supplied in and are never deduplicated.
type QueryParam struct {
	Name  string
	Value string
}

// Request is an immutable descriptor of an HTTP request: target URL,
// method, headers, query parameters, and body bytes. The With* methods
// return a modified copy, so a descriptor can be shared and extended
// freely across goroutines.
//
// Header keys are case-insensitive; setting the same key twice keeps the
// last value.
type Request struct {
	rawURL  string
	method  string
	headers map[string]string
	query   []QueryParam
	body    []byte
	auth    *BasicAuth
}

var allowedMethods = map[string]struct{}{
	nethttp.MethodGet:    {},
	nethttp.MethodPost:   {},
	nethttp.MethodPut:    {},
	nethttp.MethodPatch:  {},
	nethttp.MethodDelete: {},
}

// NewRequest creates a request descriptor for the given method and
// absolute URL. Validation is deferred to fetch time so construction
// never fails.
func NewRequest(method, rawURL string) *Request {
	return &Request{
		rawURL: rawURL,
		method: strings.ToUpper(method),
	}
}

func (r *Request) clone() *Request {
	c := &Request{
		rawURL: r.rawURL,
		method: r.method,
	}
	if r.headers != nil {
		c.headers = make(map[string]string, len(r.headers))
		for k, v := range r.headers {
			c.headers[k] = v
		}
	}
	if r.query != nil {
		c.query = append([]QueryParam(nil), r.query...)
	}
	if r.body != nil {
		c.body = append([]byte(nil), r.body...)
	}
	if r.auth != nil {
		auth := *r.auth
		c.auth = &auth
	}
	return c
}

// WithHeader returns a copy with the header set. Keys are canonicalized,
// so WithHeader("accept", ...) and WithHeader("Accept", ...) address the
// same header; the last write wins.
func (r *Request) WithHeader(key, value string) *Request {
	c := r.clone()
	if c.headers == nil {
		c.headers = make(map[string]string, 1)
	}
	c.headers[textproto.CanonicalMIMEHeaderKey(key)] = value
	return c
}

// WithQuery returns a copy with the query parameter appended.
func (r *Request) WithQuery(name, value string) *Request {
	c := r.clone()
	c.query = append(c.query, QueryParam{Name: name, Value: value})
	return c
}

// WithBody returns a copy carrying the given body bytes verbatim.
// Encoding a value into bytes is the caller's concern.
func (r *Request) WithBody(body []byte) *Request {
	c := r.clone()
	c.body = append([]byte(nil), body...)
	return c
}

// WithBasicAuth returns a copy carrying basic auth credentials, which
// override any client-level credentials for this request.
func (r *Request) WithBasicAuth(username, password string) *Request {
	c := r.clone()
	c.auth = &BasicAuth{Username: username, Password: password}
	return c
}

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// URL returns the base URL the descriptor was built with, before query
// parameters are appended.
func (r *Request) URL() string { return r.rawURL }

// validate checks that the descriptor can become a wire request.
func (r *Request) validate() error {
	if _, ok := allowedMethods[r.method]; !ok {
		return NewInvalidURLError(r.rawURL, "unsupported method "+r.method, nil)
	}
	u, err := url.Parse(r.rawURL)
	if err != nil {
		return NewInvalidURLError(r.rawURL, "cannot parse URL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return NewInvalidURLError(r.rawURL, "URL must be absolute", nil)
	}
	return nil
}

// finalURL composes the base URL and appended query parameters into the
// canonical target URL.
func (r *Request) finalURL() (string, error) {
	u, err := url.Parse(r.rawURL)
	if err != nil {
		return "", NewInvalidURLError(r.rawURL, "cannot parse URL", err)
	}
	if len(r.query) > 0 {
		var b strings.Builder
		b.WriteString(u.RawQuery)
		for _, qp := range r.query {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(qp.Name))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(qp.Value))
		}
		u.RawQuery = b.String()
	}
	return u.String(), nil
}

// Fingerprint derives the deterministic cache identity of the request:
// a hex SHA-256 over method, final URL (query included), the sorted
// header set, and the body hash (or an absence marker for a nil body).
// Two descriptors with the same content produce the same fingerprint
// regardless of how they were constructed.
func (r *Request) Fingerprint() (string, error) {
	if err := r.validate(); err != nil {
		return "", err
	}
	target, err := r.finalURL()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	writeField(h, r.method)
	writeField(h, target)

	keys := make([]string, 0, len(r.headers))
	for k := range r.headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(h, k+":"+r.headers[k])
	}

	if r.body == nil {
		writeField(h, "-")
	} else {
		sum := sha256.Sum256(r.body)
		writeField(h, hex.EncodeToString(sum[:]))
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeField feeds one fingerprint component with a terminator so
// adjacent fields cannot run together.
func writeField(w io.Writer, s string) {
	io.WriteString(w, s)
	w.Write([]byte{0})
}

// build merges the descriptor with client-level defaults into a wire
// request: default headers first, descriptor headers overriding them,
// then auth (descriptor credentials beat client credentials).
func (r *Request) build(ctx context.Context, defaults map[string]string, fallbackAuth *BasicAuth) (*nethttp.Request, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	target, err := r.finalURL()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, NewInvalidURLError(r.rawURL, "cannot build wire request", err)
	}

	for key, value := range defaults {
		httpReq.Header.Set(key, value)
	}
	for key, value := range r.headers {
		httpReq.Header.Set(key, value)
	}
	if httpReq.Header.Get("Content-Type") == "" && r.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	auth := r.auth
	if auth == nil {
		auth = fallbackAuth
	}
	if auth != nil {
		httpReq.SetBasicAuth(auth.Username, auth.Password)
	}

	return httpReq, nil
}
