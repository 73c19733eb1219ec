package httpclient

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name string
		err  ClientError
		want ErrorType
	}{
		{"invalid url", NewInvalidURLError("://bad", "cannot parse URL", nil), InvalidURLError},
		{"network", NewNetworkError("connection refused", nil), NetworkError},
		{"http status", NewHTTPStatusError(503, "Service Unavailable", nil), HTTPStatusError},
		{"decoding", NewDecodingError(errors.New("unexpected end of JSON input")), DecodingError},
		{"unknown", NewUnknownError("something odd", nil), UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Type())
			assert.True(t, IsErrorType(tt.err, tt.want))
		})
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewNetworkError("dial failed", nil)

	assert.True(t, IsErrorType(err, NetworkError))
	assert.False(t, IsErrorType(err, HTTPStatusError))
	assert.False(t, IsErrorType(nil, NetworkError))
	assert.False(t, IsErrorType(errors.New("plain"), NetworkError))
}

func TestIsErrorTypeSeesThroughWrapping(t *testing.T) {
	inner := NewHTTPStatusError(502, "Bad Gateway", nil)
	wrapped := fmt.Errorf("fetching widgets: %w", inner)

	assert.True(t, IsErrorType(wrapped, HTTPStatusError))
	assert.True(t, IsHTTPStatusError(wrapped, 502))
}

func TestStatusCode(t *testing.T) {
	code, ok := StatusCode(NewHTTPStatusError(404, "Not Found", []byte("gone")))
	assert.True(t, ok)
	assert.Equal(t, 404, code)

	_, ok = StatusCode(NewNetworkError("nope", nil))
	assert.False(t, ok)
}

func TestIsHTTPStatusError(t *testing.T) {
	err := NewHTTPStatusError(429, "Too Many Requests", nil)

	assert.True(t, IsHTTPStatusError(err, 429))
	assert.False(t, IsHTTPStatusError(err, 500))
	assert.False(t, IsHTTPStatusError(NewNetworkError("x", nil), 429))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", NewNetworkError("refused", nil), true},
		{"http 500", NewHTTPStatusError(500, "Internal Server Error", nil), true},
		{"http 599", NewHTTPStatusError(599, "", nil), true},
		{"http 404", NewHTTPStatusError(404, "Not Found", nil), false},
		{"http 429", NewHTTPStatusError(429, "Too Many Requests", nil), false},
		{"invalid url", NewInvalidURLError("x", "bad", nil), false},
		{"decoding", NewDecodingError(errors.New("bad json")), false},
		{"unknown typed", NewUnknownError("weird", nil), true},
		{"unclassified plain error", errors.New("mystery"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, NewHTTPStatusError(503, "Service Unavailable", nil).Error(), "503")
	assert.Contains(t, NewInvalidURLError("://bad", "cannot parse URL", nil).Error(), "://bad")

	wrapped := errors.New("EOF")
	assert.Contains(t, NewDecodingError(wrapped).Error(), "EOF")
	assert.ErrorIs(t, NewDecodingError(wrapped), wrapped)
}

func TestIsSuccessStatus(t *testing.T) {
	assert.True(t, IsSuccessStatus(200))
	assert.True(t, IsSuccessStatus(299))
	assert.False(t, IsSuccessStatus(199))
	assert.False(t, IsSuccessStatus(301))
	assert.False(t, IsSuccessStatus(404))
}
