// Package httpclient provides a resilient, concurrency-safe HTTP fetch
// engine: declarative request descriptors, a pluggable transport, retries
// with exponential backoff and jitter, an optional in-memory response
// cache keyed on request fingerprints, and typed decoding of response
// bodies.
//
// Pipeline
//   - A Request descriptor is merged with client defaults into a wire
//     request; malformed descriptors fail fast with an invalid_url error
//     before any cache or transport interaction.
//   - With caching enabled, the request fingerprint is looked up first; a
//     hit bypasses the transport and the retry loop entirely.
//   - On a miss, the transport is called under the fetch's retry policy.
//     Retries occur for network failures, HTTP 5xx responses, and
//     unclassified errors; 4xx responses, invalid URLs, and decode
//     failures are never retried. On exhaustion the last attempt's error
//     is surfaced unchanged.
//   - Successful payloads are stored under the fingerprint with the
//     configured TTL, then decoded by the injected decoder (JSON by
//     default).
//
// Backoff
//   - Delays follow retry.Policy: initialDelay * multiplier^(n-1), capped
//     at maxDelay, scaled by a uniform jitter factor in [1-f, 1+f].
//   - The backoff wait suspends only the calling fetch; cancelling the
//     context unwinds the call immediately without caching partial results.
//
// Notes
//   - Request bodies are re-sent by rebuilding the wire request on each attempt.
//   - Interceptor errors are not retried and are surfaced immediately.
//   - Logging records method, URL, status, and timing only; payload bytes
//     and header values are never logged.
package httpclient
