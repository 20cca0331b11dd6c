// Package client is the API access layer of the ingestion console.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering every
//     backend call the console makes: dashboard reads, jobs, uploads, URL
//     submission, approvals, documents and the admin maintenance calls.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient). Each call is
//     exactly one request attempt; the session token is attached through an
//     auth.HeaderProvider that is consulted on every call.
//  3. An explicit per-endpoint failure policy (see PolicyFor). Dashboard
//     reads fall back to synthetic payloads flagged Mock; everything that
//     mutates state or names a single entity propagates the error.
//
// # Error Handling
//
// Failures are classified and can be matched with errors.Is / errors.As:
//
//   - ErrUnavailable: no response was received (DNS, refused, timeout).
//   - *StatusError: a non-2xx response. errors.Is matches ErrUnauthorized for
//     401/403 and ErrNotFound for 404; StatusCode extracts the code.
//   - ErrDecode: the body was not the expected JSON.
//
// A caller whose own context was cancelled always receives the error, even
// from Fallback endpoints.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. It holds no mutable state; the
// only shared resource is the session accessor, which it only reads.
package client
