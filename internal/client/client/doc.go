// Package client contains the client-side building blocks for talking to the
// TeamFinder backend.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): authentication,
//     account management, profiles and posts.
//  2. A REST implementation (see HTTPClient) that keeps the backend's session
//     cookie in an http.CookieJar, tags every request with X-Request-ID and
//     maps HTTP statuses to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database with embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are *APIError
// values that match ErrUnauthorized, ErrForbidden, ErrNotFound or
// ErrUnavailable with errors.Is, depending on the status code.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context; the backend has no cancellation protocol, so a cancelled
// context only stops the client from waiting.
package client
