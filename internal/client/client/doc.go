// Package client contains the client-side plumbing of NutriTrack.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the NutriTrack REST backend (see the
//     Client interface): account registration and login, profile, meal CRUD
//     with AI parsing of free-text descriptions, and the two AI assistants.
//  2. HTTPClient, the net/http implementation. It attaches the bearer token
//     from a TokenSource to every authenticated call, tags each request with
//     an X-Request-ID and maps transport failures and HTTP statuses to
//     errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Transport failures and gateway statuses match ErrUnavailable with
// errors.Is; 401/403 match ErrUnauthorized. Every non-2xx answer is returned
// as *APIError carrying the status and the backend's message, if any.
// IsValidation singles out 400 answers that carry a message meant for the
// user.
//
// All operations accept a context.Context and honor cancellation.
package client
