// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to a QATrack+
// server.
//
// The primary abstraction is [QATrackAdapter]. The HTTP implementation
// ([NewQATrackAdapter]) takes its redirect retry policy and user agent from
// the loaded [config.Configuration].
//
// Error values defined in errors.go let callers use [errors.Is] on the
// outcome of a connectivity check (e.g. [ErrTooManyRedirects] once every
// HTTP 307 retry is spent).
package adapter

import (
	"context"
)

// QATrackAdapter defines communication with a QATrack+ API.
type QATrackAdapter interface {
	// CheckAuth verifies that the API URL is reachable and that the token is
	// accepted, by requesting <api url>/auth/. HTTP 307 Temporary Redirect
	// responses are retried as configured. Returns nil on HTTP 200.
	CheckAuth(ctx context.Context) error

	// Endpoint returns the absolute URL of the API end point path, always
	// with a trailing slash.
	Endpoint(path string) string
}
