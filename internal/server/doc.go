// Package server provides the HTTP server for the RateCard pass service.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// The package wires
//   - the pass endpoint (POST /generate-pass)
//   - common infrastructure handlers (health, version, jwks, metrics, docs)
//
// handlers are in internal/server/handlers and middleware is in internal/server/middleware
package server
