// Package handlers provides the HTTP handlers for the pass service:
// POST /generate-pass plus the infrastructure endpoints (health, version, jwks, docs).
package handlers
