// Package walletapi implements the HTTP protocol layer of the pass generation API:
// error codes, the mapping from errors to JSON error bodies, and the response helpers used by handlers and middleware.
//
// Every error body has an "error" member with a short fixed text. Pass generation failures add
// "details" (the failure message) and, when enabled, "trace" (the stack trace captured when the failure was wrapped).
package walletapi
