// Package integration contains end-to-end tests for the ratecard-server HTTP API.
//
// These tests verify the server handles pass requests correctly (expected responses,
// error handling, signed archives that verify against the trust chain, etc). Each test
// writes fresh development signing material to a temp dir and starts the server in-process.
//
// These tests assume the pkpass and ratecard packages are working correctly (tested separately).
// If bugs are introduced in lower-level packages, there will be cascading failures here -
// fix the low-level problems first.
package integration
