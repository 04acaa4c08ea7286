// Package ratecard turns a rate card profile into a signed Wallet pass.
//
// The request body is decoded as a generic JSON object (see ParseRequest) and validated.
// Generator then builds the pass descriptor from the request, the issuer settings and a fresh
// authentication token, and hands it to a Signer together with the signing material and the
// template images.
package ratecard
