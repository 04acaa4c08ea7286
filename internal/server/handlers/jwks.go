package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// HandleJWKS godoc
//
//	@Summary		Get pass signer key
//	@Description	Returns the public key of the pass type certificate used to sign passes, as a JWK set.
//	@Description
//	@Description	The key ID is the RFC 7638 SHA-256 thumbprint of the key (first 16 hex characters).
//	@Description	Use it to confirm which signing identity the service has loaded.
//	@Description	The set is empty when the signing material could not be loaded at startup.
//	@Tags			Common
//	@Produce		json
//
//	@Success		200	{object}	JWKSResponse	"JWK set"
//
//	@Router			/.well-known/jwks.json [get]
func HandleJWKS(jwkSet jwk.Set) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(jwkSet)
		if err != nil {
			http.Error(w, "Failed to encode JWK set", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

// JWKSResponse is used for swaggo documentation as swaggo doesn't support the jwk.Set interface type.
type JWKSResponse struct {
	Keys []map[string]any `json:"keys"`
}
