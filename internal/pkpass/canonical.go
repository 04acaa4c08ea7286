package pkpass

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// CanonicalizeJSON converts JSON to canonical form per RFC 8785.
// pass.json is canonicalized so that the same descriptor always produces the same manifest hash.
func CanonicalizeJSON(jsonData []byte) ([]byte, error) {
	return jcs.Transform(jsonData)
}

// EncodePass encodes the descriptor as canonical pass.json
func EncodePass(p *Pass) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, WrapInternalError(err, "failed to encode pass.json")
	}

	canonical, err := CanonicalizeJSON(raw)
	if err != nil {
		return nil, WrapInternalError(err, "failed to canonicalize pass.json")
	}
	return canonical, nil
}
