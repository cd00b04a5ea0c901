package analysis

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// UnnamedOperation is the display fallback when a GraphQL body carries no
// operationName.
const UnnamedOperation = "Unnamed"

// GraphQLIdentity is the stable identity extracted from a GraphQL request
// body: the dedup key plus the operation name kept for display.
type GraphQLIdentity struct {
	Key       string
	Operation string
}

// FingerprintGraphQL derives a dedup key from the raw request of a
// GraphQL-classified exchange. A non-empty query field wins and is hashed;
// otherwise a server-supplied queryHash is trusted verbatim. Returns
// ok=false when the body is not a JSON object or carries neither field;
// callers skip such exchanges silently (noisy traffic, not an error).
func FingerprintGraphQL(rawRequest []byte) (GraphQLIdentity, bool) {
	var payload struct {
		Query         string `json:"query"`
		QueryHash     string `json:"queryHash"`
		OperationName string `json:"operationName"`
	}
	if err := json.Unmarshal(requestBody(rawRequest), &payload); err != nil {
		return GraphQLIdentity{}, false
	}
	id := GraphQLIdentity{Operation: payload.OperationName}
	if id.Operation == "" {
		id.Operation = UnnamedOperation
	}
	switch {
	case payload.Query != "":
		sum := sha256.Sum256([]byte(payload.Query))
		id.Key = hex.EncodeToString(sum[:])
	case payload.QueryHash != "":
		id.Key = payload.QueryHash
	default:
		return GraphQLIdentity{}, false
	}
	return id, true
}

// requestBody returns the portion of a raw HTTP request after the
// header/body boundary, with a bare-LF fallback for lenient captures.
func requestBody(raw []byte) []byte {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return raw[i+4:]
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return raw[i+2:]
	}
	return raw
}
