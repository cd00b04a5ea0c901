package domain

// NormalRecord is the retained row for one unique
// (method, host, normalized path) triple.
type NormalRecord struct {
	Seq            int    `json:"id"` // 1-based, assigned at insertion, never renumbered
	Method         string `json:"method"`
	Host           string `json:"host"`
	NormalizedPath string `json:"normalized"`
}

// GraphQLRecord is the retained row for one unique query fingerprint.
type GraphQLRecord struct {
	Seq       int    `json:"id"`
	Method    string `json:"method"`
	URL       string `json:"url"`
	Operation string `json:"operation"`
}

// ReplayTarget is everything a host needs to resend a retained request.
// Preparing the tuple is this service's job; sending it is the host's.
type ReplayTarget struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	UseTLS     bool   `json:"useTLS"`
	RawRequest []byte `json:"rawRequest"`
}
