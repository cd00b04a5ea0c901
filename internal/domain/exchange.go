package domain

import "time"

// Mode selects one of the two independent analysis pipelines.
type Mode string

const (
	ModeNormal  Mode = "normal"
	ModeGraphQL Mode = "graphql"
)

// ParseMode maps a URL path segment to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeNormal:
		return ModeNormal, true
	case ModeGraphQL:
		return ModeGraphQL, true
	}
	return "", false
}

// TransportService describes the endpoint an exchange was captured against.
type TransportService struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Scheme string `json:"scheme"` // "http" | "https"
}

// Exchange is an immutable capture of one HTTP transaction supplied by the
// traffic source. The analysis pipelines hold references and never mutate it.
type Exchange struct {
	ID          string           `json:"id"`
	Method      string           `json:"method"` // uppercase-normalized at ingest
	Host        string           `json:"host"`
	URL         string           `json:"url"`
	Path        string           `json:"path"`
	RawRequest  []byte           `json:"rawRequest"`
	RawResponse []byte           `json:"rawResponse,omitempty"`
	Service     TransportService `json:"service"`
	CapturedAt  time.Time        `json:"capturedAt"`
}
