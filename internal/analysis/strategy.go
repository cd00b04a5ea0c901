package analysis

import (
	"strings"

	"github.com/waelttf/UniqueRequest/internal/domain"
)

// NormalRunFunc builds the normal-mode strategy: GraphQL traffic is always
// excluded here, surviving exchanges are keyed by METHOD:host:normalized_path.
func NormalRunFunc(filters NormalFilters) RunFunc[domain.NormalRecord] {
	return func(ex domain.Exchange) (string, func(int) domain.NormalRecord, bool) {
		if Classify(ex.Path) == domain.ModeGraphQL {
			return "", nil, false
		}
		method := strings.ToUpper(ex.Method)
		if !filters.Admit(method, ex.Path) {
			return "", nil, false
		}
		normalized := NormalizePath(ex.Path)
		key := method + ":" + ex.Host + ":" + normalized
		return key, func(seq int) domain.NormalRecord {
			return domain.NormalRecord{Seq: seq, Method: method, Host: ex.Host, NormalizedPath: normalized}
		}, true
	}
}

// GraphQLRunFunc builds the graphql-mode strategy: only GraphQL-classified
// exchanges enter, keyed by their body fingerprint.
func GraphQLRunFunc() RunFunc[domain.GraphQLRecord] {
	return func(ex domain.Exchange) (string, func(int) domain.GraphQLRecord, bool) {
		if Classify(ex.Path) != domain.ModeGraphQL {
			return "", nil, false
		}
		id, ok := FingerprintGraphQL(ex.RawRequest)
		if !ok {
			return "", nil, false
		}
		return id.Key, func(seq int) domain.GraphQLRecord {
			return domain.GraphQLRecord{Seq: seq, Method: strings.ToUpper(ex.Method), URL: ex.URL, Operation: id.Operation}
		}, true
	}
}
