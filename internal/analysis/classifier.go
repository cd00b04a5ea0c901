package analysis

import (
	"strings"

	"github.com/waelttf/UniqueRequest/internal/domain"
)

// Classify decides which pipeline an exchange belongs to based on its URL
// path. This is a heuristic sniff, not a protocol check: any path containing
// "graphql" (case-insensitive) is treated as a GraphQL operation.
func Classify(path string) domain.Mode {
	if strings.Contains(strings.ToLower(path), "graphql") {
		return domain.ModeGraphQL
	}
	return domain.ModeNormal
}
