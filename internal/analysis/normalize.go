package analysis

import (
	"net/http"
	"regexp"
)

var (
	numericSegment = regexp.MustCompile(`/\d+`)
	hexSegment     = regexp.MustCompile(`/[a-f0-9]{32,}`)
	idQueryParam   = regexp.MustCompile(`id=\d+`)

	staticExtension = regexp.MustCompile(`(?i)\.(js|css|png|jpg|jpeg|gif|svg|ico|woff|woff2|ttf|eot|map|json)$`)
)

// NormalizePath canonicalizes a URL path by replacing variable segments with
// placeholders: numeric segments become /{id}, hex segments of 32+ chars
// become /{hash}, and id=<digits> query occurrences become id={id}.
// Substitutions run in that fixed order and never overlap, so the function
// is idempotent: placeholders contain no digits for a later pass to match.
func NormalizePath(path string) string {
	path = numericSegment.ReplaceAllString(path, "/{id}")
	path = hexSegment.ReplaceAllString(path, "/{hash}")
	path = idQueryParam.ReplaceAllString(path, "id={id}")
	return path
}

// NormalFilters are the per-run toggles for the normal pipeline.
type NormalFilters struct {
	PostOnly           bool `json:"postOnly"`
	GetOnly            bool `json:"getOnly"`
	NoStaticExtensions bool `json:"noStaticExtensions"`
}

// Admit reports whether an exchange survives the filters. Selecting both
// method toggles disables method filtering entirely rather than excluding
// everything; callers rely on that fall-through.
func (f NormalFilters) Admit(method, path string) bool {
	switch {
	case f.PostOnly && !f.GetOnly:
		if method != http.MethodPost {
			return false
		}
	case f.GetOnly && !f.PostOnly:
		if method != http.MethodGet {
			return false
		}
	}
	if f.NoStaticExtensions && staticExtension.MatchString(path) {
		return false
	}
	return true
}
