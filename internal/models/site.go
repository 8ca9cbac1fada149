package models

import (
	"fmt"
	"strings"
)

// SiteContext identifies the language/project domain that random article
// selection is scoped to, e.g. "en.wikipedia.org". The value is immutable
// once constructed and safe to copy.
type SiteContext struct {
	host string
}

// NewSiteContext normalizes and validates a site identifier. Scheme prefixes,
// surrounding whitespace and trailing slashes are stripped and the host is
// lowercased. An identifier that is empty after normalization is invalid.
func NewSiteContext(identifier string) (SiteContext, error) {
	host := strings.TrimSpace(identifier)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimRight(host, "/")
	host = strings.ToLower(host)

	if host == "" {
		return SiteContext{}, fmt.Errorf("%w: empty site identifier", ErrInvalidSite)
	}
	if strings.ContainsAny(host, " \t/") {
		return SiteContext{}, fmt.Errorf("%w: %q", ErrInvalidSite, identifier)
	}

	return SiteContext{host: host}, nil
}

// Host returns the canonical site host.
func (s SiteContext) Host() string {
	return s.host
}

// IsZero reports whether the context was never constructed via NewSiteContext.
func (s SiteContext) IsZero() bool {
	return s.host == ""
}

func (s SiteContext) String() string {
	return s.host
}
