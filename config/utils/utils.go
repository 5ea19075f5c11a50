package utils

import (
	"net/url"
	"slices"
)

// IsValidURL checks if a string is an absolute URL with a host and one of the given schemes.
func IsValidURL(s string, schemes ...string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil || u.Host == "" {
		return false
	}
	return slices.Contains(schemes, u.Scheme)
}
