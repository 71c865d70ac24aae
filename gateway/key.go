package gateway

import "net/url"

// DedupeKey builds the pending-request cache key for a read. url.Values.Encode
// sorts parameter names, so two logically identical queries always produce the
// same key regardless of how the caller assembled them.
func DedupeKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
