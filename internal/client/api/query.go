package api

import "net/url"

// Query assembles a query string from a plain options map, skipping keys
// whose value is empty so call sites can pass optional filters unguarded.
// Returns "" or a string starting with "?".
func Query(opts map[string]string) string {
	if len(opts) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range opts {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
