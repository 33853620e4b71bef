package httpinfra

// MergeHeaders returns base overlaid with extra. Neither input is modified.
func MergeHeaders(base map[string]string, extra map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// DefaultHeaders are sent with every feed request unless overridden
func DefaultHeaders(userAgent string) map[string]string {
	h := map[string]string{
		"Accept": "text/plain, application/json;q=0.9, */*;q=0.5",
	}
	if userAgent != "" {
		h["User-Agent"] = userAgent
	}
	return h
}
