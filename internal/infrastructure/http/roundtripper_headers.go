package httpinfra

import (
	"net/http"
)

// RoundTripperWithHeaders sets fixed headers on requests that do not carry them.
type RoundTripperWithHeaders struct {
	base    http.RoundTripper
	headers map[string]string
}

func NewRoundTripperWithHeaders(base http.RoundTripper, headers map[string]string) *RoundTripperWithHeaders {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RoundTripperWithHeaders{base: base, headers: MergeHeaders(nil, headers)}
}

func (t *RoundTripperWithHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		if clone.Header.Get(k) == "" {
			clone.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(clone)
}
