package httpinfra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	httpports "quicksearch.dev/qsbp/internal/core/ports/http"
)

// StdHttpRequester performs one GET per call. There is no retry: a failed
// fetch is reported to the caller as is.
type StdHttpRequester struct {
	client *http.Client
}

// NewStdHttpRequester wraps client. A nil client uses http.DefaultClient.
func NewStdHttpRequester(client *http.Client) *StdHttpRequester {
	if client == nil {
		client = http.DefaultClient
	}
	return &StdHttpRequester{client: client}
}

// NewStdHttpRequesterFromOptions builds a requester with its own transport.
// A zero timeout means no client timeout.
func NewStdHttpRequesterFromOptions(timeout time.Duration, proxyURL, userAgent string) (*StdHttpRequester, error) {
	transport, err := NewTransport(proxyURL)
	if err != nil {
		return nil, err
	}
	client := &http.Client{
		Transport: NewRoundTripperWithHeaders(transport, DefaultHeaders(userAgent)),
		Timeout:   timeout,
	}
	return NewStdHttpRequester(client), nil
}

// Get fetches rawURL, reads the whole body and closes it. The body is
// decoded to UTF-8 using the charset announced in Content-Type.
func (r *StdHttpRequester) Get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		// Unknown charset: fall back to the raw bytes.
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

var _ httpports.HttpRequester = (*StdHttpRequester)(nil)
