package httpports

import (
	"context"
)

// HttpRequester performs a single GET and returns the full body
type HttpRequester interface {
	Get(ctx context.Context, rawURL string) (status int, body []byte, err error)
}
