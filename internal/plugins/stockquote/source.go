package stockquote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
	httpports "quicksearch.dev/qsbp/internal/core/ports/http"
	"quicksearch.dev/qsbp/internal/logging"
)

// Options configures the source. It is fixed at construction.
type Options struct {
	// FinanceHost is the feed host, optionally with a scheme
	FinanceHost string
	// Debug logs the request, raw feed and parsed fields at info level
	Debug bool
}

// Source looks up a single ticker symbol in the finance feed
type Source struct {
	requester httpports.HttpRequester
	baseURL   string
	debug     bool
	logger    logging.Logger
}

// NewSource creates the stock quote source
func NewSource(requester httpports.HttpRequester, opts Options, logger logging.Logger) *Source {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Source{
		requester: requester,
		baseURL:   BaseURL(opts.FinanceHost),
		debug:     opts.Debug,
		logger:    logger.With("component", "stockquote"),
	}
}

// Name implements ports.SearchSource
func (s *Source) Name() string {
	return "stockquote"
}

// IsValidSourceForQuery accepts non-pivot queries made of exactly one word
func (s *Source) IsValidSourceForQuery(q *domain.Query) bool {
	if q.HasPivot() {
		return false
	}
	terms := strings.Fields(q.Raw())
	if len(terms) != 1 {
		s.trace("rejected query", "terms", len(terms))
		return false
	}
	return true
}

// PerformSearch fetches and parses the quote for the query's ticker. A
// response that does not describe a quote is a successful empty search.
func (s *Source) PerformSearch(ctx context.Context, q *domain.Query) domain.Outcome {
	terms := strings.Fields(q.Raw())
	if len(terms) == 0 {
		return domain.Failed(errors.New("empty query"))
	}
	ticker := terms[0]

	quoteURL := QuoteURL(s.baseURL, ticker)
	s.trace("requesting quote", "url", quoteURL)

	status, body, err := s.requester.Get(ctx, quoteURL)
	if err != nil {
		return domain.Failed(fmt.Errorf("fetch quote for %s: %w", ticker, err))
	}
	if status < 200 || status > 299 {
		return domain.Failed(fmt.Errorf("fetch quote for %s: unexpected status %d", ticker, status))
	}
	s.trace("raw feed", "bytes", len(body), "body", string(body))

	snapshot := ParseFeed(body)
	s.trace("parsed feed", "fields", len(snapshot))

	quote, err := NewQuote(snapshot)
	if errors.Is(err, domain.ErrNotASymbol) {
		s.trace("not a stock symbol", "ticker", ticker, "error", err)
		return domain.Succeeded()
	}
	if err != nil {
		return domain.Failed(err)
	}

	result := quote.Result(s.baseURL)
	s.trace("quote found", "ticker", ticker, "display_name", result.DisplayName())
	return domain.Succeeded(result)
}

func (s *Source) trace(msg string, args ...any) {
	if s.debug {
		s.logger.Info(msg, args...)
		return
	}
	s.logger.Debug(msg, args...)
}

var _ ports.SearchSource = (*Source)(nil)
