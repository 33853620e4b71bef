package stockquote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksearch.dev/qsbp/internal/core/domain"
)

func TestQuote_Result(t *testing.T) {
	quote, err := NewQuote(ParseFeed([]byte(appleFeed)))
	require.NoError(t, err)

	r := quote.Result("http://www.google.com")

	assert.Equal(t, "http://www.google.com/finance?q=AAPL", r.Identifier())
	assert.Equal(t, "AAPL 189.98 (+1.23/0.65%) Apple Inc.", r.DisplayName())
	assert.Equal(t, "NASDAQ Hi:190.50/Lo:187.10 Vol:52.34M", r.Snippet())
	assert.Equal(t, "AAPL", r[domain.KeyMainItem])
	assert.Equal(t, "Apple Inc. NASDAQ", r[domain.KeyOtherItems])
	assert.Equal(t, ResultType, r[domain.KeyType])
	assert.Equal(t, "StockQuoter.icns", r[domain.KeyImage])
}

func TestURLs(t *testing.T) {
	base := BaseURL("www.google.com")
	assert.Equal(t, "http://www.google.com", base)
	assert.Equal(t, "http://127.0.0.1:8080", BaseURL("http://127.0.0.1:8080/"))

	assert.Equal(t, "http://www.google.com/finance/info?infotype=infoquoteall&q=AAPL", QuoteURL(base, "AAPL"))
	assert.Equal(t, "http://www.google.com/finance/info?infotype=infoquoteall&q=A%26B", QuoteURL(base, "A&B"))
	assert.Equal(t, "http://www.google.com/finance?q=BRK.A", SourceURL(base, "BRK.A"))
}
