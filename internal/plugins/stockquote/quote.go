package stockquote

import (
	"fmt"
	"net/url"
	"strings"

	"quicksearch.dev/qsbp/internal/core/domain"
)

const (
	// ResultType tags records produced by this source
	ResultType = "script.python.stockquote"

	resultImage = "StockQuoter.icns"

	// <symbol> <price> (<change>/<change pct>%) <company name>
	displayNameFormat = "%s %s (%s/%s%%) %s"
	// <exchange> Hi:<hi>/Lo:<lo> Vol:<vol>
	snippetFormat = "%s Hi:%s/Lo:%s Vol:%s"
)

// Quote is a validated snapshot
type Quote struct {
	Symbol        string
	Price         string
	Change        string
	ChangePercent string
	Company       string
	Exchange      string
	High          string
	Low           string
	Volume        string
}

// NewQuote validates the snapshot. A snapshot lacking required fields means
// the query was not a ticker and yields domain.ErrNotASymbol.
func NewQuote(s Snapshot) (Quote, error) {
	if missing := s.Missing(); len(missing) > 0 {
		return Quote{}, fmt.Errorf("%w: missing %s", domain.ErrNotASymbol, strings.Join(missing, ","))
	}
	return Quote{
		Symbol:        s["t"],
		Price:         s["l"],
		Change:        s["c"],
		ChangePercent: s["cp"],
		Company:       s["name"],
		Exchange:      s["e"],
		High:          s["hi"],
		Low:           s["lo"],
		Volume:        s["vo"],
	}, nil
}

// DisplayName formats the title line
func (q Quote) DisplayName() string {
	return fmt.Sprintf(displayNameFormat, q.Symbol, q.Price, q.Change, q.ChangePercent, q.Company)
}

// Snippet formats the detail line
func (q Quote) Snippet() string {
	return fmt.Sprintf(snippetFormat, q.Exchange, q.High, q.Low, q.Volume)
}

// Result builds the record; its identifier is the quote page on baseURL
func (q Quote) Result(baseURL string) domain.Result {
	return domain.Result{
		domain.KeyIdentifier:  SourceURL(baseURL, q.Symbol),
		domain.KeyDisplayName: q.DisplayName(),
		domain.KeySnippet:     q.Snippet(),
		domain.KeyMainItem:    q.Symbol,
		domain.KeyOtherItems:  q.Company + " " + q.Exchange,
		domain.KeyType:        ResultType,
		domain.KeyImage:       resultImage,
	}
}

// BaseURL turns a configured finance host into a URL prefix. Hosts given
// without a scheme are reached over plain http.
func BaseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}

// QuoteURL is the feed address for ticker
func QuoteURL(baseURL, ticker string) string {
	return fmt.Sprintf("%s/finance/info?infotype=infoquoteall&q=%s", baseURL, url.QueryEscape(ticker))
}

// SourceURL is the human readable quote page for symbol
func SourceURL(baseURL, symbol string) string {
	return fmt.Sprintf("%s/finance?q=%s", baseURL, url.QueryEscape(symbol))
}
