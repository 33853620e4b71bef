// Package template is the starting point for new plugins. Its source always
// answers with one fixed record and its action opens the URL carried in
// that record.
package template

import (
	"context"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
)

const (
	// KeyCustomValue carries the URL the action opens
	KeyCustomValue = "CUSTOM_RESULT_VALUE"

	// DefaultActionID names the paired action
	DefaultActionID = "com.yourcompany.action.template"

	resultIdentifier  = "template://result"
	resultDisplayName = "Template Result"
	resultSnippet     = "So here's a bunny with a pancake on its head!"
	resultImage       = "template.png"
	resultURL         = "http://www.fsinet.or.jp/~sokaisha/rabbit/rabbit.htm"
)

// Source answers every query with the same record
type Source struct{}

// NewSource creates the source
func NewSource() *Source {
	return &Source{}
}

func (s *Source) Name() string { return "template" }

// IsValidSourceForQuery accepts everything
func (s *Source) IsValidSourceForQuery(*domain.Query) bool {
	return true
}

// PerformSearch returns the fixed record
func (s *Source) PerformSearch(context.Context, *domain.Query) domain.Outcome {
	return domain.Succeeded(Result())
}

// Result builds the fixed record
func Result() domain.Result {
	return domain.Result{
		domain.KeyIdentifier:    resultIdentifier,
		domain.KeySnippet:       resultSnippet,
		domain.KeyImage:         resultImage,
		domain.KeyDisplayName:   resultDisplayName,
		domain.KeyDefaultAction: DefaultActionID,
		KeyCustomValue:          resultURL,
	}
}

var _ ports.SearchSource = (*Source)(nil)
