package domain

import "errors"

var (
	// ErrNotFound is returned when an identifier does not resolve to an indexed entity
	ErrNotFound = errors.New("not found")

	// ErrNotASymbol marks a feed response that lacks the fields of a quote
	ErrNotASymbol = errors.New("not a valid stock symbol")

	// ErrActionFailed wraps side effects that reported failure
	ErrActionFailed = errors.New("action failed")

	// ErrAlreadyFinished is returned when a query is completed twice
	ErrAlreadyFinished = errors.New("query already finished")

	// ErrNotApplicable is returned when an action is asked to handle foreign results
	ErrNotApplicable = errors.New("action does not apply to results")
)
