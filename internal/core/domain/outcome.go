package domain

// Outcome is what a search source hands back to the dispatcher. A failed
// outcome may still carry the results produced before the failure.
type Outcome struct {
	Results []Result
	Err     error
}

// Succeeded builds a successful outcome
func Succeeded(results ...Result) Outcome {
	if results == nil {
		results = []Result{}
	}
	return Outcome{Results: results}
}

// Failed builds a failure outcome carrying any partial results
func Failed(err error, partial ...Result) Outcome {
	if partial == nil {
		partial = []Result{}
	}
	return Outcome{Results: partial, Err: err}
}

// OK reports whether the search completed without failure
func (o Outcome) OK() bool {
	return o.Err == nil
}
