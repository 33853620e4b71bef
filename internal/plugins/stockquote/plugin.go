// Package stockquote looks up a ticker symbol in a finance feed and turns
// the reply into a single result.
package stockquote

import (
	"quicksearch.dev/qsbp/internal/core/ports"
	httpports "quicksearch.dev/qsbp/internal/core/ports/http"
	"quicksearch.dev/qsbp/internal/logging"
)

// Plugin has a source only; the host opens the result URL itself.
type Plugin struct {
	source *Source
}

// New builds the plugin
func New(requester httpports.HttpRequester, opts Options, logger logging.Logger) *Plugin {
	return &Plugin{source: NewSource(requester, opts, logger)}
}

func (p *Plugin) Name() string                { return "stockquote" }
func (p *Plugin) Source() ports.SearchSource { return p.source }
func (p *Plugin) Action() ports.Action       { return nil }

var _ ports.Plugin = (*Plugin)(nil)
