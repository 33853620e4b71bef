package template

import (
	"quicksearch.dev/qsbp/internal/core/ports"
	"quicksearch.dev/qsbp/internal/logging"
)

// Plugin pairs the fixed source with the open action
type Plugin struct {
	source *Source
	action *OpenAction
}

// New builds the plugin
func New(opener ports.URLOpener, logger logging.Logger) *Plugin {
	return &Plugin{source: NewSource(), action: NewOpenAction(opener, logger)}
}

func (p *Plugin) Name() string                { return "template" }
func (p *Plugin) Source() ports.SearchSource { return p.source }
func (p *Plugin) Action() ports.Action       { return p.action }

var _ ports.Plugin = (*Plugin)(nil)
