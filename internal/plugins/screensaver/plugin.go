// Package screensaver locates installed screen saver bundles and switches
// the current screen saver.
package screensaver

import (
	"quicksearch.dev/qsbp/internal/core/ports"
	procports "quicksearch.dev/qsbp/internal/core/ports/process"
	"quicksearch.dev/qsbp/internal/logging"
)

// Plugin pairs the source and action over one shared index
type Plugin struct {
	index  *Index
	source *Source
	action *SetAction
}

// New indexes dirs and builds the plugin
func New(dirs []string, runner procports.CommandRunner, logger logging.Logger) *Plugin {
	return NewWithIndex(NewIndex(dirs, logger), runner, logger)
}

// NewWithIndex builds the plugin over an existing index
func NewWithIndex(index *Index, runner procports.CommandRunner, logger logging.Logger) *Plugin {
	return &Plugin{
		index:  index,
		source: NewSource(index, logger),
		action: NewSetAction(index, runner, logger),
	}
}

func (p *Plugin) Name() string                { return "screensaver" }
func (p *Plugin) Source() ports.SearchSource { return p.source }
func (p *Plugin) Action() ports.Action       { return p.action }

// Index exposes the shared index
func (p *Plugin) Index() *Index { return p.index }

var _ ports.Plugin = (*Plugin)(nil)
