package cli

import (
	"context"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"quicksearch.dev/qsbp/internal/application/dispatch"
	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/core/ports"
)

// NewFinderCommand creates the interactive finder command
func NewFinderCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "finder",
		Short: "Search every plugin interactively",
		Long: `Launch an interactive finder that queries every plugin as you type.

Controls:
  [↑↓]    select a result
  [Tab]   pivot into the selected result
  [Enter] perform the action that applies to the selected result
  [Esc]   leave the pivot, or quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newFinderModel(cmd.Context(), container)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

			if _, err := program.Run(); err != nil {
				return fmt.Errorf("finder failed: %w", err)
			}
			return nil
		},
	}
}

// finderItem is a result together with the plugin that produced it
type finderItem struct {
	plugin string
	result domain.Result
}

// finderModel holds the state for the Bubble Tea finder
type finderModel struct {
	ctx          context.Context
	container    *CLIContainer
	input        string
	pivot        domain.Result
	items        []finderItem
	selectedRow  int
	seq          int
	tasks        []*dispatch.Task
	ranks        map[string]int
	pending      int
	searching    bool
	status       string
	windowWidth  int
	windowHeight int
}

func newFinderModel(ctx context.Context, container *CLIContainer) finderModel {
	if ctx == nil {
		ctx = context.Background()
	}
	return finderModel{ctx: ctx, container: container, items: []finderItem{}}
}

// Init implements the Bubble Tea init method
func (m finderModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m finderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sourceResultsMsg:
		// Results of a superseded query are dropped.
		if msg.seq != m.seq {
			return m, nil
		}
		m.items = m.merge(msg.items)
		m.pending--
		m.searching = m.pending > 0
		if m.selectedRow >= len(m.items) {
			m.selectedRow = 0
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, nil
	}

	return m, nil
}

func (m finderModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.pivot != nil {
			m.pivot = nil
			return m.refresh()
		}
		return m, tea.Quit

	case tea.KeyUp:
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case tea.KeyDown:
		if m.selectedRow < len(m.items)-1 {
			m.selectedRow++
		}
		return m, nil

	case tea.KeyTab:
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pivot = item.result.Clone()
		m.input = ""
		return m.refresh()

	case tea.KeyEnter:
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.status = ""
		return m, m.performCmd(item)

	case tea.KeyBackspace:
		runes := []rune(m.input)
		if len(runes) == 0 {
			return m, nil
		}
		m.input = string(runes[:len(runes)-1])
		return m.refresh()

	case tea.KeySpace:
		m.input += " "
		return m.refresh()

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m.refresh()
	}

	return m, nil
}

func (m finderModel) selected() (finderItem, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.items) {
		return finderItem{}, false
	}
	return m.items[m.selectedRow], true
}

// refresh supersedes the running search and dispatches the current input
// and pivot to every willing source
func (m finderModel) refresh() (tea.Model, tea.Cmd) {
	for _, task := range m.tasks {
		task.Cancel()
	}
	m.seq++
	m.tasks = nil
	m.ranks = nil
	m.pending = 0
	m.items = []finderItem{}
	m.selectedRow = 0
	m.status = ""
	m.searching = false
	if m.input == "" && m.pivot == nil {
		return m, nil
	}

	m.ranks = make(map[string]int)
	cmds := []tea.Cmd{}
	for i, p := range m.container.Registry.All() {
		q := domain.NewQueryWithPivot(m.input, m.pivot)
		if !p.Source().IsValidSourceForQuery(q) {
			continue
		}
		task := m.container.Dispatcher.Dispatch(m.ctx, p.Source(), q)
		m.tasks = append(m.tasks, task)
		m.ranks[p.Name()] = i
		cmds = append(cmds, m.waitCmd(m.seq, p.Name(), task))
	}
	if len(cmds) == 0 {
		return m, nil
	}

	m.pending = len(cmds)
	m.searching = true
	return m, tea.Batch(cmds...)
}

// sourceResultsMsg carries the results one source produced for a query
type sourceResultsMsg struct {
	seq    int
	plugin string
	items  []finderItem
}

// actionDoneMsg is sent when a performed action returns
type actionDoneMsg struct {
	status string
	err    error
}

// waitCmd delivers the task's results as soon as its source finishes
func (m finderModel) waitCmd(seq int, plugin string, task *dispatch.Task) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		msg := sourceResultsMsg{seq: seq, plugin: plugin, items: []finderItem{}}
		outcome, err := task.Wait(ctx)
		if err != nil {
			return msg
		}
		for _, r := range outcome.Results {
			msg.items = append(msg.items, finderItem{plugin: plugin, result: r})
		}
		return msg
	}
}

// merge adds items to the current list, keeping plugins in registry order
func (m finderModel) merge(items []finderItem) []finderItem {
	merged := make([]finderItem, 0, len(m.items)+len(items))
	merged = append(merged, m.items...)
	merged = append(merged, items...)
	sort.SliceStable(merged, func(i, j int) bool {
		return m.ranks[merged[i].plugin] < m.ranks[merged[j].plugin]
	})
	return merged
}

// performCmd runs the producing plugin's action on the item, falling back
// to the first registered action that applies
func (m finderModel) performCmd(item finderItem) tea.Cmd {
	ctx := m.ctx
	container := m.container
	return func() tea.Msg {
		results := []domain.Result{item.result}
		action, ok := ownAction(container, item.plugin, results)
		if !ok {
			action, ok = container.Registry.ActionFor(results)
		}
		if !ok {
			return actionDoneMsg{err: fmt.Errorf("no action for %s", describe(item.result))}
		}
		done, err := action.Perform(ctx, results)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if !done {
			return actionDoneMsg{err: fmt.Errorf("%s: %w", action.Name(), domain.ErrActionFailed)}
		}
		return actionDoneMsg{status: fmt.Sprintf("Performed %s on %s", action.Name(), describe(item.result))}
	}
}

func ownAction(container *CLIContainer, name string, results []domain.Result) (ports.Action, bool) {
	plugin, err := container.Registry.Lookup(name)
	if err != nil {
		return nil, false
	}
	action := plugin.Action()
	if action == nil || !action.AppliesToResults(results) {
		return nil, false
	}
	return action, true
}

// View implements the Bubble Tea view method
func (m finderModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderResults(), m.renderFooter())
}

func (m finderModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render("qsbp finder")

	lines := []string{title}
	if m.pivot != nil {
		pivot := lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Render("Pivot: " + describe(m.pivot))
		lines = append(lines, pivot)
	}

	prompt := lipgloss.NewStyle().Bold(true).Render("> ") + m.input
	if m.searching {
		prompt += lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("  searching...")
	}
	lines = append(lines, prompt)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m finderModel) renderResults() string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Render("\n  No results\n")
	}

	maxRows := len(m.items)
	if m.windowHeight > 8 && maxRows > m.windowHeight-6 {
		maxRows = m.windowHeight - 6
	}

	rows := make([]string, 0, maxRows)
	for i := 0; i < maxRows; i++ {
		item := m.items[i]
		rowStyle := lipgloss.NewStyle()
		if i == m.selectedRow {
			rowStyle = rowStyle.Background(lipgloss.Color("240"))
		}
		row := fmt.Sprintf("%-12s │ %s", truncateString(item.plugin, 12), truncateString(describe(item.result), 60))
		if snippet := item.result.Snippet(); snippet != "" {
			row += "  " + truncateString(snippet, 40)
		}
		rows = append(rows, rowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m finderModel) renderFooter() string {
	lines := []string{}
	if m.status != "" {
		lines = append(lines, m.status)
	}
	controls := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Controls: [↑↓] Navigate | [Tab] Pivot | [Enter] Perform | [Esc] Back/Quit")
	lines = append(lines, controls)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// truncateString truncates a string to the specified number of characters
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
