package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/util/json"
)

// Keys shown in the header lines of a rendered result rather than in the
// field list
var headerKeys = map[string]bool{
	domain.KeyDisplayName: true,
	domain.KeyIdentifier:  true,
	domain.KeySnippet:     true,
}

type resultStyles struct {
	title   lipgloss.Style
	ident   lipgloss.Style
	snippet lipgloss.Style
	key     lipgloss.Style
	empty   lipgloss.Style
}

func newResultStyles(w io.Writer) resultStyles {
	r := lipgloss.NewRenderer(w)
	return resultStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		ident:   r.NewStyle().Foreground(lipgloss.Color("240")),
		snippet: r.NewStyle().Foreground(lipgloss.Color("245")),
		key:     r.NewStyle().Foreground(lipgloss.Color("63")),
		empty:   r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// printResults writes results either as styled text or as JSON lines
func printResults(w io.Writer, results []domain.Result, asJSON bool) error {
	if asJSON {
		for _, r := range results {
			line, err := json.MarshalString(r)
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Fprintln(w, line)
		}
		return nil
	}

	styles := newResultStyles(w)
	if len(results) == 0 {
		fmt.Fprintln(w, styles.empty.Render("No results"))
		return nil
	}
	for i, r := range results {
		fmt.Fprintln(w, renderResult(styles, i, r))
	}
	return nil
}

func renderResult(styles resultStyles, index int, r domain.Result) string {
	lines := []string{
		styles.title.Render(fmt.Sprintf("[%d] %s", index, describe(r))),
		"    " + styles.ident.Render(r.Identifier()),
	}
	if snippet := r.Snippet(); snippet != "" {
		lines = append(lines, "    "+styles.snippet.Render(snippet))
	}
	for _, k := range r.Keys() {
		if headerKeys[k] {
			continue
		}
		lines = append(lines, fmt.Sprintf("    %s %s", styles.key.Render(k+":"), r[k]))
	}
	return strings.Join(lines, "\n")
}

// describe returns the best human label for a result
func describe(r domain.Result) string {
	if name := r.DisplayName(); name != "" {
		return name
	}
	return r.Identifier()
}
