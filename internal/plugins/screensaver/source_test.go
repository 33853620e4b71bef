package screensaver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksearch.dev/qsbp/internal/core/domain"
)

func newTestSource(t *testing.T) (*Source, string) {
	t.Helper()
	dir := makeFolder(t, "Flurry.saver", "Floating.saver", "Arabesque.qtz", "Shell.slideSaver", "Notes.txt")
	return NewSource(NewIndex([]string{dir}, nil), nil), dir
}

func displayNames(results []domain.Result) []string {
	out := []string{}
	for _, r := range results {
		out = append(out, r.DisplayName())
	}
	return out
}

func TestSource_IsValidSourceForQuery(t *testing.T) {
	source, dir := newTestSource(t)
	flurry := domain.Result{domain.KeyIdentifier: FileURL(filepath.Join(dir, "Flurry.saver"))}
	foreign := domain.Result{domain.KeyIdentifier: "http://www.google.com/finance?q=AAPL"}

	tests := []struct {
		name  string
		query *domain.Query
		want  bool
	}{
		{name: "short query", query: domain.NewQuery("fl"), want: false},
		{name: "short query padded with spaces", query: domain.NewQuery("  fl  "), want: false},
		{name: "empty query", query: domain.NewQuery(""), want: false},
		{name: "three characters", query: domain.NewQuery("flu"), want: true},
		{name: "short query that does not match", query: domain.NewQuery("zz"), want: false},
		{name: "pivot on our result", query: domain.NewQueryWithPivot("", flurry), want: true},
		{name: "pivot on foreign result", query: domain.NewQueryWithPivot("flurry", foreign), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, source.IsValidSourceForQuery(tt.query))
		})
	}
}

func TestSource_PerformSearch(t *testing.T) {
	source, dir := newTestSource(t)
	flurry := domain.Result{domain.KeyIdentifier: FileURL(filepath.Join(dir, "Flurry.saver"))}
	all := []string{"Arabesque Screen Saver", "Floating Screen Saver", "Flurry Screen Saver", "Shell Screen Saver"}

	tests := []struct {
		name  string
		query *domain.Query
		want  []string
	}{
		{name: "prefix match", query: domain.NewQuery("flu"), want: []string{"Flurry Screen Saver"}},
		{name: "prefix match is case insensitive", query: domain.NewQuery("FLO"), want: []string{"Floating Screen Saver"}},
		{name: "no match", query: domain.NewQuery("xyz"), want: []string{}},
		{name: "browse phrase", query: domain.NewQuery("screensaver"), want: all},
		{name: "browse phrase prefix", query: domain.NewQuery("screen sav"), want: all},
		{name: "browse phrase upper case", query: domain.NewQuery("SCREEN"), want: all},
		{name: "pivot with empty query", query: domain.NewQueryWithPivot("", flurry), want: all},
		{name: "pivot with prefix", query: domain.NewQueryWithPivot("fl", flurry), want: []string{"Floating Screen Saver", "Flurry Screen Saver"}},
		{name: "pivot ignores browse phrase", query: domain.NewQueryWithPivot("screen", flurry), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := source.PerformSearch(context.Background(), tt.query)
			require.True(t, outcome.OK())
			assert.Equal(t, tt.want, displayNames(outcome.Results))
		})
	}
}

func TestSource_PerformSearch_BrowseUsesRawQuery(t *testing.T) {
	source, _ := newTestSource(t)

	// Normalization collapses the double space, the raw text keeps it, so
	// this is neither a browse phrase nor a name prefix.
	outcome := source.PerformSearch(context.Background(), domain.NewQuery("screen  saver"))
	require.True(t, outcome.OK())
	assert.Empty(t, outcome.Results)
}

func TestSource_PerformSearch_ResultRecord(t *testing.T) {
	source, dir := newTestSource(t)

	outcome := source.PerformSearch(context.Background(), domain.NewQuery("flurry"))
	require.Len(t, outcome.Results, 1)

	r := outcome.Results[0]
	assert.Equal(t, FileURL(filepath.Join(dir, "Flurry.saver")), r.Identifier())
	assert.Equal(t, "Flurry Screen Saver", r.DisplayName())
	assert.Equal(t, ResultType, r[domain.KeyType])
	assert.Equal(t, DefaultActionID, r[domain.KeyDefaultAction])
}

func TestSource_PerformSearch_Idempotent(t *testing.T) {
	source, _ := newTestSource(t)

	for _, raw := range []string{"screen", "flo", "arabesque"} {
		first := source.PerformSearch(context.Background(), domain.NewQuery(raw))
		second := source.PerformSearch(context.Background(), domain.NewQuery(raw))
		assert.Equal(t, first, second, raw)
	}
}

func TestSource_IdentifierRoundTrips(t *testing.T) {
	source, _ := newTestSource(t)

	outcome := source.PerformSearch(context.Background(), domain.NewQuery("screensaver"))
	require.Len(t, outcome.Results, 4)

	for _, r := range outcome.Results {
		pivot := domain.NewQueryWithPivot("", r)
		assert.True(t, source.IsValidSourceForQuery(pivot), r.Identifier())
	}
}
