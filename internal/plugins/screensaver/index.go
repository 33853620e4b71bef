package screensaver

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"quicksearch.dev/qsbp/internal/core/domain"
	"quicksearch.dev/qsbp/internal/logging"
)

// Suffixes are the bundle extensions recognised as screen savers.
var Suffixes = []string{".slideSaver", ".saver", ".qtz"}

// Entry is an indexed screen saver bundle
type Entry struct {
	Path string
	Name string
}

// Index maps lowercased bundle names to entries. It is built once and never
// modified, so concurrent lookups need no locking.
type Index struct {
	entries map[string]Entry
	keys    []string
}

// NewIndex scans dirs (non-recursively) for screen saver bundles. Missing or
// unreadable folders are skipped. When two folders hold the same name, the
// later folder wins.
func NewIndex(dirs []string, logger logging.Logger) *Index {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	entries := make(map[string]Entry)
	for _, dir := range dirs {
		dir = expandPath(dir)
		items, err := os.ReadDir(dir)
		if err != nil {
			logger.Debug("skipping screen saver folder", "dir", dir, "error", err)
			continue
		}

		for _, item := range items {
			name, ok := trimSuffix(item.Name())
			if !ok {
				continue
			}
			entries[domain.Lower(name)] = Entry{
				Path: filepath.Join(dir, item.Name()),
				Name: name,
			}
		}
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logger.Debug("indexed screen savers", "count", len(keys), "dirs", len(dirs))
	return &Index{entries: entries, keys: keys}
}

// trimSuffix strips a recognised suffix. Names made only of the suffix are rejected.
func trimSuffix(name string) (string, bool) {
	for _, suffix := range Suffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return name[:len(name)-len(suffix)], true
		}
	}
	return "", false
}

// Len returns the number of indexed screen savers
func (x *Index) Len() int {
	return len(x.keys)
}

// Entries returns all entries ordered by key
func (x *Index) Entries() []Entry {
	return x.WithPrefix("")
}

// WithPrefix returns the entries whose key starts with prefix, ordered by key.
// prefix is expected to be lowercased already.
func (x *Index) WithPrefix(prefix string) []Entry {
	out := []Entry{}
	for _, k := range x.keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, x.entries[k])
		}
	}
	return out
}

// Lookup resolves a bare path, a file:// URL (with or without a localhost
// authority) or a bare name to its indexed entry. Matching ignores case and
// the bundle suffix.
func (x *Index) Lookup(pathOrURL string) (Entry, bool) {
	p := pathOrURL
	switch {
	case strings.HasPrefix(p, "file://localhost"):
		p = unescape(p[len("file://localhost"):])
	case strings.HasPrefix(p, "file://"):
		p = unescape(p[len("file://"):])
	}

	name := path.Base(filepath.ToSlash(p))
	for _, suffix := range Suffixes {
		n := len(name) - len(suffix)
		if n > 0 && strings.EqualFold(name[n:], suffix) {
			name = name[:n]
			break
		}
	}

	// Lowered after the suffix is gone so the key matches NewIndex.
	name = domain.Lower(name)
	e, ok := x.entries[name]
	return e, ok
}

// Contains reports whether pathOrURL resolves to an indexed screen saver
func (x *Index) Contains(pathOrURL string) bool {
	_, ok := x.Lookup(pathOrURL)
	return ok
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}

// FileURL returns the file:// identifier for an absolute path
func FileURL(p string) string {
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// expandPath expands a leading ~ to the user's home directory
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
