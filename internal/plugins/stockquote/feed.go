package stockquote

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// Snapshot is the flat field-code to raw-value mapping read from one feed
// response. Field codes of interest:
//
//	t    ticker            l    last price        c    change
//	cp   change percent    name company name      e    exchange
//	hi   day high          lo   day low           vo   volume
//	op   open              mc   market cap        pe   P/E ratio
//	hi52 52 week high      lo52 52 week low       lt   last trade time
type Snapshot map[string]string

// RequiredFields must all be present for a snapshot to describe a quote
var RequiredFields = []string{"t", "l", "c", "cp", "name", "e", "hi", "lo", "vo"}

var hexEscape = regexp.MustCompile(`\\x([0-9A-Fa-f]{2})`)

// trimmed from both ends of keys and values
const cutset = `" ,`

// ParseFeed reads the feed body line by line. The body looks like JSON but
// is not parsed as such: each line is split on its first colon, quotes,
// commas and spaces are trimmed from both halves, and \xHH escapes in the
// value are decoded. Lines without a colon or with an empty key or value
// are ignored. Later duplicates overwrite earlier ones.
func ParseFeed(body []byte) Snapshot {
	snap := Snapshot{}

	for _, line := range bytes.Split(body, []byte("\n")) {
		key, value, ok := ParseLine(string(line))
		if ok {
			snap[key] = value
		}
	}
	return snap
}

// ParseLine parses a single feed line
func ParseLine(line string) (key, value string, ok bool) {
	line = strings.TrimRight(line, "\r\n")

	rawKey, rawValue, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}

	key = strings.Trim(rawKey, cutset)
	value = strings.Trim(DecodeEscapes(rawValue), cutset)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// DecodeEscapes replaces every \xHH sequence with the character it encodes
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	return hexEscape.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseUint(m[2:], 16, 8)
		if err != nil {
			return m
		}
		return string(rune(n))
	})
}

// Missing returns the required fields absent from the snapshot
func (s Snapshot) Missing() []string {
	var missing []string
	for _, k := range RequiredFields {
		if _, ok := s[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
