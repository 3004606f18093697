package extract

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeItems deduplicates and canonicalizes accepted lines. Each line is
// trimmed and folded to a lowercase canonical key; empty lines are dropped,
// duplicate keys collapse to one entry, and the result is sorted by key and
// capitalized for display. Idempotent: normalizing an already-normalized list
// is a no-op.
func NormalizeItems(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	keys := make([]string, 0, len(lines))
	for _, line := range lines {
		key := strings.ToLower(strings.TrimSpace(line))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]string, len(keys))
	for i, key := range keys {
		items[i] = capitalize(key)
	}
	return items
}

// capitalize uppercases the first rune of an already-lowercased string
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
