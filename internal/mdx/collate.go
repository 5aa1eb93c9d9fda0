package mdx

import (
	"sort"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// pinyinArgs converts Han runes to toneless pinyin for collation.
var pinyinArgs = pinyin.NewArgs()

// collationKey derives the sort key for a headword: case-insensitive, with
// Han runes replaced by their pinyin romanization so the Chinese reverse
// entries collate alongside latin headwords instead of clumping at the end
// of the codepoint space.
func collationKey(key string) string {
	lower := strings.ToLower(key)
	if !strings.ContainsFunc(lower, func(r rune) bool { return unicode.Is(unicode.Han, r) }) {
		return lower
	}
	var b strings.Builder
	for _, r := range lower {
		if unicode.Is(unicode.Han, r) {
			if readings := pinyin.LazyPinyin(string(r), pinyinArgs); len(readings) > 0 {
				b.WriteString(readings[0])
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sortEntries orders entries by collation key, falling back to the raw key
// so the order is total and deterministic.
func sortEntries(entries []entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].sort != entries[j].sort {
			return entries[i].sort < entries[j].sort
		}
		return entries[i].key < entries[j].key
	})
}
