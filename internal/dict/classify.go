package dict

import (
	"regexp"
	"strings"
)

// webMarker prefixes crowd-sourced translation lines.
const webMarker = "[网络]"

// posPattern matches a recognized part-of-speech abbreviation followed by a
// dot at the start of a gloss line. Short codes like "a" only win when the
// dot follows immediately, so "adj. fast" still resolves to "adj.".
var posPattern = regexp.MustCompile(
	`^(a|na|n|un|v|vt|vi|adj|adv|pron|prep|conj|interj|art|num|aux|pl|sing|past|pp|pres|ger|det|modal|part|suf|pref|abbr|coll|phr)\.\s*(.*)`,
)

// SplitPOS separates the part-of-speech prefix from a gloss line. The
// returned pos includes the trailing dot and is empty when the line has no
// recognized prefix.
func SplitPOS(line string) (pos, text string) {
	m := posPattern.FindStringSubmatch(line)
	if m == nil {
		return "", line
	}
	return m[1] + ".", m[2]
}

// Classify decomposes one line of a definition or translation field.
//
// Web-marked lines keep their POS split first, matching the renderer: the
// marker test runs on the text remaining after the prefix is removed.
func Classify(line string) GlossLine {
	pos, text := SplitPOS(line)
	if strings.HasPrefix(text, webMarker) {
		// Trim the marker as a cutset, not a prefix: stray repeats of the
		// bracket or marker characters are swallowed with it.
		return GlossLine{POS: pos, Text: strings.TrimLeft(text, webMarker), Kind: KindWeb}
	}
	if strings.HasPrefix(line, ">") {
		return GlossLine{POS: pos, Text: text, Kind: KindCrossRef}
	}
	return GlossLine{POS: pos, Text: text, Kind: KindPlain}
}

// HasTag reports whether a space-separated tag set contains the code.
func HasTag(tagField, code string) bool {
	for _, t := range strings.Split(tagField, " ") {
		if t == code {
			return true
		}
	}
	return false
}

// SplitLines splits a definition or translation field on the literal `\n`
// separator used by the source dataset. Empty input yields nil.
func SplitLines(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, LineSeparator)
}
