package render

import (
	"regexp"

	"github.com/quillon/mdxgen/internal/dict"
)

// cjkPattern detects target-language text. The range is deliberately the
// basic CJK Unified Ideographs block only; extended-block characters are
// skipped so entry counts stay in line with earlier archive builds.
var cjkPattern = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)

// ContainsCJK reports whether the line holds at least one codepoint in
// [U+4E00, U+9FFF].
func ContainsCJK(s string) bool {
	return cjkPattern.MatchString(s)
}

// Reverse mines the row's translation text for Chinese gloss lines and
// renders one reverse-lookup document per qualifying line: the gloss text
// becomes the headword and the original headword becomes its translation.
// The forward renderer is reused unchanged with permuted fields.
func (r *Renderer) Reverse(row dict.Row) ([]dict.Document, error) {
	if row.Translation == "" {
		return nil, nil
	}
	var docs []dict.Document
	for _, line := range dict.SplitLines(row.Translation) {
		if !ContainsCJK(line) {
			continue
		}
		_, gloss := dict.SplitPOS(line)
		synth := dict.Row{
			Word:        gloss,
			Definition:  row.Definition,
			Translation: row.Word,
		}
		markup, err := r.renderHTML(synth)
		if err != nil {
			return nil, err
		}
		docs = append(docs, dict.Document{Key: gloss, Markup: markup, Origin: dict.OriginReverse})
	}
	return docs, nil
}

// RenderAll renders the forward document followed by the row's reverse
// documents, in that order.
func (r *Renderer) RenderAll(row dict.Row) ([]dict.Document, error) {
	forward, err := r.Render(row)
	if err != nil {
		return nil, err
	}
	docs := []dict.Document{forward}
	reverse, err := r.Reverse(row)
	if err != nil {
		return nil, err
	}
	return append(docs, reverse...), nil
}
