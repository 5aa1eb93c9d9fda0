// Package render synthesizes the per-entry HTML documents and mines
// reverse-lookup entries out of translation text.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quillon/mdxgen/internal/dict"
)

// DefaultCSS is the stylesheet the generated documents link against.
const DefaultCSS = "concise-enhanced.css"

// Renderer builds the HTML document for a dictionary row. It is stateless
// apart from the stylesheet name; rendering the same row twice yields
// byte-identical markup.
type Renderer struct {
	css string
}

// NewRenderer returns a renderer linking against the given stylesheet.
// An empty name falls back to DefaultCSS.
func NewRenderer(css string) *Renderer {
	if css == "" {
		css = DefaultCSS
	}
	return &Renderer{css: css}
}

// Render produces the forward document for one row.
func (r *Renderer) Render(row dict.Row) (dict.Document, error) {
	markup, err := r.renderHTML(row)
	if err != nil {
		return dict.Document{}, err
	}
	return dict.Document{Key: row.Word, Markup: markup, Origin: dict.OriginForward}, nil
}

// renderHTML assembles the document skeleton and the conditional content
// blocks in their fixed order. Only the inflection block can fail, on a
// broken exchange field.
func (r *Renderer) renderHTML(row dict.Row) (string, error) {
	var b strings.Builder
	b.WriteString(`<html><head><title>`)
	b.WriteString(escapeText(row.Word))
	b.WriteString(`</title><link href="`)
	b.WriteString(r.css)
	b.WriteString(`" rel="stylesheet" type="text/css"/></head><body>`)
	b.WriteString(`<div class="bdy" id="ecdict"><div class="ctn" id="content">`)
	b.WriteString(`<div class="hwd">`)
	b.WriteString(escapeText(row.Word))
	b.WriteString(`</div><hr class="hrz"/>`)

	writeHeaderBlock(&b, row)
	writeGlossBlock(&b, row)
	if err := writeInflectionBlock(&b, row); err != nil {
		return "", fmt.Errorf("rendering %q: %w", row.Word, err)
	}
	writeFrequencyBlock(&b, row)

	b.WriteString(`<hr class="hr2"/></div></div></body></html>`)
	return b.String(), nil
}

// writeHeaderBlock emits the phonetic/oxford/collins strip. Absent when all
// three driving fields are empty.
func writeHeaderBlock(b *strings.Builder, row dict.Row) {
	if row.Phonetic == "" && row.Collins == 0 && row.Oxford == 0 {
		return
	}
	b.WriteString(`<div class="git">`)
	if row.Phonetic != "" {
		b.WriteString(`<span class="ipa">[`)
		b.WriteString(escapeText(row.Phonetic))
		b.WriteString(`]</span>`)
	}
	if row.Collins != 0 || row.Oxford != 0 {
		b.WriteString(`<span class="hnt">-</span>`)
		if row.Oxford != 0 {
			b.WriteString(`<span class="oxf" title="Oxford 3000 Keywords">`)
			b.WriteString(strings.Repeat("※", row.Oxford))
			b.WriteString(`</span>`)
		}
		if row.Collins != 0 {
			b.WriteString(`<span class="col" title="Collins Stars">`)
			b.WriteString(strings.Repeat("★", row.Collins))
			b.WriteString(`</span>`)
		}
	}
	b.WriteString(`</div>`)
}

// writeGlossBlock emits the translation sub-entries, or the definition
// sub-entries when no translation exists. Translation always wins.
func writeGlossBlock(b *strings.Builder, row dict.Row) {
	switch {
	case row.Translation != "":
		b.WriteString(`<div class="gdc">`)
		for _, line := range dict.SplitLines(row.Translation) {
			gl := dict.Classify(line)
			b.WriteString(`<span class="dcb">`)
			if gl.Kind == dict.KindWeb {
				b.WriteString(`<span class="dnt">[网络]</span><span class="dne">`)
				b.WriteString(escapeText(gl.Text))
				b.WriteString(`</span>`)
			} else {
				if gl.POS != "" {
					b.WriteString(`<span class="pos">`)
					b.WriteString(escapeText(gl.POS))
					b.WriteString(`</span>`)
				}
				b.WriteString(`<span class="dcn">`)
				b.WriteString(escapeText(gl.Text))
				b.WriteString(`</span>`)
			}
			b.WriteString(`</span><br/>`)
		}
		b.WriteString(`</div>`)
	case row.Definition != "":
		// English-only entries keep the whole line, prefix included; a
		// ">" line is a cross-reference equivalent.
		b.WriteString(`<div class="gdc">`)
		for _, line := range dict.SplitLines(row.Definition) {
			b.WriteString(`<span class="dcb">`)
			if strings.HasPrefix(line, ">") {
				b.WriteString(`<span class="deq">`)
			} else {
				b.WriteString(`<span class="dcn">`)
			}
			b.WriteString(escapeText(line))
			b.WriteString(`</span></span><br/>`)
		}
		b.WriteString(`</div>`)
	}
}

// writeInflectionBlock emits the tense, degree and base-form sub-blocks
// parsed from the exchange field.
func writeInflectionBlock(b *strings.Builder, row dict.Row) error {
	if row.Exchange == "" {
		return nil
	}
	ex, err := dict.ParseExchange(row.Exchange)
	if err != nil {
		return err
	}
	b.WriteString(`<div class="gfm">`)
	if ex.Has(dict.ExchPast, dict.ExchDone, dict.ExchIng, dict.ExchThird) {
		forms := concat(ex[dict.ExchPast], ex[dict.ExchDone], ex[dict.ExchIng], ex[dict.ExchThird])
		b.WriteString(`<div class="fmb"><span class="fnm">时态:</span><span class="frm">`)
		b.WriteString(escapeText(strings.Join(forms, ", ")))
		b.WriteString(`</span></div>`)
	}
	if ex.Has(dict.ExchComparative, dict.ExchSuperlative) {
		forms := concat(ex[dict.ExchComparative], ex[dict.ExchSuperlative])
		b.WriteString(`<div class="qmb"><span class="qnm">级别:</span><span class="qrm">`)
		b.WriteString(escapeText(strings.Join(forms, ", ")))
		b.WriteString(`</span></div>`)
	}
	if ex.Has(dict.ExchLemma) && ex.Has(dict.ExchLemmaCodes) {
		base := ex.First(dict.ExchLemma)
		labels := strings.Join(ex.DecodeLemmaCodes(), "和")
		b.WriteString(`<div class="orb"><span class="onm">原型:</span><span class="orm">`)
		if labels != "" {
			b.WriteString(escapeText(fmt.Sprintf("%s 是 %s 的%s", row.Word, base, labels)))
		} else {
			b.WriteString(escapeText(fmt.Sprintf("%s 的原型是 %s", row.Word, base)))
		}
		b.WriteString(`</span></div>`)
	}
	b.WriteString(`</div>`)
	return nil
}

// frequencyTags is the fixed-order exam-tag catalog and its single-character
// display labels.
var frequencyTags = []struct {
	code  string
	label string
}{
	{"zk", "中"},
	{"gk", "高"},
	{"ky", "研"},
	{"cet4", "四"},
	{"cet6", "六"},
	{"toefl", "托"},
	{"ielts", "雅"},
	{"gre", "宝"},
}

// writeFrequencyBlock emits the exam-tag abbreviation string and the
// COCA/BNC ranks.
func writeFrequencyBlock(b *strings.Builder, row dict.Row) {
	if row.Tag == "" && row.Frq == 0 && row.BNC == 0 {
		return
	}
	tags := strings.Split(row.Tag, " ")
	var part strings.Builder
	for _, t := range frequencyTags {
		for _, have := range tags {
			if have == t.code {
				part.WriteString(t.label)
				break
			}
		}
	}
	b.WriteString(`<div class="frq" title="COCA: `)
	b.WriteString(strconv.Itoa(row.Frq))
	b.WriteString(`, BNC: `)
	b.WriteString(strconv.Itoa(row.BNC))
	b.WriteString(`">`)
	if row.Frq != 0 || row.BNC != 0 {
		b.WriteString(escapeText(fmt.Sprintf("%s %d/%d", part.String(), row.Frq, row.BNC)))
	} else {
		b.WriteString(escapeText(part.String()))
	}
	b.WriteString(`</div>`)
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// escapeText escapes the three characters the document serializer escapes
// in text nodes. Quotes stay literal; the markup never puts field text
// inside attribute values.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
