package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/mdxgen/internal/dict"
)

func TestRenderSkeletonOnly(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{Word: "go"})
	require.NoError(t, err)

	want := `<html><head><title>go</title>` +
		`<link href="concise-enhanced.css" rel="stylesheet" type="text/css"/></head>` +
		`<body><div class="bdy" id="ecdict"><div class="ctn" id="content">` +
		`<div class="hwd">go</div><hr class="hrz"/><hr class="hr2"/>` +
		`</div></div></body></html>`
	assert.Equal(t, want, doc.Markup)
	assert.Equal(t, "go", doc.Key)
	assert.Equal(t, dict.OriginForward, doc.Origin)
}

func TestRenderIdempotent(t *testing.T) {
	r := NewRenderer("")
	row := dict.Row{
		Word: "take", Phonetic: "teik", Translation: `vt. 拿\nn. 收入`,
		Collins: 5, Oxford: 1, Tag: "zk gk", BNC: 50, Frq: 60,
		Exchange: "p:took/d:taken/i:taking/3:takes",
	}
	a, err := r.Render(row)
	require.NoError(t, err)
	b, err := r.Render(row)
	require.NoError(t, err)
	assert.Equal(t, a.Markup, b.Markup)
}

func TestHeaderBlockGating(t *testing.T) {
	r := NewRenderer("")

	doc, err := r.Render(dict.Row{Word: "x", Translation: "n. 某"})
	require.NoError(t, err)
	assert.NotContains(t, doc.Markup, `class="git"`)

	doc, err = r.Render(dict.Row{Word: "x", Phonetic: "ks", Collins: 3, Oxford: 1})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<span class="ipa">[ks]</span>`)
	assert.Contains(t, doc.Markup, `<span class="hnt">-</span>`)
	assert.Contains(t, doc.Markup, `<span class="oxf" title="Oxford 3000 Keywords">※</span>`)
	assert.Contains(t, doc.Markup, `<span class="col" title="Collins Stars">★★★</span>`)
}

func TestHeaderBlockPhoneticOnly(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{Word: "x", Phonetic: "ks"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<div class="git"><span class="ipa">[ks]</span></div>`)
	assert.NotContains(t, doc.Markup, `class="hnt"`)
}

func TestTranslationBeatsDefinition(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{
		Word:        "cat",
		Definition:  "a small domesticated carnivore",
		Translation: "n. 猫",
	})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<span class="pos">n.</span><span class="dcn">猫</span>`)
	assert.NotContains(t, doc.Markup, "carnivore")
}

func TestTranslationWebMarked(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{Word: "x", Translation: "[网络] 某网络释义"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup,
		`<span class="dcb"><span class="dnt">[网络]</span><span class="dne"> 某网络释义</span></span><br/>`)
}

func TestDefinitionLines(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{
		Word:       "feline",
		Definition: `of or relating to cats\n> cat`,
	})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup,
		`<span class="dcb"><span class="dcn">of or relating to cats</span></span><br/>`)
	// Cross-reference lines keep their ">" prefix, entity-escaped.
	assert.Contains(t, doc.Markup,
		`<span class="dcb"><span class="deq">&gt; cat</span></span><br/>`)
}

func TestInflectionTenseAndDegree(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{
		Word:     "fast",
		Exchange: "r:faster/t:fastest/p:fasted/3:fasts",
	})
	require.NoError(t, err)
	// Tense values join in fixed code order p, d, i, 3.
	assert.Contains(t, doc.Markup,
		`<div class="fmb"><span class="fnm">时态:</span><span class="frm">fasted, fasts</span></div>`)
	assert.Contains(t, doc.Markup,
		`<div class="qmb"><span class="qnm">级别:</span><span class="qrm">faster, fastest</span></div>`)
}

func TestInflectionBaseForm(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{Word: "ran", Exchange: "0:run/1:d"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, "过去分词")
	assert.Contains(t, doc.Markup,
		`<div class="orb"><span class="onm">原型:</span><span class="orm">ran 是 run 的过去分词</span></div>`)
}

func TestInflectionBaseFormNoLabels(t *testing.T) {
	r := NewRenderer("")
	// Code "1" present but its value decodes to no labels.
	doc, err := r.Render(dict.Row{Word: "ran", Exchange: "0:run/1:x"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<span class="orm">ran 的原型是 run</span>`)
}

func TestInflectionBaseFormNeedsBothCodes(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{Word: "ran", Exchange: "0:run"})
	require.NoError(t, err)
	assert.NotContains(t, doc.Markup, `class="orb"`)
}

func TestInflectionUnparseable(t *testing.T) {
	r := NewRenderer("")
	_, err := r.Render(dict.Row{Word: "bad", Exchange: "p-took"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dict.ErrUnparseableExchange)
	assert.Contains(t, err.Error(), "bad")
}

func TestFrequencyBlock(t *testing.T) {
	r := NewRenderer("")

	doc, err := r.Render(dict.Row{Word: "x", Tag: "zk cet4", Frq: 45, BNC: 120})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<div class="frq" title="COCA: 45, BNC: 120">中四 45/120</div>`)

	// Tag only: no rank suffix.
	doc, err = r.Render(dict.Row{Word: "x", Tag: "gre"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<div class="frq" title="COCA: 0, BNC: 0">宝</div>`)

	// Ranks only: label part empty, leading space kept.
	doc, err = r.Render(dict.Row{Word: "x", Frq: 7, BNC: 9})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<div class="frq" title="COCA: 7, BNC: 9"> 7/9</div>`)
}

func TestFrequencyTagCatalogOrder(t *testing.T) {
	r := NewRenderer("")
	// Labels follow catalog order, not tag field order.
	doc, err := r.Render(dict.Row{Word: "x", Tag: "gre zk ielts"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `>中雅宝</div>`)
}

func TestEscaping(t *testing.T) {
	r := NewRenderer("")
	doc, err := r.Render(dict.Row{Word: "AT&T", Definition: "a <telecom> company & more"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<title>AT&amp;T</title>`)
	assert.Contains(t, doc.Markup, `<div class="hwd">AT&amp;T</div>`)
	assert.Contains(t, doc.Markup, `a &lt;telecom&gt; company &amp; more`)
}

func TestCustomStylesheet(t *testing.T) {
	r := NewRenderer("other.css")
	doc, err := r.Render(dict.Row{Word: "x"})
	require.NoError(t, err)
	assert.Contains(t, doc.Markup, `<link href="other.css" rel="stylesheet" type="text/css"/>`)
}

// The full scenario: every block present at once, plus the reverse entry.
func TestRenderFullEntry(t *testing.T) {
	r := NewRenderer("")
	row := dict.Row{
		Word: "cat", Phonetic: "kæt", Translation: "n. 猫",
		Collins: 3, Oxford: 1, Tag: "zk", BNC: 120, Frq: 45,
		Exchange: "3:cats/s:cats",
	}
	docs, err := r.RenderAll(row)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	forward := docs[0]
	assert.Equal(t, "cat", forward.Key)
	assert.Contains(t, forward.Markup, `<span class="ipa">[kæt]</span>`)
	assert.Contains(t, forward.Markup, `>※</span>`)
	assert.Contains(t, forward.Markup, `>★★★</span>`)
	assert.Contains(t, forward.Markup, `<span class="pos">n.</span><span class="dcn">猫</span>`)
	assert.Contains(t, forward.Markup, `<span class="frm">cats</span>`)
	assert.Contains(t, forward.Markup, `>中 45/120</div>`)
	assert.True(t, strings.HasSuffix(forward.Markup, "</html>"))

	reverse := docs[1]
	assert.Equal(t, "猫", reverse.Key)
	assert.Equal(t, dict.OriginReverse, reverse.Origin)
	assert.Contains(t, reverse.Markup, "<title>猫</title>")
	assert.Contains(t, reverse.Markup, `<span class="dcn">cat</span>`)
	// The synthesized row has no header, inflection or frequency data.
	assert.NotContains(t, reverse.Markup, `class="git"`)
	assert.NotContains(t, reverse.Markup, `class="gfm"`)
	assert.NotContains(t, reverse.Markup, `class="frq"`)
}
