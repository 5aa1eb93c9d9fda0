// Package dict provides the core types and field parsing for the
// ECDICT-style dictionary dataset.
package dict

// LineSeparator is the two-character literal `\n` the source CSV uses to
// delimit lines inside the definition and translation fields. It is not a
// real newline.
const LineSeparator = `\n`

// Row is one source record of the dictionary dataset. Word is the headword
// and must be non-empty; every other field may be empty or zero, meaning
// "absent".
type Row struct {
	Word        string // headword
	Phonetic    string // IPA, possibly empty
	Definition  string // English gloss, `\n`-delimited lines
	Translation string // Chinese gloss, `\n`-delimited lines
	Collins     int    // Collins star rating, 0-5
	Oxford      int    // Oxford 3000 keyword flag (0/1)
	Tag         string // space-separated exam codes (zk, gk, cet4, ...)
	BNC         int    // BNC frequency rank, 0 = unknown
	Frq         int    // COCA frequency rank, 0 = unknown
	Exchange    string // /-delimited code:value pairs for inflected forms
}

// LineKind classifies one gloss line.
type LineKind string

const (
	KindPlain    LineKind = "plain"     // ordinary gloss text
	KindWeb      LineKind = "web"       // crowd-sourced, marked [网络]
	KindCrossRef LineKind = "cross_ref" // English definition starting with ">"
)

// GlossLine is one decomposed line of a definition or translation field.
// POS carries the trailing dot (e.g. "vt.") and is empty when the line has
// no recognized part-of-speech prefix.
type GlossLine struct {
	POS  string
	Text string
	Kind LineKind
}

// Origin says how a rendered document was produced.
type Origin string

const (
	OriginForward Origin = "forward" // rendered straight from a row
	OriginReverse Origin = "reverse" // mined from a row's translation text
)

// Document is one rendered dictionary entry: the key it will be looked up
// under and the self-contained HTML markup. Immutable once produced.
type Document struct {
	Key    string
	Markup string
	Origin Origin
}
