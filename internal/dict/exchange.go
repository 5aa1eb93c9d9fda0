package dict

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseableExchange reports an exchange segment with no ":" separator.
// Exchange data is externally sourced; a missing separator means the row is
// broken and rendering must not guess.
var ErrUnparseableExchange = errors.New("unparseable exchange segment")

// Exchange codes, single letters as stored in the dataset.
const (
	ExchPast        = "p" // past tense
	ExchDone        = "d" // past participle
	ExchIng         = "i" // present participle
	ExchThird       = "3" // third-person singular
	ExchComparative = "r"
	ExchSuperlative = "t"
	ExchLemma       = "0" // base-form pointer
	ExchLemmaCodes  = "1" // codes relating this word to its base form
	ExchPlural      = "s"
)

// ExchangeMap holds the parsed exchange field: code to ordered values.
type ExchangeMap map[string][]string

// ParseExchange parses a /-delimited exchange field of code:value pairs.
// Values for a repeated code accumulate in field order.
func ParseExchange(field string) (ExchangeMap, error) {
	ex := make(ExchangeMap)
	for _, seg := range strings.Split(field, "/") {
		code, value, ok := strings.Cut(seg, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnparseableExchange, seg)
		}
		ex[code] = append(ex[code], value)
	}
	return ex, nil
}

// Has reports whether any of the codes is present.
func (ex ExchangeMap) Has(codes ...string) bool {
	for _, c := range codes {
		if _, ok := ex[c]; ok {
			return true
		}
	}
	return false
}

// First returns the first value of a code, or "" when absent.
func (ex ExchangeMap) First(code string) string {
	if vs := ex[code]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// inflectionLabels maps the characters of code "1" values to human labels.
var inflectionLabels = map[rune]string{
	'p': "过去式",
	'd': "过去分词",
	'i': "现在分词",
	'3': "第三人称单数",
	'r': "比较级",
	't': "最高级",
	's': "复数形式",
}

// DecodeLemmaCodes expands the characters of every code-"1" value into
// labels. Unrecognized characters are skipped silently; the upstream data
// contains codes with no display form.
func (ex ExchangeMap) DecodeLemmaCodes() []string {
	var labels []string
	for _, value := range ex[ExchLemmaCodes] {
		for _, c := range value {
			if label, ok := inflectionLabels[c]; ok {
				labels = append(labels, label)
			}
		}
	}
	return labels
}
