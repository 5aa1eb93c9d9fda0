package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExchange(t *testing.T) {
	ex, err := ParseExchange("p:took/d:taken/i:taking/3:takes")
	require.NoError(t, err)
	assert.Equal(t, []string{"took"}, ex[ExchPast])
	assert.Equal(t, []string{"taken"}, ex[ExchDone])
	assert.Equal(t, []string{"taking"}, ex[ExchIng])
	assert.Equal(t, []string{"takes"}, ex[ExchThird])
}

func TestParseExchangeRepeatedCode(t *testing.T) {
	ex, err := ParseExchange("s:cats/s:kitties")
	require.NoError(t, err)
	assert.Equal(t, []string{"cats", "kitties"}, ex[ExchPlural])
}

func TestParseExchangeValueWithColon(t *testing.T) {
	// Only the first colon separates code from value.
	ex, err := ParseExchange("0:a:b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", ex.First(ExchLemma))
}

func TestParseExchangeMissingSeparator(t *testing.T) {
	_, err := ParseExchange("p:took/dtaken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseableExchange)
}

func TestHasAndFirst(t *testing.T) {
	ex, err := ParseExchange("r:faster/t:fastest")
	require.NoError(t, err)
	assert.True(t, ex.Has(ExchComparative))
	assert.True(t, ex.Has(ExchPast, ExchSuperlative))
	assert.False(t, ex.Has(ExchPast, ExchDone))
	assert.Equal(t, "faster", ex.First(ExchComparative))
	assert.Equal(t, "", ex.First(ExchLemma))
}

func TestDecodeLemmaCodes(t *testing.T) {
	ex, err := ParseExchange("0:run/1:pd")
	require.NoError(t, err)
	assert.Equal(t, []string{"过去式", "过去分词"}, ex.DecodeLemmaCodes())
}

func TestDecodeLemmaCodesSkipsUnknown(t *testing.T) {
	ex, err := ParseExchange("0:run/1:pxd")
	require.NoError(t, err)
	// Unrecognized characters in the code value carry no label and are
	// ignored.
	assert.Equal(t, []string{"过去式", "过去分词"}, ex.DecodeLemmaCodes())
}

func TestDecodeLemmaCodesEmpty(t *testing.T) {
	ex, err := ParseExchange("0:run")
	require.NoError(t, err)
	assert.Nil(t, ex.DecodeLemmaCodes())
}
