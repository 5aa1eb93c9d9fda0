package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/mdxgen/internal/store"
)

const sampleCSV = `word,phonetic,translation,tag
cat,kæt,n. 猫,zk
dog,,n. 狗,
aardvark,,,
`

func sampleStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))
	s, _, err := store.ImportCSV(csvPath, filepath.Join(dir, "in.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cet4.json")
	require.NoError(t, os.WriteFile(path, []byte(`["cat", "dog", "unicorn"]`), 0644))

	words, err := LoadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "unicorn"}, words)
}

func TestLoadWordListMissing(t *testing.T) {
	_, err := LoadWordList(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrMissingSourceData)
}

func TestLoadWordListMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0644))
	_, err := LoadWordList(path)
	require.Error(t, err)
}

func TestTagWords(t *testing.T) {
	s := sampleStore(t)

	tagged, err := TagWords(s, "cet4", []string{"cat", "dog", "unicorn"})
	require.NoError(t, err)
	// unicorn is not in the store and is skipped.
	assert.Equal(t, 2, tagged)

	row, _, err := s.Get("cat")
	require.NoError(t, err)
	assert.Equal(t, "zk cet4", row.Tag)

	// Re-applying the same list changes nothing.
	tagged, err = TagWords(s, "cet4", []string{"cat", "dog"})
	require.NoError(t, err)
	assert.Equal(t, 0, tagged)
}

func TestLoadPhonetics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonetics.jsonl")
	content := `{"word": "dog", "phonetic": "dɒɡ"}
not json at all
{"word": "", "phonetic": "x"}
{"word": "aardvark", "phonetic": "ˈɑːdvɑːk"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	phonetics, err := LoadPhonetics(path)
	require.NoError(t, err)
	// The malformed and empty-word lines are skipped.
	assert.Equal(t, map[string]string{
		"dog":      "dɒɡ",
		"aardvark": "ˈɑːdvɑːk",
	}, phonetics)
}

func TestFillPhonetics(t *testing.T) {
	s := sampleStore(t)

	filled, err := FillPhonetics(s, map[string]string{
		"cat":     "KAT", // already has a transcription, left alone
		"dog":     "dɒɡ",
		"unicorn": "x", // not in the store
	})
	require.NoError(t, err)
	assert.Equal(t, 1, filled)

	row, _, err := s.Get("cat")
	require.NoError(t, err)
	assert.Equal(t, "kæt", row.Phonetic)

	row, _, err = s.Get("dog")
	require.NoError(t, err)
	assert.Equal(t, "dɒɡ", row.Phonetic)
}
