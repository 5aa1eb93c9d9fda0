// Package enrich applies auxiliary datasets to the row store: study-list
// word lists that tag rows, and phonetic transcriptions that fill the
// phonetic column.
package enrich

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/quillon/mdxgen/internal/store"
)

// LoadWordList reads a JSON word list: a plain array of headwords.
func LoadWordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", store.ErrMissingSourceData, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parsing word list %s: %w", path, err)
	}
	return words, nil
}

// TagWords adds the study-list code to every listed word present in the
// store. It returns how many rows gained the tag; words missing from the
// store are skipped.
func TagWords(s *store.Store, code string, words []string) (int, error) {
	tagged := 0
	for _, word := range words {
		changed, err := s.AddTag(word, code)
		if err != nil {
			return tagged, err
		}
		if changed {
			tagged++
		}
	}
	return tagged, nil
}

// phoneticEntry is one line of the phonetic transcription dataset.
type phoneticEntry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
}

// LoadPhonetics reads a JSONL phonetic dataset, one JSON object per line.
// Malformed lines are skipped; the dataset is scraped and imperfect.
func LoadPhonetics(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", store.ErrMissingSourceData, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening phonetic dataset: %w", err)
	}
	defer f.Close()

	phonetics := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var entry phoneticEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if entry.Word != "" && entry.Phonetic != "" {
			phonetics[entry.Word] = entry.Phonetic
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading phonetic dataset: %w", err)
	}
	return phonetics, nil
}

// FillPhonetics writes transcriptions into rows whose phonetic column is
// still empty. Existing transcriptions are left alone.
func FillPhonetics(s *store.Store, phonetics map[string]string) (int, error) {
	filled := 0
	for word, phonetic := range phonetics {
		row, ok, err := s.Get(word)
		if err != nil {
			return filled, err
		}
		if !ok || row.Phonetic != "" {
			continue
		}
		changed, err := s.SetPhonetic(word, phonetic)
		if err != nil {
			return filled, err
		}
		if changed {
			filled++
		}
	}
	return filled, nil
}
