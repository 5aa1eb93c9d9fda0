package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/mdxgen/internal/corpus"
	"github.com/quillon/mdxgen/internal/render"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "stardict.csv", p.CSVPath)
	assert.Equal(t, "stardict.db", p.DBPath)
	assert.Equal(t, "stardict.txt", p.CorpusPath)
	assert.Equal(t, "concise-enhanced.mdx", p.MDXPath)
	assert.Equal(t, render.DefaultCSS, p.CSS)
	assert.Equal(t, corpus.DefaultBatchSize, p.BatchSize)
	assert.NotEmpty(t, p.Title)
	assert.NotEmpty(t, p.Description)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	p := Default()
	p.Title = "Custom Title"
	p.MDXPath = "out/custom.mdx"
	p.BatchSize = 42
	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Small\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Small", p.Title)
	assert.Equal(t, "stardict.csv", p.CSVPath)
	assert.Equal(t, corpus.DefaultBatchSize, p.BatchSize)
}

func TestLoadBadBatchSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size: -5\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, corpus.DefaultBatchSize, p.BatchSize)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0644))
	_, err := Load(path)
	require.Error(t, err)
}
