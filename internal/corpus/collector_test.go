package corpus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/mdxgen/internal/dict"
)

func doc(key string) dict.Document {
	return dict.Document{
		Key:    key,
		Markup: "<html><head><title>" + key + "</title></head><body></body></html>",
		Origin: dict.OriginForward,
	}
}

// countingWriter records how many Write calls reached the sink.
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestCollectorPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(&buf, 2)
	for _, k := range []string{"b", "a", "c", "a"} {
		require.NoError(t, c.Add(doc(k)))
	}
	require.NoError(t, c.Flush())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "<title>b</title>")
	assert.Contains(t, lines[1], "<title>a</title>")
	assert.Contains(t, lines[2], "<title>c</title>")
	assert.Contains(t, lines[3], "<title>a</title>")
	assert.Equal(t, 4, c.Count())
}

func TestCollectorBatches(t *testing.T) {
	w := &countingWriter{}
	c := NewCollector(w, 3)

	for i := 0; i < 7; i++ {
		require.NoError(t, c.Add(doc("w")))
	}
	// Two full batches have been flushed, one partial is still buffered.
	assert.Equal(t, 2, w.writes)

	require.NoError(t, c.Flush())
	assert.Equal(t, 3, w.writes)

	// Flushing an empty buffer writes nothing.
	require.NoError(t, c.Flush())
	assert.Equal(t, 3, w.writes)
}

func TestCollectorDefaultBatchSize(t *testing.T) {
	w := &countingWriter{}
	c := NewCollector(w, 0)
	for i := 0; i < DefaultBatchSize-1; i++ {
		require.NoError(t, c.Add(doc("w")))
	}
	assert.Equal(t, 0, w.writes)
	require.NoError(t, c.Add(doc("w")))
	assert.Equal(t, 1, w.writes)
}

func TestCollectorTerminatesDocuments(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(&buf, 1)
	require.NoError(t, c.Add(doc("x")))
	assert.True(t, strings.HasSuffix(buf.String(), Boundary+"\n"))
}
