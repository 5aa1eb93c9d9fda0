// Package corpus serializes rendered documents into the intermediate
// corpus text and compiles that text into the key-to-document index the
// archive writer consumes.
package corpus

import (
	"fmt"
	"io"

	"github.com/quillon/mdxgen/internal/dict"
)

// DefaultBatchSize is how many documents the collector buffers between
// writes when no size is configured.
const DefaultBatchSize = 1000

// Collector accumulates rendered documents in order and writes them to the
// corpus sink in batches, one document per line. Corpora can run to
// hundreds of thousands of documents, so it never holds more than one
// batch in memory.
type Collector struct {
	w         io.Writer
	batchSize int
	buf       []byte
	buffered  int
	count     int
}

// NewCollector returns a collector writing to w. batchSize <= 0 selects
// DefaultBatchSize.
func NewCollector(w io.Writer, batchSize int) *Collector {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Collector{w: w, batchSize: batchSize}
}

// Add appends one document to the corpus, flushing the buffer when the
// batch is full. Input order is preserved exactly; duplicates are kept and
// resolved later by Compile.
func (c *Collector) Add(doc dict.Document) error {
	c.buf = append(c.buf, doc.Markup...)
	c.buf = append(c.buf, '\n')
	c.buffered++
	c.count++
	if c.buffered >= c.batchSize {
		return c.Flush()
	}
	return nil
}

// Flush writes any buffered documents to the sink.
func (c *Collector) Flush() error {
	if c.buffered == 0 {
		return nil
	}
	if _, err := c.w.Write(c.buf); err != nil {
		return fmt.Errorf("writing corpus batch: %w", err)
	}
	c.buf = c.buf[:0]
	c.buffered = 0
	return nil
}

// Count returns how many documents have been added.
func (c *Collector) Count() int {
	return c.count
}
