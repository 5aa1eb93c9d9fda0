// Package mdx writes the compiled dictionary index into an MDX 2.0
// archive: the container GoldenDict and friends consume for random-access
// headword lookup.
package mdx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/klauspost/compress/zlib"

	"github.com/quillon/mdxgen/internal/corpus"
	"github.com/quillon/mdxgen/internal/store"
)

// blockSplitSize is the plain-data threshold at which a key or record
// block is cut. Blocks compress independently so readers can decompress
// one block per lookup.
const blockSplitSize = 8 * 1024

// Writer serializes a compiled index into the MDX container.
type Writer struct {
	Title       string
	Description string // free-form HTML shown as the dictionary's front matter
}

// NewWriter returns a writer with the given archive metadata.
func NewWriter(title, description string) *Writer {
	return &Writer{Title: title, Description: description}
}

// entry is one keyword with its offset into the decompressed record data.
type entry struct {
	key    string
	sort   string
	offset uint64
}

// WriteFile writes the archive to path, refusing to overwrite an existing
// file.
func (w *Writer) WriteFile(path string, index corpus.Index) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		return fmt.Errorf("%w: %s", store.ErrDestinationExists, path)
	}
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer f.Close()
	return w.Write(f, index)
}

// Write serializes the index: header section, keyword section, record
// section. Keys are emitted in collation order and record offsets follow
// the same order, as the format requires.
func (w *Writer) Write(out io.Writer, index corpus.Index) error {
	entries, records, err := w.buildRecords(index)
	if err != nil {
		return err
	}

	if err := w.writeHeader(out); err != nil {
		return err
	}
	if err := w.writeKeywordSection(out, entries); err != nil {
		return err
	}
	return w.writeRecordSection(out, entries, records)
}

// buildRecords sorts the index and lays the record data out in key order,
// assigning each entry its offset into the plain record stream. Every
// record is NUL-terminated.
func (w *Writer) buildRecords(index corpus.Index) ([]entry, []byte, error) {
	entries := make([]entry, 0, len(index))
	for key := range index {
		entries = append(entries, entry{key: key, sort: collationKey(key)})
	}
	sortEntries(entries)

	var records bytes.Buffer
	for i := range entries {
		entries[i].offset = uint64(records.Len())
		records.WriteString(index[entries[i].key])
		records.WriteByte(0)
	}
	return entries, records.Bytes(), nil
}

// writeHeader emits the UTF-16LE XML attribute header with its length
// prefix and checksum suffix.
func (w *Writer) writeHeader(out io.Writer) error {
	attrs := fmt.Sprintf(
		`<Dictionary GeneratedByEngineVersion="2.0" RequiredEngineVersion="2.0" `+
			`Encrypted="0" Encoding="UTF-8" Format="Html" CreationDate="%s" `+
			`Compact="No" Compat="No" KeyCaseSensitive="No" `+
			`Description="%s" Title="%s" DataSourceFormat="106" StyleSheet=""/>`,
		time.Now().Format("2006-01-02"),
		escapeAttr(w.Description),
		escapeAttr(w.Title),
	)
	encoded := encodeUTF16LE(attrs)

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(len(encoded)))
	buf.Write(encoded)
	binary.Write(&buf, binary.LittleEndian, adler32.Checksum(encoded))
	_, err := out.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("writing archive header: %w", err)
	}
	return nil
}

// writeKeywordSection emits the keyword metadata, the compressed key
// index, and the compressed key blocks.
func (w *Writer) writeKeywordSection(out io.Writer, entries []entry) error {
	blocks := splitKeyBlocks(entries)

	var indexPlain bytes.Buffer
	var keyBlocks bytes.Buffer
	for _, block := range blocks {
		plain := encodeKeyBlock(block)
		compressed, err := compressBlock(plain)
		if err != nil {
			return err
		}
		keyBlocks.Write(compressed)

		first := []byte(block[0].key)
		last := []byte(block[len(block)-1].key)
		binary.Write(&indexPlain, binary.BigEndian, uint64(len(block)))
		binary.Write(&indexPlain, binary.BigEndian, uint16(len(first)))
		indexPlain.Write(first)
		indexPlain.WriteByte(0)
		binary.Write(&indexPlain, binary.BigEndian, uint16(len(last)))
		indexPlain.Write(last)
		indexPlain.WriteByte(0)
		binary.Write(&indexPlain, binary.BigEndian, uint64(len(compressed)))
		binary.Write(&indexPlain, binary.BigEndian, uint64(len(plain)))
	}
	indexCompressed, err := compressBlock(indexPlain.Bytes())
	if err != nil {
		return err
	}

	var meta bytes.Buffer
	binary.Write(&meta, binary.BigEndian, uint64(len(blocks)))
	binary.Write(&meta, binary.BigEndian, uint64(len(entries)))
	binary.Write(&meta, binary.BigEndian, uint64(indexPlain.Len()))
	binary.Write(&meta, binary.BigEndian, uint64(len(indexCompressed)))
	binary.Write(&meta, binary.BigEndian, uint64(keyBlocks.Len()))

	if _, err := out.Write(meta.Bytes()); err != nil {
		return fmt.Errorf("writing keyword meta: %w", err)
	}
	if err := binary.Write(out, binary.BigEndian, adler32.Checksum(meta.Bytes())); err != nil {
		return fmt.Errorf("writing keyword meta checksum: %w", err)
	}
	if _, err := out.Write(indexCompressed); err != nil {
		return fmt.Errorf("writing key index: %w", err)
	}
	if _, err := out.Write(keyBlocks.Bytes()); err != nil {
		return fmt.Errorf("writing key blocks: %w", err)
	}
	return nil
}

// writeRecordSection emits the record metadata, the per-block size table,
// and the compressed record blocks.
func (w *Writer) writeRecordSection(out io.Writer, entries []entry, records []byte) error {
	var sizes [][2]uint64
	var blocks bytes.Buffer
	for start := 0; start < len(records); {
		end := start + blockSplitSize
		if end > len(records) {
			end = len(records)
		}
		// Cut on a record boundary so no record straddles two blocks.
		end = recordBoundary(records, start, end)
		plain := records[start:end]
		compressed, err := compressBlock(plain)
		if err != nil {
			return err
		}
		sizes = append(sizes, [2]uint64{uint64(len(compressed)), uint64(len(plain))})
		blocks.Write(compressed)
		start = end
	}

	var meta bytes.Buffer
	binary.Write(&meta, binary.BigEndian, uint64(len(sizes)))
	binary.Write(&meta, binary.BigEndian, uint64(len(entries)))
	binary.Write(&meta, binary.BigEndian, uint64(len(sizes)*16))
	binary.Write(&meta, binary.BigEndian, uint64(blocks.Len()))
	for _, s := range sizes {
		binary.Write(&meta, binary.BigEndian, s[0])
		binary.Write(&meta, binary.BigEndian, s[1])
	}

	if _, err := out.Write(meta.Bytes()); err != nil {
		return fmt.Errorf("writing record meta: %w", err)
	}
	if _, err := out.Write(blocks.Bytes()); err != nil {
		return fmt.Errorf("writing record blocks: %w", err)
	}
	return nil
}

// recordBoundary extends end to the byte after the next NUL terminator, so
// block cuts always fall between records.
func recordBoundary(records []byte, start, end int) int {
	if end >= len(records) {
		return len(records)
	}
	for i := end; i < len(records); i++ {
		if records[i] == 0 {
			return i + 1
		}
	}
	return len(records)
}

// splitKeyBlocks groups sorted entries into blocks of roughly
// blockSplitSize plain bytes each.
func splitKeyBlocks(entries []entry) [][]entry {
	var blocks [][]entry
	var current []entry
	size := 0
	for _, e := range entries {
		entrySize := 8 + len(e.key) + 1
		if size+entrySize > blockSplitSize && len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
			size = 0
		}
		current = append(current, e)
		size += entrySize
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// encodeKeyBlock serializes one key block: record offset plus
// NUL-terminated key per entry.
func encodeKeyBlock(block []entry) []byte {
	var buf bytes.Buffer
	for _, e := range block {
		binary.Write(&buf, binary.BigEndian, e.offset)
		buf.WriteString(e.key)
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// compressBlock frames plain data the way the format expects: a 4-byte
// compression tag (2 = zlib), the big-endian adler32 of the plain data,
// then the deflate stream.
func compressBlock(plain []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{2, 0, 0, 0})
	binary.Write(&buf, binary.BigEndian, adler32.Checksum(plain))
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("initializing zlib: %w", err)
	}
	if _, err := zw.Write(plain); err != nil {
		return nil, fmt.Errorf("compressing block: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing block: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeUTF16LE encodes a string as UTF-16LE with a two-byte terminator.
func encodeUTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 0, 2*len(units)+2)
	for _, u := range units {
		buf = append(buf, byte(u), byte(u>>8))
	}
	return append(buf, 0, 0)
}

// escapeAttr escapes a string for use inside a double-quoted XML attribute.
func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
