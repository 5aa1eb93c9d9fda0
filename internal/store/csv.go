package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// importBatchSize bounds the rows per insert transaction during CSV import.
const importBatchSize = 5000

// ImportCSV creates a row store at dbPath from an ECDICT-style CSV file.
// Columns are matched by header name; columns absent from the CSV import
// as empty. The CSV must at least carry a word column.
func ImportCSV(csvPath, dbPath string) (*Store, int, error) {
	f, err := os.Open(csvPath)
	if os.IsNotExist(err) {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingSourceData, csvPath)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading csv header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := colIdx["word"]; !ok {
		return nil, 0, fmt.Errorf("csv %s has no word column", csvPath)
	}

	s, err := Create(dbPath)
	if err != nil {
		return nil, 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	insert := fmt.Sprintf(
		"INSERT INTO stardict (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders,
	)

	total := 0
	for {
		tx, err := s.db.Begin()
		if err != nil {
			s.Close()
			return nil, 0, fmt.Errorf("starting import transaction: %w", err)
		}
		stmt, err := tx.Prepare(insert)
		if err != nil {
			tx.Rollback()
			s.Close()
			return nil, 0, fmt.Errorf("preparing insert: %w", err)
		}

		batched := 0
		var readErr error
		for batched < importBatchSize {
			record, err := r.Read()
			if err == io.EOF {
				readErr = io.EOF
				break
			}
			if err != nil {
				readErr = fmt.Errorf("reading csv record %d: %w", total+batched+2, err)
				break
			}
			args := make([]any, len(columns))
			for i, col := range columns {
				value := ""
				if idx, ok := colIdx[col]; ok && idx < len(record) {
					value = record[idx]
				}
				switch col {
				case "collins", "oxford", "bnc", "frq":
					args[i] = atoiLoose(value)
				default:
					args[i] = value
				}
			}
			if _, err := stmt.Exec(args...); err != nil {
				readErr = fmt.Errorf("inserting row %d: %w", total+batched+2, err)
				break
			}
			batched++
		}
		stmt.Close()

		if readErr != nil && readErr != io.EOF {
			tx.Rollback()
			s.Close()
			return nil, 0, readErr
		}
		if err := tx.Commit(); err != nil {
			s.Close()
			return nil, 0, fmt.Errorf("committing import batch: %w", err)
		}
		total += batched
		if readErr == io.EOF {
			break
		}
	}
	return s, total, nil
}

// ExportCSV dumps the full stardict table to a CSV file with a header row.
// An existing destination is renamed with a timestamp suffix first, so old
// exports survive.
func (s *Store) ExportCSV(csvPath string) (int, error) {
	if _, err := os.Stat(csvPath); err == nil {
		stamp := time.Now().Format("20060102_150405")
		ext := filepath.Ext(csvPath)
		backup := strings.TrimSuffix(csvPath, ext) + "_old_" + stamp + ext
		if err := os.Rename(csvPath, backup); err != nil {
			return 0, fmt.Errorf("renaming existing export: %w", err)
		}
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return 0, fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return 0, fmt.Errorf("writing csv header: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf("SELECT %s FROM stardict", strings.Join(columns, ", ")))
	if err != nil {
		return 0, fmt.Errorf("reading rows for export: %w", err)
	}
	defer rows.Close()

	record := make([]string, len(columns))
	values := make([]any, len(columns))
	for i := range values {
		values[i] = new(string)
	}
	n := 0
	for rows.Next() {
		if err := rows.Scan(values...); err != nil {
			return 0, fmt.Errorf("reading export row: %w", err)
		}
		for i := range values {
			record[i] = *values[i].(*string)
		}
		if err := w.Write(record); err != nil {
			return 0, fmt.Errorf("writing export row: %w", err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("reading rows for export: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}
	return n, nil
}

// atoiLoose parses an integer field, treating empty or malformed values as
// zero the way the loader always has; frequency data upstream is patchy.
func atoiLoose(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
