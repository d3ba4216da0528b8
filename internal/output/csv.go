// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes result sets as delimited files or console text.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// DelimiterFor returns the field delimiter for path: tab for .tsv files,
// comma otherwise.
func DelimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// WriteCSV writes rs as delimited text. The header row holds the field
// names in declared order and each result becomes one row; a failed result
// is written as a row of empty cells. An empty result set writes nothing.
func WriteCSV(w io.Writer, rs types.ResultSet, comma rune) error {
	if len(rs) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}

	if err := cw.Write(types.FieldNames); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	empty := make([]string, len(types.FieldNames))
	for _, r := range rs {
		row := empty
		if r.OK() {
			row = r.Record.Values()
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Identifier, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes rs to path, creating or truncating it. The file is
// written to a temporary sibling and renamed on success so a failed run
// never leaves a partial file behind.
func WriteCSVFile(path string, rs types.ResultSet, comma rune) error {
	if comma == 0 {
		comma = DelimiterFor(path)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := WriteCSV(tmp, rs, comma); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting output file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}
	return nil
}

// ReadCSV reads a file produced by WriteCSV back into records. Columns are
// matched by header name, so reordered files read correctly. An empty
// input yields no records.
func ReadCSV(r io.Reader, comma rune) ([]types.Record, error) {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading delimited file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]types.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec types.Record
		for i, name := range header {
			rec.Set(name, row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}
