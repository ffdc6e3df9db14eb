// Package source reads raw plant rows from the configured tabular file.
// It does no transformation beyond parsing: the header row supplies field
// names and every value stays a string. Cleaning is someone else's job.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gridlens/gridlens/internal/domain/record"
)

// ctxCheckInterval is how many rows pass between context checks. Checking
// every row is wasteful on large files.
const ctxCheckInterval = 256

// Loader reads a CSV file into raw rows.
type Loader struct {
	path string
}

// New constructs a Loader for the given file path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the whole source file. It fails with ErrSourceNotFound when the
// file is missing or empty, and ErrMalformedSource when it cannot be parsed.
// Rows shorter than the header keep only the fields they have; longer rows
// are truncated to the header width.
func (l *Loader) Load(ctx context.Context) ([]record.RawRow, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", l.path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s is empty: %w", l.path, ErrSourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", l.path, ErrMalformedSource)
	}

	var rows []record.RawRow
	for i := 0; ; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("load %s: %w", l.path, err)
			}
		}

		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d of %s: %w", i+2, l.path, ErrMalformedSource)
		}

		row := make(record.RawRow, len(header))
		for j, name := range header {
			if j < len(fields) {
				row[name] = fields[j]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
