package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/source"
)

// CSVSource reads batches from CSV files whose first row names the fields.
type CSVSource struct {
	opener *Opener
}

var _ source.Source = (*CSVSource)(nil)

// NewCSVSource wires the location opener.
func NewCSVSource(opener *Opener) *CSVSource {
	if opener == nil {
		opener = NewOpener(nil)
	}
	return &CSVSource{opener: opener}
}

// Name identifies the format inside the registry.
func (c *CSVSource) Name() string {
	return "csv"
}

// Fetch downloads or opens the CSV and converts it into a batch.
func (c *CSVSource) Fetch(ctx context.Context, req source.Request) (domain.Batch, error) {
	rc, err := c.opener.Open(ctx, req.Spec.Location)
	if err != nil {
		return domain.Batch{}, err
	}
	defer rc.Close()

	table, err := ReadTable(rc)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("parse %s: %w", req.Spec.Location, err)
	}
	return table.ToBatch(req.Spec.Location), nil
}

// ReadTable parses CSV with a header row. Rows may be ragged.
func ReadTable(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	if !hasNamedColumn(header) {
		return nil, fmt.Errorf("header row has no column names")
	}

	return &domain.Table{Header: header, Rows: rows[1:]}, nil
}

// WriteTable serializes the table as CSV with its header first.
func WriteTable(w io.Writer, table *domain.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Header); err != nil {
		return err
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return err
	}
	return writer.Error()
}

func hasNamedColumn(header []string) bool {
	for _, h := range header {
		if h != "" {
			return true
		}
	}
	return false
}
