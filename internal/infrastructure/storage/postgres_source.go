package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/source"
)

const (
	defaultTable          = "articles"
	defaultLanguageColumn = "language"
)

// PostgresSource reads a batch from a Postgres table, one record per row.
type PostgresSource struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ source.Source = (*PostgresSource)(nil)

// NewPostgresSource wires a sql.DB opened with the "postgres" driver.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Name identifies the format inside the registry.
func (p *PostgresSource) Name() string {
	return "postgres"
}

// Fetch selects every column of the configured table for the requested language.
// Options: table, languageColumn, language (override), languages (comma list), orderBy.
func (p *PostgresSource) Fetch(ctx context.Context, req source.Request) (domain.Batch, error) {
	if p.db == nil {
		return domain.Batch{}, fmt.Errorf("postgres source has no database")
	}

	query, args, err := p.selectQuery(req)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("build query: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("query articles: %w", err)
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		_ = rows.Close()
		return domain.Batch{}, fmt.Errorf("read columns: %w", err)
	}
	columns := make([]string, len(columnTypes))
	arrays := make([]bool, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = ct.Name()
		arrays[i] = isFloatArray(ct.DatabaseTypeName())
	}

	batch := domain.Batch{
		Source: "postgres:" + req.Option("table", defaultTable),
		Fields: columns,
	}
	for rows.Next() {
		values := make([]any, len(columns))
		floats := make([]pq.Float64Array, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			if arrays[i] {
				ptrs[i] = &floats[i]
			} else {
				ptrs[i] = &values[i]
			}
		}
		if err := rows.Scan(ptrs...); err != nil {
			_ = rows.Close()
			return domain.Batch{}, fmt.Errorf("scan row: %w", err)
		}

		rec := make(domain.RawRecord, len(columns))
		for i, col := range columns {
			switch {
			case !arrays[i]:
				rec[col] = sqlValue(values[i])
			case floats[i] != nil:
				rec[col] = []float64(floats[i])
			default:
				rec[col] = nil
			}
		}
		batch.Records = append(batch.Records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return domain.Batch{}, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return domain.Batch{}, fmt.Errorf("close rows: %w", closeErr)
	}

	return batch, nil
}

func (p *PostgresSource) selectQuery(req source.Request) (string, []any, error) {
	table, err := quoteQualified(req.Option("table", defaultTable))
	if err != nil {
		return "", nil, err
	}
	column, err := quoteQualified(req.Option("languageColumn", defaultLanguageColumn))
	if err != nil {
		return "", nil, err
	}

	b := p.builder.Select("*").From(table)
	if list := splitList(req.Option("languages", "")); len(list) > 0 {
		b = b.Where(sq.Expr(column+" = ANY(?)", pq.StringArray(list)))
	} else if lang := req.Option("language", req.Language); lang != "" {
		b = b.Where(sq.Eq{column: lang})
	}
	if order := req.Option("orderBy", ""); order != "" {
		clause, err := orderClause(order)
		if err != nil {
			return "", nil, err
		}
		b = b.OrderBy(clause)
	}
	return b.ToSql()
}

// quoteQualified quotes every part of a possibly schema-qualified identifier.
func quoteQualified(name string) (string, error) {
	parts := strings.Split(strings.TrimSpace(name), ".")
	for i, part := range parts {
		if part == "" {
			return "", fmt.Errorf("invalid identifier %q", name)
		}
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, "."), nil
}

// orderClause accepts "column" or "column ASC|DESC".
func orderClause(value string) (string, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields) > 2 {
		return "", fmt.Errorf("invalid orderBy %q", value)
	}
	column, err := quoteQualified(fields[0])
	if err != nil {
		return "", err
	}
	if len(fields) == 1 {
		return column, nil
	}
	dir := strings.ToUpper(fields[1])
	if dir != "ASC" && dir != "DESC" {
		return "", fmt.Errorf("invalid orderBy direction %q", fields[1])
	}
	return column + " " + dir, nil
}

// isFloatArray reports the lib/pq type names of numeric array columns.
func isFloatArray(typeName string) bool {
	switch typeName {
	case "_NUMERIC", "_FLOAT4", "_FLOAT8":
		return true
	default:
		return false
	}
}

func sqlValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return t
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
