package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/source"
)

const defaultTableSelector = "table"

// HTMLTableSource reads a batch from an HTML <table>, one record per body row.
type HTMLTableSource struct {
	opener *Opener
}

var _ source.Source = (*HTMLTableSource)(nil)

// NewHTMLTableSource wires the location opener.
func NewHTMLTableSource(opener *Opener) *HTMLTableSource {
	if opener == nil {
		opener = NewOpener(nil)
	}
	return &HTMLTableSource{opener: opener}
}

// Name identifies the format inside the registry.
func (h *HTMLTableSource) Name() string {
	return "html"
}

// Fetch locates the table (option "selector", default the first table) and extracts it.
func (h *HTMLTableSource) Fetch(ctx context.Context, req source.Request) (domain.Batch, error) {
	rc, err := h.opener.Open(ctx, req.Spec.Location)
	if err != nil {
		return domain.Batch{}, err
	}
	defer rc.Close()

	doc, err := goquery.NewDocumentFromReader(rc)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("parse document: %w", err)
	}

	table, err := extractTable(doc, req.Option("selector", defaultTableSelector))
	if err != nil {
		return domain.Batch{}, fmt.Errorf("%s: %w", req.Spec.Location, err)
	}
	return table.ToBatch(req.Spec.Location), nil
}

func extractTable(doc *goquery.Document, selector string) (*domain.Table, error) {
	tbl := doc.Find(selector).First()
	if tbl.Length() == 0 {
		return nil, fmt.Errorf("no table matches %q", selector)
	}

	rows := tbl.Find("tr")
	headerRow := rows.FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Find("th").Length() > 0
	}).First()
	if headerRow.Length() == 0 {
		headerRow = rows.First()
	}
	if headerRow.Length() == 0 {
		return nil, fmt.Errorf("table has no rows")
	}

	header := cellTexts(headerRow)
	if !hasNamedColumn(header) {
		return nil, fmt.Errorf("table header has no column names")
	}

	table := &domain.Table{Header: header}
	rows.Each(func(_ int, tr *goquery.Selection) {
		if tr.IsSelection(headerRow) || tr.Find("td").Length() == 0 {
			return
		}
		table.Rows = append(table.Rows, cellTexts(tr))
	})
	return table, nil
}

func cellTexts(tr *goquery.Selection) []string {
	var out []string
	tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		text := strings.Join(strings.Fields(cell.Text()), " ")
		if text == "" {
			if href, ok := cell.Find("a[href]").First().Attr("href"); ok {
				text = href
			}
		}
		out = append(out, text)
	})
	return out
}
