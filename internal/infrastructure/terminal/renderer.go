package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/ports"
)

const defaultSummaryWidth = 120

// Renderer prints one page of records as a table followed by a pager line.
type Renderer struct {
	mu           sync.Mutex
	out          io.Writer
	useColors    bool
	palette      Palette
	summaryWidth int
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer writes to out, or stdout when out is nil.
func NewRenderer(out io.Writer, useColors, dark bool) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{
		out:          out,
		useColors:    useColors,
		palette:      PaletteFor(useColors, dark),
		summaryWidth: defaultSummaryWidth,
	}
}

// SetDarkMode switches the palette for subsequent renders.
func (r *Renderer) SetDarkMode(dark bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.palette = PaletteFor(r.useColors, dark)
}

// Render draws the view. An empty page prints a placeholder instead of a table.
// The frame is written to the output in one call.
func (r *Renderer) Render(view domain.View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var frame bytes.Buffer
	if err := r.draw(&frame, view); err != nil {
		return err
	}
	if _, err := r.out.Write(frame.Bytes()); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

func (r *Renderer) draw(w io.Writer, view domain.View) error {
	p := r.palette
	fmt.Fprintln(w, p.paint(p.Title, heading(view)))

	if len(view.Page.Records) == 0 {
		fmt.Fprintln(w, p.paint(p.Dim, "No articles match the current filters."))
		return nil
	}

	table := newTable(w)
	table.Header([]string{"#", "Title", "Summary", "Level", "Range", "Link"})

	rows := make([][]string, 0, len(view.Page.Records))
	offset := (view.Page.Number - 1) * view.Page.Size
	for i, rec := range view.Page.Records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", offset+i+1),
			p.paint(p.Title, rec.Title),
			summaryText(rec, r.summaryWidth),
			p.paint(p.Level, rec.Level.String()),
			rangeText(rec.Range),
			p.paint(p.Accent, rec.Link),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("fill table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	fmt.Fprintln(w, p.paint(p.Dim, pager(view.Page)))
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
}

func heading(view domain.View) string {
	lang := view.Language
	if lang == "" {
		lang = "no language loaded"
	}

	var filters []string
	q := view.Query
	if topic := strings.TrimSpace(q.Topic); topic != "" {
		filters = append(filters, fmt.Sprintf("topic=%q", topic))
	}
	if q.Level != nil {
		filters = append(filters, "level="+q.Level.String())
	}
	if q.LowBound != nil {
		filters = append(filters, fmt.Sprintf("min=%g", *q.LowBound))
	}
	if q.HighBound != nil {
		filters = append(filters, fmt.Sprintf("max=%g", *q.HighBound))
	}

	if len(filters) == 0 {
		return fmt.Sprintf("%s (%d articles)", lang, view.Page.Total)
	}
	return fmt.Sprintf("%s (%d articles) %s", lang, view.Page.Total, strings.Join(filters, " "))
}

func pager(page domain.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page %d of %d", page.Number, page.TotalPages)
	if page.HasPrev() {
		b.WriteString("  [prev]")
	}
	if page.HasNext() {
		b.WriteString("  [next]")
	}
	return b.String()
}

// summaryText prefers the translation and falls back to the original summary.
func summaryText(rec domain.Record, width int) string {
	text := rec.Summary
	if rec.HasTranslation() {
		text = rec.TranslatedSummary
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if width > 3 && len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return text
}

func rangeText(r domain.LevelRange) string {
	if !r.Valid() {
		return "-"
	}
	return r.String()
}
