package terminal

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ArticleBrowser/internal/domain"
)

func sampleView(n int) domain.View {
	rng, _ := domain.NewLevelRange(1, 1.5)
	records := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, domain.Record{
			ID:                fmt.Sprintf("r%d", i),
			Title:             fmt.Sprintf("Titular %d", i),
			Summary:           "resumen original",
			TranslatedSummary: "translated summary",
			Level:             domain.Level1Plus,
			Range:             rng,
			Link:              "https://example.org/a",
		})
	}
	level := domain.Level1Plus
	return domain.View{
		Language: "spanish",
		Query:    domain.Query{Topic: "econ", Level: &level},
		Page:     domain.Page{Number: 2, Size: n, TotalPages: 3, Total: 3 * n, Records: records},
	}
}

func TestRendererPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false, false)

	require.NoError(t, r.Render(sampleView(2)))

	out := buf.String()
	assert.Contains(t, out, `spanish (6 articles) topic="econ" level=1.5`)
	assert.Contains(t, out, "Titular 0")
	assert.Contains(t, out, "translated summary")
	assert.NotContains(t, out, "resumen original")
	assert.Contains(t, out, "[1, 1.5]")
	assert.Contains(t, out, "Page 2 of 3  [prev]  [next]")
	assert.NotContains(t, out, "\x1b[")
}

func TestRendererEmptyPage(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false, true)

	require.NoError(t, r.Render(domain.View{Language: "french", Page: domain.Page{Number: 1, Size: 50}}))

	assert.Contains(t, buf.String(), "french (0 articles)")
	assert.Contains(t, buf.String(), "No articles match")
}

func TestSummaryTextFallsBackAndTruncates(t *testing.T) {
	rec := domain.Record{Summary: "  uno   dos\ttres  "}
	assert.Equal(t, "uno dos tres", summaryText(rec, 120))

	long := domain.Record{Summary: strings.Repeat("á", 20)}
	got := summaryText(long, 10)
	assert.Equal(t, strings.Repeat("á", 7)+"...", got)
}

func TestRangeTextInvalid(t *testing.T) {
	assert.Equal(t, "-", rangeText(domain.InvalidRange))
}

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestRendererWritesOneFrame(t *testing.T) {
	var w countingWriter
	r := NewRenderer(&w, false, false)

	require.NoError(t, r.Render(sampleView(3)))
	assert.Equal(t, 1, w.writes)
	assert.Contains(t, w.String(), "Titular 2")
}
