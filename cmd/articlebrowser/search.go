package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/usecase"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter a language's articles and print one page",
	Long: `Load a language, apply a query and print the requested page.

Examples:
  articlebrowser search --lang spanish
  articlebrowser search --lang spanish --topic fútbol --level 2.0
  articlebrowser search --lang french --min 1.5 --max 3 --page 2
  articlebrowser search --lang french --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("lang", "", "language to load (required)")
	searchCmd.Flags().String("topic", "", "case-insensitive text to find in title or summary")
	searchCmd.Flags().String("level", "", "exact level, e.g. 2.5, unknown or all")
	searchCmd.Flags().String("min", "", "lower proficiency bound")
	searchCmd.Flags().String("max", "", "upper proficiency bound")
	searchCmd.Flags().Int("page", 1, "page number")
	searchCmd.Flags().Bool("json", false, "output as JSON")
	_ = searchCmd.MarkFlagRequired("lang")
}

func runSearch(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	topic, _ := cmd.Flags().GetString("topic")
	levelFlag, _ := cmd.Flags().GetString("level")
	minFlag, _ := cmd.Flags().GetString("min")
	maxFlag, _ := cmd.Flags().GetString("max")
	page, _ := cmd.Flags().GetInt("page")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	query, err := buildQuery(topic, levelFlag, minFlag, maxFlag)
	if err != nil {
		return err
	}

	application, err := newApplication(cmd, jsonOutput)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Load(cmd.Context(), lang); err != nil {
		return err
	}
	view := application.Search(query)
	if page != 1 {
		if !application.Session().GoTo(page) {
			return fmt.Errorf("page %d is out of range (1-%d)", page, view.Page.TotalPages)
		}
		view = application.Session().View()
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newPageJSON(view))
	}
	return application.Render()
}

func buildQuery(topic, level, low, high string) (domain.Query, error) {
	q := domain.Query{Topic: topic}
	var err error
	if q.Level, err = usecase.ParseLevelFilter(level); err != nil {
		return q, err
	}
	if q.LowBound, err = usecase.ParseBound(low); err != nil {
		return q, fmt.Errorf("--min: %w", err)
	}
	if q.HighBound, err = usecase.ParseBound(high); err != nil {
		return q, fmt.Errorf("--max: %w", err)
	}
	return q, nil
}

type recordJSON struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Summary           string      `json:"summary"`
	TranslatedSummary string      `json:"translatedSummary"`
	Level             string      `json:"level"`
	Range             *[2]float64 `json:"range"`
	Link              string      `json:"link"`
	Language          string      `json:"language"`
}

type pageJSON struct {
	Language   string       `json:"language"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	Total      int          `json:"total"`
	Levels     []string     `json:"levels"`
	Records    []recordJSON `json:"records"`
}

func newPageJSON(view domain.View) pageJSON {
	out := pageJSON{
		Language:   view.Language,
		Page:       view.Page.Number,
		TotalPages: view.Page.TotalPages,
		Total:      view.Page.Total,
		Levels:     make([]string, 0, len(view.Levels)),
		Records:    make([]recordJSON, 0, len(view.Page.Records)),
	}
	for _, opt := range view.Levels {
		out.Levels = append(out.Levels, opt.Label)
	}
	for _, rec := range view.Page.Records {
		r := recordJSON{
			ID:                rec.ID,
			Title:             rec.Title,
			Summary:           rec.Summary,
			TranslatedSummary: rec.TranslatedSummary,
			Level:             rec.Level.String(),
			Link:              rec.Link,
			Language:          rec.Language,
		}
		if low, high, ok := rec.Range.Bounds(); ok {
			r.Range = &[2]float64{low, high}
		}
		out.Records = append(out.Records, r)
	}
	return out
}
