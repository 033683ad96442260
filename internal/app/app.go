package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"ArticleBrowser/internal/config"
	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/infrastructure/llm"
	"ArticleBrowser/internal/infrastructure/ml"
	"ArticleBrowser/internal/infrastructure/parser"
	"ArticleBrowser/internal/infrastructure/scheduler"
	"ArticleBrowser/internal/infrastructure/storage"
	"ArticleBrowser/internal/infrastructure/terminal"
	"ArticleBrowser/internal/logging"
	"ArticleBrowser/internal/ports"
	"ArticleBrowser/internal/source"
	"ArticleBrowser/internal/usecase"
)

// IO carries the terminal streams; nil fields default to stdout/stderr.
// Quiet drops info and success notifications.
type IO struct {
	Out    io.Writer
	ErrOut io.Writer
	Quiet  bool
}

// Application wires configs to use cases and adapters.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sql.DB
	loader   *usecase.Loader
	session  *usecase.Session
	renderer *terminal.Renderer
	notifier *terminal.Notifier
	prefs    ports.PreferenceStore
	colors   bool
	dark     bool
	out      io.Writer
}

// New builds the application from configuration.
func New(cfg config.Config, baseLogger *slog.Logger, streams IO) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.ErrOut == nil {
		streams.ErrOut = os.Stderr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Debounced renders run on a timer goroutine; all terminal output goes through these.
	out, errOut := terminal.Consoles(streams.Out, streams.ErrOut)

	catalogMode, err := usecase.ParseCatalogMode(cfg.Browser.LevelCatalog)
	if err != nil {
		return nil, err
	}
	rangePolicy, err := usecase.ParseRangePolicy(cfg.Browser.RangePolicy)
	if err != nil {
		return nil, err
	}

	catalog, err := buildCatalog(cfg)
	if err != nil {
		return nil, err
	}

	opener := parser.NewOpener(nil)
	registry := source.NewRegistry()
	registry.Register(parser.NewCSVSource(opener))
	registry.Register(parser.NewHTMLTableSource(opener))

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		registry.Register(storage.NewPostgresSource(db))
	}

	fetcher := parser.NewStrategySource(registry, 0, baseLogger.With("component", "source"))
	loader := usecase.NewLoader(usecase.LoaderDeps{
		Catalog: catalog,
		Fetcher: fetcher,
		Merger:  usecase.NewMerger(fieldMap(cfg.Fields), nil),
		Logger:  baseLogger.With("component", "loader"),
	})

	prefs := storage.NewFilePreferenceStore(cfg.Preferences.Path)
	dark, err := prefs.DarkMode()
	if err != nil {
		baseLogger.Warn("cannot read preferences", "path", cfg.Preferences.Path, "error", err)
	}

	var notes io.Writer = out
	if streams.Quiet {
		notes = io.Discard
	}

	colors := terminal.UseColors(cfg.Browser.Colors)
	return &Application{
		cfg:    cfg,
		logger: baseLogger,
		db:     db,
		loader: loader,
		session: usecase.NewSession(usecase.SessionOptions{
			PageSize:    cfg.Browser.PageSize,
			CatalogMode: catalogMode,
			RangePolicy: rangePolicy,
		}),
		renderer: terminal.NewRenderer(out, colors, dark),
		notifier: terminal.NewNotifier(notes, errOut, terminal.PaletteFor(colors, dark)),
		prefs:    prefs,
		colors:   colors,
		dark:     dark,
		out:      out,
	}, nil
}

// Close releases the database handle, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Languages lists the configured language keys.
func (a *Application) Languages() []string {
	return a.loader.Languages()
}

// Session exposes the browsing state.
func (a *Application) Session() *usecase.Session {
	return a.session
}

// Load fetches a language and installs it as the active collection. On failure
// the previous collection stays active and a notification is shown.
func (a *Application) Load(ctx context.Context, language string) error {
	collection, err := a.loader.Load(ctx, language)
	if err != nil {
		a.notifier.Notify(domain.NotificationFor(err))
		return err
	}

	a.session.Install(collection)
	a.notifier.Notify(domain.Notification{
		Message:  fmt.Sprintf("Loaded %d articles for %s", len(collection.Records), language),
		Severity: domain.SeveritySuccess,
	})
	return nil
}

// Search applies q immediately and returns the first page.
func (a *Application) Search(q domain.Query) domain.View {
	return a.session.Search(q)
}

// Render draws the current page.
func (a *Application) Render() error {
	return a.render(a.session.View())
}

// ToggleDarkMode flips and persists the palette preference.
func (a *Application) ToggleDarkMode() (bool, error) {
	a.dark = !a.dark
	a.renderer.SetDarkMode(a.dark)
	a.notifier.SetPalette(terminal.PaletteFor(a.colors, a.dark))
	if err := a.prefs.SetDarkMode(a.dark); err != nil {
		return a.dark, fmt.Errorf("save preference: %w", err)
	}
	return a.dark, nil
}

func (a *Application) render(view domain.View) error {
	if err := a.renderer.Render(view); err != nil {
		a.logger.Error("render failed", "error", err)
		return err
	}
	return nil
}

func (a *Application) newLiveSearch() *usecase.LiveSearch {
	debouncer := scheduler.NewDebouncer(a.cfg.Browser.Debounce)
	return usecase.NewLiveSearch(a.session, debouncer, func(view domain.View) {
		_ = a.render(view)
	})
}

func buildCatalog(cfg config.Config) (*parser.Catalog, error) {
	catalog := parser.NewCatalog(nil)
	for name, specs := range cfg.Languages {
		for _, s := range specs {
			catalog.Add(name, domain.BatchSpec{
				Format:   parser.InferFormat(s.Format, s.Location),
				Location: s.Location,
				Options:  s.Options,
			})
		}
	}

	if cfg.Browser.CatalogPath == "" {
		return catalog, nil
	}
	fromFile, err := parser.LoadCatalog(cfg.Browser.CatalogPath)
	if err != nil {
		return nil, err
	}
	for _, name := range fromFile.Languages() {
		catalog.Add(name, fromFile.Batches(name)...)
	}
	return catalog, nil
}

func fieldMap(f config.FieldsConfig) usecase.FieldMap {
	return usecase.FieldMap{
		ID:                f.ID,
		Title:             f.Title,
		Summary:           f.Summary,
		TranslatedSummary: f.TranslatedSummary,
		Level:             f.Level,
		Range:             f.Range,
		Link:              f.Link,
		Language:          f.Language,
	}
}

// translators returns the configured primary and fallback translators.
func (a *Application) translators() (ports.Translator, ports.Translator) {
	t := a.cfg.Translation
	var primary, fallback ports.Translator
	if t.ChatGPT.APIKey != "" {
		primary = llm.NewChatGPTTranslator(t.ChatGPT, t.SourceLanguage, t.TargetLanguage)
	}
	if t.Fallback.URL != "" {
		fallback = ml.NewClient(t.Fallback.URL, t.Fallback.APIKey, t.SourceLanguage, t.TargetLanguage)
	}
	return primary, fallback
}

// Enrich backfills the translated-summary column of the CSV at input and writes
// the result to output. A checkpoint next to output is resumed from when present.
func (a *Application) Enrich(ctx context.Context, input, output string) (usecase.EnrichStats, error) {
	primary, fallback := a.translators()
	if primary == nil && fallback == nil {
		return usecase.EnrichStats{}, errors.New("no translator configured: set translation.chatgpt.apiKey or translation.fallback.url")
	}

	checkpointPath := output + ".checkpoint"
	readFrom := input
	if _, err := os.Stat(checkpointPath); err == nil {
		readFrom = checkpointPath
		a.logger.Info("resuming from checkpoint", "path", checkpointPath)
	}

	table, err := readTableFile(readFrom)
	if err != nil {
		return usecase.EnrichStats{}, err
	}

	t := a.cfg.Translation
	enricher := usecase.NewEnricher(usecase.EnricherDeps{
		Primary:  primary,
		Fallback: fallback,
		Logger:   a.logger.With("component", "enricher"),
	}, usecase.EnrichOptions{
		SummaryColumn:    a.cfg.Fields.Summary,
		TranslatedColumn: translatedColumn(a.cfg.Fields),
		MaxLength:        t.MaxLength,
		MaxRetries:       t.MaxRetries,
		Backoff:          t.Backoff,
		Pace:             t.Pace,
		CheckpointEvery:  t.CheckpointEvery,
	})

	stats, err := enricher.Run(ctx, table, func(tbl *domain.Table) error {
		return writeTableFile(checkpointPath, tbl)
	})
	if err != nil {
		if cpErr := writeTableFile(checkpointPath, table); cpErr != nil {
			a.logger.Error("cannot save checkpoint", "error", cpErr)
		}
		return stats, err
	}

	if err := writeTableFile(output, table); err != nil {
		return stats, err
	}
	if err := os.Remove(checkpointPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		a.logger.Warn("cannot remove checkpoint", "path", checkpointPath, "error", err)
	}
	return stats, nil
}

func readTableFile(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	table, err := parser.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// writeTableFile replaces path atomically.
func writeTableFile(path string, table *domain.Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := parser.WriteTable(tmp, table); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func translatedColumn(f config.FieldsConfig) string {
	if len(f.TranslatedSummary) == 0 {
		return ""
	}
	return f.TranslatedSummary[0]
}
