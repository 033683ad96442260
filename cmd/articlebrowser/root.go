package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"ArticleBrowser/internal/app"
	"ArticleBrowser/internal/config"
	"ArticleBrowser/internal/logging"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "articlebrowser",
	Short: "Browse graded news articles by topic and proficiency level",
	Long: `articlebrowser loads per-language article tables (CSV files, HTML tables or
Postgres), normalizes their ILR levels and ranges, and lets you filter and page
through them.

Example usage:
  articlebrowser languages
  articlebrowser search --lang spanish --topic economía --level 2.5
  articlebrowser browse --lang spanish
  articlebrowser enrich --input es.csv --output es_translated.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default from ARTICLE_BROWSER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger = logging.New(level)
	logger.Debug("configuration loaded",
		"languages", len(cfg.Languages),
		"catalog_path", cfg.Browser.CatalogPath,
		"page_size", cfg.Browser.PageSize,
	)
	return nil
}

func newApplication(cmd *cobra.Command, quiet bool) (*app.Application, error) {
	return app.New(cfg, logger, app.IO{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr(), Quiet: quiet})
}
