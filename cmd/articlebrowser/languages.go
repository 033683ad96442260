package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ArticleBrowser/internal/usecase"
)

var languagesCmd = &cobra.Command{
	Use:     "languages",
	Aliases: []string{"langs"},
	Short:   "List configured languages",
	RunE:    runLanguages,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List selectable levels",
	Long: `List the levels offered by the level filter. With --lang the catalog is
derived from the loaded collection when browser.levelCatalog is "observed".`,
	RunE: runLevels,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(levelsCmd)

	levelsCmd.Flags().String("lang", "", "language to derive observed levels from")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, true)
	if err != nil {
		return err
	}
	defer application.Close()

	languages := application.Languages()
	if len(languages) == 0 {
		return fmt.Errorf("no languages configured")
	}
	for _, name := range languages {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runLevels(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")

	if lang == "" {
		for _, opt := range usecase.LevelCatalog(usecase.CatalogFixed, nil) {
			fmt.Fprintln(cmd.OutOrStdout(), opt.Label)
		}
		return nil
	}

	application, err := newApplication(cmd, true)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Load(cmd.Context(), lang); err != nil {
		return err
	}
	for _, opt := range application.Session().View().Levels {
		fmt.Fprintln(cmd.OutOrStdout(), opt.Label)
	}
	return nil
}
