package main

import (
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive browsing session",
	Long: `Start a line-oriented session reading commands from stdin. Query edits are
debounced (browser.debounce) so only the last of a rapid burst is applied.
Type "help" inside the session for the command list.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().String("lang", "", "language to load on start")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")

	application, err := newApplication(cmd, false)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Browse(cmd.Context(), cmd.InOrStdin(), lang)
}
