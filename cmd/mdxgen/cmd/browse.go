package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/render"
	"github.com/quillon/mdxgen/internal/store"
	"github.com/quillon/mdxgen/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse rendered entries in the TUI",
	Long: `Open the row store in an interactive terminal UI and preview
entries exactly as they will be rendered into the archive, including the
reverse entries each row produces.

Controls:
  type          Filter words
  ↑/↓           Select word
  pgup/pgdown   Scroll preview
  ctrl+y        Copy entry HTML to the clipboard
  Esc           Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().String("db", "", "row store file (default from profile)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	applyFlag(cmd, "db", &p.DBPath)

	s, err := store.Open(p.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	browser := tui.NewBrowser(s, render.NewRenderer(p.CSS))
	prog := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
