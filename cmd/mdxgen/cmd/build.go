package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/store"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the whole pipeline: import, render, pack",
	Long: `Run the complete conversion in one go.

The row store is created from the CSV only when it does not exist yet, so
an enriched store survives rebuilds. Stale corpus and archive files from a
previous run are removed before their stage runs; the row store itself is
never overwritten.

Example:
  mdxgen build
  mdxgen build --profile build.yaml`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	log.Info().Msg("starting build")

	if _, err := os.Stat(p.DBPath); os.IsNotExist(err) {
		if _, err := os.Stat(p.CSVPath); os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", store.ErrMissingSourceData, p.CSVPath)
		}
		if err := importCSV(p.CSVPath, p.DBPath); err != nil {
			return err
		}
	} else {
		log.Info().Str("db", p.DBPath).Msg("row store present, skipping import")
	}

	if err := removeStale(p.CorpusPath); err != nil {
		return err
	}
	if err := renderCorpus(p.DBPath, p.CorpusPath, p.CSS, p.BatchSize); err != nil {
		return err
	}

	if err := removeStale(p.MDXPath); err != nil {
		return err
	}
	if err := packArchive(p.CorpusPath, p.MDXPath, p.Title, p.Description); err != nil {
		return err
	}

	log.Info().Str("mdx", p.MDXPath).Msg("build finished")
	return nil
}

// removeStale deletes a leftover intermediate artifact from an earlier
// run.
func removeStale(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	log.Info().Str("path", path).Msg("removing stale artifact")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing stale %s: %w", path, err)
	}
	return nil
}
