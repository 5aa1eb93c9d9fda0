package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the row store back to CSV",
	Long: `Dump the full row store back to a CSV file, including enrichment
applied since import. An existing destination file is renamed with a
timestamp suffix rather than overwritten.

Example:
  mdxgen export
  mdxgen export --db build/stardict.db --csv stardict-enriched.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("db", "", "row store file (default from profile)")
	exportCmd.Flags().String("csv", "", "destination CSV file (default from profile)")
}

func runExport(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	applyFlag(cmd, "db", &p.DBPath)
	applyFlag(cmd, "csv", &p.CSVPath)

	s, err := store.Open(p.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.ExportCSV(p.CSVPath)
	if err != nil {
		return err
	}
	log.Info().Int("rows", n).Str("csv", p.CSVPath).Msg("export finished")
	return nil
}
