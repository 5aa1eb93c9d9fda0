package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the CSV dataset into the SQLite row store",
	Long: `Create the SQLite row store from the source CSV dataset.

Columns are matched by header name against the ECDICT layout (word,
phonetic, definition, translation, pos, collins, oxford, tag, bnc, frq,
exchange, detail, audio); missing columns import as empty. The command
refuses to overwrite an existing row store.

Example:
  mdxgen import
  mdxgen import --csv data/stardict.csv --db build/stardict.db`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("csv", "", "source CSV file (default from profile)")
	importCmd.Flags().String("db", "", "row store file (default from profile)")
}

func runImport(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	applyFlag(cmd, "csv", &p.CSVPath)
	applyFlag(cmd, "db", &p.DBPath)

	return importCSV(p.CSVPath, p.DBPath)
}

func importCSV(csvPath, dbPath string) error {
	log.Info().Str("csv", csvPath).Str("db", dbPath).Msg("importing dataset")
	s, n, err := store.ImportCSV(csvPath, dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	log.Info().Int("rows", n).Msg("import finished")
	return nil
}

// applyFlag overrides a profile field with a flag value when the flag was
// set.
func applyFlag(cmd *cobra.Command, name string, dst *string) {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		*dst = v
	}
}
