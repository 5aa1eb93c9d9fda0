package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/corpus"
	"github.com/quillon/mdxgen/internal/dict"
	"github.com/quillon/mdxgen/internal/render"
	"github.com/quillon/mdxgen/internal/store"
)

// progressEvery controls how often the render loop logs progress.
const progressEvery = 10000

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the row store into the HTML corpus",
	Long: `Scan the row store and render every entry into the intermediate
corpus file: one HTML document per line, the forward entry for each row
followed by the reverse entries mined from its Chinese gloss lines.

The command refuses to overwrite an existing corpus file.

Example:
  mdxgen render
  mdxgen render --db build/stardict.db --corpus build/stardict.txt`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("db", "", "row store file (default from profile)")
	renderCmd.Flags().String("corpus", "", "corpus output file (default from profile)")
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	applyFlag(cmd, "db", &p.DBPath)
	applyFlag(cmd, "corpus", &p.CorpusPath)

	return renderCorpus(p.DBPath, p.CorpusPath, p.CSS, p.BatchSize)
}

// renderCorpus streams every row through the renderer into the corpus
// file.
func renderCorpus(dbPath, corpusPath, css string, batchSize int) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := os.Stat(corpusPath); err == nil {
		return fmt.Errorf("%w: %s", store.ErrDestinationExists, corpusPath)
	}
	f, err := os.Create(corpusPath)
	if err != nil {
		return fmt.Errorf("creating corpus file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	collector := corpus.NewCollector(w, batchSize)
	renderer := render.NewRenderer(css)

	log.Info().Str("db", dbPath).Str("corpus", corpusPath).Msg("rendering entries")

	rows := 0
	err = s.Scan(func(row dict.Row) error {
		docs, err := renderer.RenderAll(row)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := collector.Add(doc); err != nil {
				return err
			}
		}
		rows++
		if rows%progressEvery == 0 {
			log.Debug().Int("rows", rows).Int("documents", collector.Count()).Msg("rendering")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := collector.Flush(); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing corpus file: %w", err)
	}

	log.Info().Int("rows", rows).Int("documents", collector.Count()).Msg("render finished")
	return nil
}
