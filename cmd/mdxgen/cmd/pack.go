package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/corpus"
	"github.com/quillon/mdxgen/internal/mdx"
	"github.com/quillon/mdxgen/internal/store"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Compile the corpus into the MDX archive",
	Long: `Compile the rendered corpus into the final MDX archive.

Documents are split on the closing </html> boundary, keyed by their
<title> headword (last write wins on duplicates, which collapses repeated
reverse entries), and written as a sorted, block-compressed MDX 2.0 file.

The command refuses to overwrite an existing archive.

Example:
  mdxgen pack
  mdxgen pack --corpus build/stardict.txt --mdx out/concise-enhanced.mdx`,
	Args: cobra.NoArgs,
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().String("corpus", "", "corpus input file (default from profile)")
	packCmd.Flags().String("mdx", "", "archive output file (default from profile)")
	packCmd.Flags().String("title", "", "archive title (default from profile)")
}

func runPack(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	applyFlag(cmd, "corpus", &p.CorpusPath)
	applyFlag(cmd, "mdx", &p.MDXPath)
	applyFlag(cmd, "title", &p.Title)

	return packArchive(p.CorpusPath, p.MDXPath, p.Title, p.Description)
}

// packArchive compiles the corpus file and writes the archive.
func packArchive(corpusPath, mdxPath, title, description string) error {
	content, err := os.ReadFile(corpusPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", store.ErrMissingSourceData, corpusPath)
	}
	if err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}

	log.Info().Str("corpus", corpusPath).Msg("compiling index")
	index, err := corpus.Compile(string(content))
	if err != nil {
		return err
	}
	log.Info().Int("keys", len(index)).Str("mdx", mdxPath).Msg("writing archive")

	writer := mdx.NewWriter(title, description)
	if err := writer.WriteFile(mdxPath, index); err != nil {
		return err
	}
	log.Info().Str("mdx", mdxPath).Msg("pack finished")
	return nil
}
