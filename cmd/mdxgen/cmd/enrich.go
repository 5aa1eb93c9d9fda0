package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/enrich"
	"github.com/quillon/mdxgen/internal/store"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Apply auxiliary datasets to the row store",
	Long: `Enrich the row store before rendering.

Word lists tag rows with study-list codes (the codes the frequency block
abbreviates: zk, gk, ky, cet4, cet6, toefl, ielts, gre). A phonetic
dataset fills empty phonetic columns; existing transcriptions are kept.

Run enrichment between 'import' and 'render'.

Examples:
  mdxgen enrich --tag cet4=data/cet4.json --tag ielts=data/ielts.json
  mdxgen enrich --phonetics data/phonetics.jsonl`,
	Args: cobra.NoArgs,
	RunE: runEnrich,
}

var (
	enrichTags      []string
	enrichPhonetics string
)

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().String("db", "", "row store file (default from profile)")
	enrichCmd.Flags().StringArrayVar(&enrichTags, "tag", nil, "code=wordlist.json, repeatable")
	enrichCmd.Flags().StringVar(&enrichPhonetics, "phonetics", "", "phonetic dataset (jsonl)")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	if len(enrichTags) == 0 && enrichPhonetics == "" {
		return fmt.Errorf("nothing to do: give --tag and/or --phonetics")
	}

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

	for _, spec := range enrichTags {
		code, path, ok := strings.Cut(spec, "=")
		if !ok || code == "" || path == "" {
			return fmt.Errorf("bad --tag value %q, want code=wordlist.json", spec)
		}
		words, err := enrich.LoadWordList(path)
		if err != nil {
			return err
		}
		tagged, err := enrich.TagWords(s, code, words)
		if err != nil {
			return err
		}
		log.Info().Str("code", code).Int("words", len(words)).Int("tagged", tagged).
			Msg("applied word list")
	}

	if enrichPhonetics != "" {
		phonetics, err := enrich.LoadPhonetics(enrichPhonetics)
		if err != nil {
			return err
		}
		filled, err := enrich.FillPhonetics(s, phonetics)
		if err != nil {
			return err
		}
		log.Info().Int("entries", len(phonetics)).Int("filled", filled).
			Msg("applied phonetic dataset")
	}
	return nil
}
