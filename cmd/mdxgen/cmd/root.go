// Package cmd contains all CLI commands for the mdxgen tool.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillon/mdxgen/internal/config"
)

var profilePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdxgen",
	Short: "Convert an ECDICT-style dictionary dataset into an MDX archive",
	Long: `mdxgen turns the tabular ECDICT dictionary dataset into a portable
MDX dictionary archive in three stages:

  import   stardict.csv  -> SQLite row store
  render   row store     -> HTML corpus (forward + reverse entries)
  pack     HTML corpus   -> MDX archive

Each entry document carries the phonetic strip, the Chinese or English
glosses, inflected forms and exam/frequency annotations. Chinese gloss
lines additionally produce reverse-lookup entries, so the archive answers
both directions.

Run 'mdxgen build' for the whole pipeline, or the individual stages when
iterating on one of them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "build profile file (yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig wires env variables and the logger.
func initConfig() {
	viper.SetEnvPrefix("MDXGEN")
	viper.AutomaticEnv()

	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadProfile returns the build profile: the --profile file when given,
// defaults otherwise. MDXGEN_* env variables override individual paths.
func loadProfile() (*config.Profile, error) {
	var p *config.Profile
	if profilePath != "" {
		loaded, err := config.Load(profilePath)
		if err != nil {
			return nil, err
		}
		p = loaded
	} else {
		p = config.Default()
	}

	if v := viper.GetString("csv_path"); v != "" {
		p.CSVPath = v
	}
	if v := viper.GetString("db_path"); v != "" {
		p.DBPath = v
	}
	if v := viper.GetString("corpus_path"); v != "" {
		p.CorpusPath = v
	}
	if v := viper.GetString("mdx_path"); v != "" {
		p.MDXPath = v
	}
	return p, nil
}
