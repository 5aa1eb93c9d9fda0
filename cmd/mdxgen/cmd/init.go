package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillon/mdxgen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a default build profile",
	Long: `Write a build profile with the default paths and archive metadata
to edit from. The default file name is mdxgen.yaml.

Example:
  mdxgen init
  mdxgen init build.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "mdxgen.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("profile %s already exists", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("wrote build profile")
	return nil
}
