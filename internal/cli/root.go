package cli

import (
	"github.com/mgpai22/fansub/internal/config"
	"github.com/mgpai22/fansub/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fansub",
	Short: "Edit and convert ASS subtitle scripts",
	Long: `Fansub is a CLI tool for editing Advanced SubStation Alpha (ASS)
subtitle scripts.

It parses and rewrites ASS files, shifts timing, edits events and styles,
and exports SubRip (SRT).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "YAML defaults file (or set FANSUB_CONFIG env var)")
}
