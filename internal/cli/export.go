package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [subtitle_file]",
	Short: "Export an ASS script as SRT",
	Long: `Export the events of an ASS script as SubRip (SRT).

Styles and script info are dropped. Override tags such as {\i1} are removed
and \N line breaks become real line breaks.

Examples:
  fansub export episode.ass
  fansub export episode.ass -o subs/episode.en.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		outputPath = withExtension(inputPath, subtitle.FormatSRT)
	}
	if subtitle.GetFormatFromExtension(outputPath) != subtitle.FormatSRT {
		return fmt.Errorf("output %q must have an .srt extension", outputPath)
	}

	doc, err := loadScript(inputPath)
	if err != nil {
		return err
	}

	logger.Infow("Exporting SRT",
		"input", inputPath,
		"output", outputPath,
		"events", len(doc.Events),
	)

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("SRT exported successfully: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(doc.Events))
	return nil
}
