package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [subtitle_file]",
	Short: "Rewrite an ASS script in canonical form",
	Long: `Parse an ASS script and write it back out.

Unknown sections, comments and malformed lines are dropped; every style and
event is rewritten with the standard field order.

Examples:
  fansub fmt episode.ass
  fansub fmt episode.ass -o clean.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputFlag, _ := cmd.Flags().GetString("output")
	outputPath := outputOrInPlace(outputFlag, inputPath)

	doc, err := loadScript(inputPath)
	if err != nil {
		return err
	}

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	fmt.Printf("Formatted %d styles and %d events: %s\n",
		len(doc.Styles), len(doc.Events), outputPath)
	return nil
}
