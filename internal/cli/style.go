package cli

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Create or change styles",
}

var styleSetCmd = &cobra.Command{
	Use:   "set [subtitle_file]",
	Short: "Create a style or change an existing one",
	Long: `Create a style or change fields of an existing one. Only the given flags
are changed; a new style starts from the built in Default style.

If the script holds several styles with the same name, all of them are
replaced.

Examples:
  fansub style set episode.ass --name Default --font "Open Sans" --size 52
  fansub style set episode.ass --name Sign --alignment 8 --primary "&H0000FFFF" --bold`,
	Args: cobra.ExactArgs(1),
	RunE: runStyleSet,
}

func init() {
	rootCmd.AddCommand(styleCmd)
	styleCmd.AddCommand(styleSetCmd)

	f := styleSetCmd.Flags()
	f.String("name", "", "Style name (required)")
	f.String("font", "", "Font family")
	f.Int("size", 0, "Font size")
	f.String("primary", "", "Primary color (&HBBGGRR)")
	f.String("secondary", "", "Secondary color (&HBBGGRR)")
	f.String("outline-color", "", "Outline color (&HBBGGRR)")
	f.String("shadow-color", "", "Shadow color (&HBBGGRR)")
	f.Bool("bold", false, "Bold")
	f.Bool("italic", false, "Italic")
	f.Bool("underline", false, "Underline")
	f.Bool("strikeout", false, "Strike out")
	f.Float64("scale-x", 100, "Horizontal scale in percent")
	f.Float64("scale-y", 100, "Vertical scale in percent")
	f.Float64("spacing", 0, "Extra space between letters")
	f.Float64("angle", 0, "Rotation in degrees")
	f.Int("border-style", 1, "1 = outline and shadow, 3 = opaque box")
	f.Float64("outline", 2, "Outline width")
	f.Float64("shadow", 0, "Shadow distance")
	f.Int("alignment", 2, "Numpad alignment, 1-9")
	f.Int("margin-l", 10, "Left margin")
	f.Int("margin-r", 10, "Right margin")
	f.Int("margin-v", 10, "Vertical margin")

	_ = styleSetCmd.MarkFlagRequired("name")
}

// copies changed flags onto s
func applyStyleFlags(f *pflag.FlagSet, s subtitle.Style) subtitle.Style {
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	color := func(name string, dst *colorful.Color) {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			*dst = subtitle.ParseASSColor(v)
		}
	}
	integer := func(name string, dst *int) {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	float := func(name string, dst *float64) {
		if f.Changed(name) {
			*dst, _ = f.GetFloat64(name)
		}
	}
	flag := func(name string, dst *bool) {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}

	str("font", &s.FontName)
	integer("size", &s.FontSize)
	color("primary", &s.PrimaryColor)
	color("secondary", &s.SecondaryColor)
	color("outline-color", &s.OutlineColor)
	color("shadow-color", &s.ShadowColor)
	flag("bold", &s.Bold)
	flag("italic", &s.Italic)
	flag("underline", &s.Underline)
	flag("strikeout", &s.StrikeOut)
	float("scale-x", &s.ScaleX)
	float("scale-y", &s.ScaleY)
	float("spacing", &s.Spacing)
	float("angle", &s.Angle)
	integer("border-style", &s.BorderStyle)
	float("outline", &s.Outline)
	float("shadow", &s.Shadow)
	integer("alignment", &s.Alignment)
	integer("margin-l", &s.MarginL)
	integer("margin-r", &s.MarginR)
	integer("margin-v", &s.MarginV)

	return s
}

func runStyleSet(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	name, _ := cmd.Flags().GetString("name")
	outputFlag, _ := cmd.Flags().GetString("output")
	outputPath := outputOrInPlace(outputFlag, inputPath)

	if name == "" {
		return fmt.Errorf("style name must not be empty")
	}

	doc, err := loadScript(inputPath)
	if err != nil {
		return err
	}

	base, exists := doc.StyleByName(name)
	if !exists {
		base = cfg.DefaultStyle()
		base.Name = name
	}
	style := applyStyleFlags(cmd.Flags(), base)
	doc = doc.PutStyle(style)

	for _, issue := range subtitle.Lint(subtitle.Document{Styles: []subtitle.Style{style}}) {
		logger.Warnw("Style looks wrong", "issue", issue.String())
	}

	if err := saveScript(doc, outputPath); err != nil {
		return err
	}

	if exists {
		fmt.Printf("Updated style %s\n", name)
	} else {
		fmt.Printf("Created style %s\n", name)
	}
	return nil
}
