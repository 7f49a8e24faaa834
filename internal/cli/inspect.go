package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "Summarize an ASS script and report problems",
	Long: `Print script info, styles (with color swatches) and lint findings.

With --at the events shown at that time are listed as well.

Examples:
  fansub inspect episode.ass
  fansub inspect episode.ass --at 0:05:12.00`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("at", "", "List events active at this time")
	inspectCmd.Flags().Bool("strict", false, "Exit with an error when lint finds problems")
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
)

func runInspect(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetString("at")
	strict, _ := cmd.Flags().GetBool("strict")

	doc, err := loadScript(args[0])
	if err != nil {
		return err
	}

	fmt.Println(renderSummary(doc))
	fmt.Println(renderStyles(doc.Styles))

	if at != "" {
		ms, err := parseTimestamp(at)
		if err != nil {
			return err
		}
		fmt.Println(renderActive(doc, ms))
	}

	issues := subtitle.Lint(doc)
	fmt.Println(renderIssues(issues))

	if strict && len(issues) > 0 {
		return fmt.Errorf("%d lint issues", len(issues))
	}
	return nil
}

func renderSummary(doc subtitle.Document) string {
	s := doc.Script
	var sb strings.Builder

	sb.WriteString(headingStyle.Render(s.Title) + "\n")
	fmt.Fprintf(&sb, "  Resolution: %dx%d\n", s.PlayResX, s.PlayResY)
	fmt.Fprintf(&sb, "  Script type: %s, collisions: %s, wrap style: %d\n",
		s.ScriptType, s.Collisions, s.WrapStyle)
	if s.Translator != "" {
		fmt.Fprintf(&sb, "  Translator: %s\n", s.Translator)
	}
	if s.Editor != "" {
		fmt.Fprintf(&sb, "  Editor: %s\n", s.Editor)
	}

	var end int64
	for _, e := range doc.Events {
		end = max(end, e.End)
	}
	fmt.Fprintf(&sb, "  Events: %d, last ends at %s", len(doc.Events), subtitle.FormatASSTime(end))
	return sb.String()
}

func renderStyles(styles []subtitle.Style) string {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Styles") + "\n")

	for _, s := range styles {
		fmt.Fprintf(&sb, "  %s%s%s%s %-12s %s %d",
			swatch(s.PrimaryColor),
			swatch(s.SecondaryColor),
			swatch(s.OutlineColor),
			swatch(s.ShadowColor),
			s.Name,
			s.FontName,
			s.FontSize,
		)

		var attrs []string
		for _, a := range []struct {
			on   bool
			name string
		}{
			{s.Bold, "bold"},
			{s.Italic, "italic"},
			{s.Underline, "underline"},
			{s.StrikeOut, "strikeout"},
		} {
			if a.on {
				attrs = append(attrs, a.name)
			}
		}
		if len(attrs) > 0 {
			sb.WriteString(" " + strings.Join(attrs, ","))
		}
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  an%d", s.Alignment)))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func swatch(c colorful.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Clamped().Hex())).
		Render("  ")
}

func renderActive(doc subtitle.Document, ms int64) string {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Active at "+subtitle.FormatASSTime(ms)) + "\n")

	active := doc.ActiveAt(ms)
	if len(active) == 0 {
		sb.WriteString(mutedStyle.Render("  none"))
		return sb.String()
	}
	for _, e := range active {
		fmt.Fprintf(&sb, "  [%s] %s\n", e.Style, subtitle.PlainText(e.Text))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func renderIssues(issues []subtitle.Issue) string {
	if len(issues) == 0 {
		return mutedStyle.Render("No problems found")
	}

	var sb strings.Builder
	sb.WriteString(headingStyle.Render(fmt.Sprintf("Problems (%d)", len(issues))) + "\n")
	for _, issue := range issues {
		sb.WriteString("  " + warnStyle.Render(issue.String()) + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
