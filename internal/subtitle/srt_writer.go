package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

var overrideTagRegex = regexp.MustCompile(`\{[^}]*\}`)

// renders events as SubRip. styles and script info are ignored.
func ExportSRT(d Document) string {
	var sb strings.Builder
	for i, e := range d.Events {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatSRTTime(e.Start),
			FormatSRTTime(e.End)))

		// text
		sb.WriteString(PlainText(e.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// strips {...} override blocks and turns \N and \n into line breaks
func PlainText(text string) string {
	text = overrideTagRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\\N", "\n")
	text = strings.ReplaceAll(text, "\\n", "\n")
	return text
}
