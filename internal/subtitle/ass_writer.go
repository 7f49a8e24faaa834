package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	styleFormatLine = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	eventFormatLine = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

	// trailing Encoding field, always written as 1
	styleEncoding = 1
)

var (
	// real line breaks in a body become ASS hard breaks
	textEscaper = strings.NewReplacer("\r\n", `\N`, "\r", `\N`, "\n", `\N`)

	// positional fields cannot hold the field separator or a line break
	fieldEscaper = strings.NewReplacer(",", ";", "\r\n", " ", "\r", " ", "\n", " ")

	infoEscaper = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
)

// renders the document as ASS text. output is deterministic.
func Serialize(d Document) string {
	var sb strings.Builder
	s := d.Script

	// script info section
	sb.WriteString(sectionScriptInfo + "\n")
	fmt.Fprintf(&sb, "Title: %s\n", infoValue(s.Title))
	fmt.Fprintf(&sb, "Original Script: %s\n", infoValue(s.OriginalScript))
	fmt.Fprintf(&sb, "Translator: %s\n", infoValue(s.Translator))
	fmt.Fprintf(&sb, "Editor: %s\n", infoValue(s.Editor))
	fmt.Fprintf(&sb, "Timer: %s\n", infoValue(s.Timer))
	fmt.Fprintf(&sb, "Synch Point: %s\n", infoValue(s.SynchPoint))
	fmt.Fprintf(&sb, "ScriptType: %s\n", infoValue(s.ScriptType))
	fmt.Fprintf(&sb, "Collisions: %s\n", infoValue(s.Collisions))
	fmt.Fprintf(&sb, "PlayResX: %d\n", s.PlayResX)
	fmt.Fprintf(&sb, "PlayResY: %d\n", s.PlayResY)
	fmt.Fprintf(&sb, "Timer: %s\n", formatFloat(s.TimerSpeed))
	fmt.Fprintf(&sb, "WrapStyle: %d\n", s.WrapStyle)
	fmt.Fprintf(&sb, "ScaledBorderAndShadow: %s\n", infoValue(s.ScaledBorderAndShadow))
	sb.WriteString("\n")

	// v4+ styles section
	sb.WriteString(sectionStyles + "\n")
	sb.WriteString(styleFormatLine + "\n")
	for _, style := range d.effectiveStyles() {
		sb.WriteString(styleLine(style))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	// events section
	sb.WriteString(sectionEvents + "\n")
	sb.WriteString(eventFormatLine + "\n")
	for _, e := range d.Events {
		sb.WriteString(dialogueLine(e))
		sb.WriteString("\n")
	}

	return sb.String()
}

func styleLine(s Style) string {
	fields := []string{
		escapeField(s.Name),
		escapeField(s.FontName),
		strconv.Itoa(s.FontSize),
		FormatASSColor(s.PrimaryColor),
		FormatASSColor(s.SecondaryColor),
		FormatASSColor(s.OutlineColor),
		FormatASSColor(s.ShadowColor),
		formatFlag(s.Bold),
		formatFlag(s.Italic),
		formatFlag(s.Underline),
		formatFlag(s.StrikeOut),
		formatFloat(s.ScaleX),
		formatFloat(s.ScaleY),
		formatFloat(s.Spacing),
		formatFloat(s.Angle),
		strconv.Itoa(s.BorderStyle),
		formatFloat(s.Outline),
		formatFloat(s.Shadow),
		strconv.Itoa(s.Alignment),
		strconv.Itoa(s.MarginL),
		strconv.Itoa(s.MarginR),
		strconv.Itoa(s.MarginV),
		strconv.Itoa(styleEncoding),
	}
	return "Style: " + strings.Join(fields, ",")
}

func dialogueLine(e Event) string {
	return fmt.Sprintf("Dialogue: %d,%s,%s,%s,%s,%d,%d,%d,%s,%s",
		e.Layer,
		FormatASSTime(e.Start),
		FormatASSTime(e.End),
		escapeField(e.Style),
		escapeField(e.Name),
		e.MarginL,
		e.MarginR,
		e.MarginV,
		escapeField(e.Effect),
		escapeText(e.Text))
}

func escapeText(text string) string {
	return textEscaper.Replace(text)
}

// commas become semicolons so later fields keep their position
func escapeField(s string) string {
	return fieldEscaper.Replace(s)
}

// script info values are single-line
func infoValue(v string) string {
	return infoEscaper.Replace(v)
}

func formatFlag(b bool) string {
	if b {
		return "-1"
	}
	return "0"
}

// shortest decimal form, always with a fractional part: 100 -> "100.0"
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
