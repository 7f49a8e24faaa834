package subtitle

import (
	"math"
	"strconv"
	"strings"
)

const (
	sectionScriptInfo = "[Script Info]"
	sectionStyles     = "[V4+ Styles]"
	sectionEvents     = "[Events]"

	styleFieldCount    = 22
	dialogueFieldCount = 10
)

// line the parser discarded
type DroppedLine struct {
	Line   int // 1-based
	Kind   string
	Fields int
	Text   string
}

// what ParseWithReport threw away
type ParseReport struct {
	Dropped []DroppedLine
}

// builds a Document from ASS text. never fails: bad fields fall back to
// defaults, short Style/Dialogue lines are dropped, unknown lines ignored.
func Parse(text string) Document {
	doc, _ := ParseWithReport(text)
	return doc
}

func ParseWithReport(text string) (Document, ParseReport) {
	var report ParseReport

	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	info := newScriptInfoReader()
	styles := make([]Style, 0)
	events := make([]Event, 0)

	// keyed lines before any section header are accepted as a fragment
	section := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			section = trimmed

		case strings.HasPrefix(trimmed, "Style:") && inSection(section, sectionStyles):
			style, n, ok := parseStyleLine(trimmed)
			if !ok {
				report.Dropped = append(report.Dropped, DroppedLine{
					Line: i + 1, Kind: "Style", Fields: n, Text: line,
				})
				continue
			}
			styles = append(styles, style)

		case strings.HasPrefix(trimmed, "Dialogue:") && inSection(section, sectionEvents):
			event, n, ok := parseDialogueLine(trimmed)
			if !ok {
				report.Dropped = append(report.Dropped, DroppedLine{
					Line: i + 1, Kind: "Dialogue", Fields: n, Text: line,
				})
				continue
			}
			events = append(events, event)

		case section == sectionScriptInfo:
			info.read(trimmed)

		case section == "" && strings.HasPrefix(trimmed, "Title:"):
			info.read(trimmed)
		}
	}

	if len(styles) == 0 {
		styles = append(styles, DefaultStyle())
	}

	return Document{
		Script: info.script(),
		Styles: styles,
		Events: events,
	}, report
}

func inSection(current, want string) bool {
	return current == want || current == ""
}

func parseStyleLine(line string) (Style, int, bool) {
	parts := strings.Split(strings.TrimPrefix(line, "Style:"), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < styleFieldCount {
		return Style{}, len(parts), false
	}

	return Style{
		Name:           parts[0],
		FontName:       parts[1],
		FontSize:       intOr(parts[2], 18),
		PrimaryColor:   ParseASSColor(parts[3]),
		SecondaryColor: ParseASSColor(parts[4]),
		OutlineColor:   ParseASSColor(parts[5]),
		ShadowColor:    ParseASSColor(parts[6]),
		Bold:           parseFlag(parts[7]),
		Italic:         parseFlag(parts[8]),
		Underline:      parseFlag(parts[9]),
		StrikeOut:      parseFlag(parts[10]),
		ScaleX:         floatOr(parts[11], 100),
		ScaleY:         floatOr(parts[12], 100),
		Spacing:        floatOr(parts[13], 0),
		Angle:          floatOr(parts[14], 0),
		BorderStyle:    intOr(parts[15], 1),
		Outline:        floatOr(parts[16], 2),
		Shadow:         floatOr(parts[17], 0),
		Alignment:      intOr(parts[18], 2),
		MarginL:        intOr(parts[19], 10),
		MarginR:        intOr(parts[20], 10),
		MarginV:        intOr(parts[21], 10),
	}, len(parts), true
}

func parseDialogueLine(line string) (Event, int, bool) {
	parts := strings.SplitN(strings.TrimPrefix(line, "Dialogue:"), ",", dialogueFieldCount)
	if len(parts) < dialogueFieldCount {
		return Event{}, len(parts), false
	}
	for i := 0; i < dialogueFieldCount-1; i++ {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return Event{
		ID:      newID(),
		Layer:   intOr(parts[0], 0),
		Start:   ParseASSTime(parts[1]),
		End:     ParseASSTime(parts[2]),
		Style:   parts[3],
		Name:    parts[4],
		MarginL: intOr(parts[5], 0),
		MarginR: intOr(parts[6], 0),
		MarginV: intOr(parts[7], 0),
		Effect:  parts[8],
		Text:    parts[9],
	}, len(parts), true
}

// collects [Script Info] key/value lines
type scriptInfoReader struct {
	values map[string]string
	timers []string
}

func newScriptInfoReader() *scriptInfoReader {
	return &scriptInfoReader{values: make(map[string]string)}
}

func (r *scriptInfoReader) read(line string) {
	if line == "" || strings.HasPrefix(line, ";") {
		return
	}
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch key {
	case "Timer":
		r.timers = append(r.timers, value)
	case "Script Type":
		r.values["ScriptType"] = value
	default:
		r.values[key] = value
	}
}

func (r *scriptInfoReader) script() Script {
	s := DefaultScript()
	str := func(key string, dst *string) {
		if v, ok := r.values[key]; ok {
			*dst = v
		}
	}

	str("Title", &s.Title)
	str("Original Script", &s.OriginalScript)
	str("Translator", &s.Translator)
	str("Editor", &s.Editor)
	str("Synch Point", &s.SynchPoint)
	str("ScriptType", &s.ScriptType)
	str("Collisions", &s.Collisions)
	str("ScaledBorderAndShadow", &s.ScaledBorderAndShadow)

	if v, ok := r.values["PlayResX"]; ok {
		s.PlayResX = intOr(v, s.PlayResX)
	}
	if v, ok := r.values["PlayResY"]; ok {
		s.PlayResY = intOr(v, s.PlayResY)
	}
	if v, ok := r.values["WrapStyle"]; ok {
		s.WrapStyle = intOr(v, s.WrapStyle)
	}

	// "Timer:" is both the timer's name and the speed percentage.
	// with two lines the first is the name and the last the speed; a
	// lone numeric line is the speed.
	switch {
	case len(r.timers) >= 2:
		s.Timer = r.timers[0]
		s.TimerSpeed = floatOr(r.timers[len(r.timers)-1], s.TimerSpeed)
	case len(r.timers) == 1:
		if v, err := strconv.ParseFloat(r.timers[0], 64); err == nil {
			s.TimerSpeed = v
		} else {
			s.Timer = r.timers[0]
		}
	}

	return s
}

// -1 is true, anything else false
func parseFlag(s string) bool {
	return s == "-1"
}

func parseOr[T any](s string, def T, parse func(string) (T, error)) T {
	v, err := parse(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func intOr(s string, def int) int {
	return parseOr(s, def, strconv.Atoi)
}

func floatOr(s string, def float64) float64 {
	return parseOr(s, def, func(v string) (float64, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return 0, strconv.ErrSyntax
		}
		return f, err
	})
}
