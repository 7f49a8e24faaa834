package subtitle

import (
	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
)

const DefaultStyleName = "Default"

// script metadata from [Script Info]
type Script struct {
	Title                 string
	OriginalScript        string
	Translator            string
	Editor                string
	Timer                 string // "Timer:" name field
	SynchPoint            string
	ScriptType            string
	Collisions            string
	PlayResX              int
	PlayResY              int
	TimerSpeed            float64 // numeric "Timer:" field, percent
	WrapStyle             int
	ScaledBorderAndShadow string
}

// named rendering profile from [V4+ Styles]
type Style struct {
	Name           string
	FontName       string
	FontSize       int
	PrimaryColor   colorful.Color
	SecondaryColor colorful.Color
	OutlineColor   colorful.Color
	ShadowColor    colorful.Color
	Bold           bool
	Italic         bool
	Underline      bool
	StrikeOut      bool
	ScaleX         float64
	ScaleY         float64
	Spacing        float64
	Angle          float64
	BorderStyle    int
	Outline        float64
	Shadow         float64
	Alignment      int // numpad layout, 1-9
	MarginL        int
	MarginR        int
	MarginV        int
}

// one Dialogue line. ID is session scoped and never written out.
type Event struct {
	ID      string
	Layer   int
	Start   int64 // ms
	End     int64 // ms
	Style   string
	Name    string
	MarginL int
	MarginR int
	MarginV int
	Effect  string
	Text    string
}

// complete script. events keep insertion order, which is display order.
type Document struct {
	Script Script
	Styles []Style
	Events []Event
}

func DefaultScript() Script {
	return Script{
		Title:                 "Untitled",
		OriginalScript:        "Unknown",
		ScriptType:            "v4.00+",
		Collisions:            "Normal",
		PlayResX:              1920,
		PlayResY:              1080,
		TimerSpeed:            100,
		ScaledBorderAndShadow: "no",
	}
}

func DefaultStyle() Style {
	return Style{
		Name:           DefaultStyleName,
		FontName:       "Arial",
		FontSize:       18,
		PrimaryColor:   White,
		SecondaryColor: Red,
		OutlineColor:   Black,
		ShadowColor:    Black,
		ScaleX:         100,
		ScaleY:         100,
		BorderStyle:    1,
		Outline:        2,
		Alignment:      2,
		MarginL:        10,
		MarginR:        10,
		MarginV:        10,
	}
}

// empty project with the default style
func NewDocument(title string) Document {
	script := DefaultScript()
	if title != "" {
		script.Title = title
	}
	return Document{
		Script: script,
		Styles: []Style{DefaultStyle()},
		Events: []Event{},
	}
}

// event with a fresh id
func NewEvent(start, end int64, style, text string) Event {
	if style == "" {
		style = DefaultStyleName
	}
	return Event{
		ID:    newID(),
		Start: start,
		End:   end,
		Style: style,
		Text:  text,
	}
}

func newID() string {
	return uuid.NewString()
}

// may be negative
func (e Event) Duration() int64 {
	return e.End - e.Start
}

// closed interval [Start, End]
func (e Event) IsActiveAt(ms int64) bool {
	return ms >= e.Start && ms <= e.End
}
