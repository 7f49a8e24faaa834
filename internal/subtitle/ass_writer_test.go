package subtitle

import (
	"reflect"
	"strings"
	"testing"
)

func TestSerializeNewDocument(t *testing.T) {
	doc := NewDocument("Demo")
	doc = doc.AddEvent(Event{ID: "a", Start: 1000, End: 3500, Style: "Default", Text: "Hello"})

	want := strings.Join([]string{
		"[Script Info]",
		"Title: Demo",
		"Original Script: Unknown",
		"Translator: ",
		"Editor: ",
		"Timer: ",
		"Synch Point: ",
		"ScriptType: v4.00+",
		"Collisions: Normal",
		"PlayResX: 1920",
		"PlayResY: 1080",
		"Timer: 100.0",
		"WrapStyle: 0",
		"ScaledBorderAndShadow: no",
		"",
		"[V4+ Styles]",
		styleFormatLine,
		"Style: Default,Arial,18,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100.0,100.0,0.0,0.0,1,2.0,0.0,2,10,10,10,1",
		"",
		"[Events]",
		eventFormatLine,
		"Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,Hello",
		"",
	}, "\n")

	got := Serialize(doc)
	if got != want {
		t.Errorf("Serialize() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeStyleFlags(t *testing.T) {
	s := DefaultStyle()
	s.Name = "Loud"
	s.Bold = true
	s.StrikeOut = true
	s.ScaleX = 95.5

	line := styleLine(s)
	want := "Style: Loud,Arial,18,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,-1,0,0,-1,95.5,100.0,0.0,0.0,1,2.0,0.0,2,10,10,10,1"
	if line != want {
		t.Errorf("styleLine() = %q, want %q", line, want)
	}
}

func TestSerializeEmptyStylesGetsDefault(t *testing.T) {
	doc := Document{Script: DefaultScript()}
	out := Serialize(doc)

	if !strings.Contains(out, "\nStyle: Default,Arial,18,") {
		t.Errorf("expected a default style line, got:\n%s", out)
	}
	if len(doc.Styles) != 0 {
		t.Error("Serialize must not modify the document")
	}
}

func TestSerializeSectionOrder(t *testing.T) {
	out := Serialize(Document{})
	info := strings.Index(out, "[Script Info]")
	styles := strings.Index(out, "[V4+ Styles]")
	events := strings.Index(out, "[Events]")
	if !(info == 0 && info < styles && styles < events) {
		t.Errorf("sections out of order: %d %d %d", info, styles, events)
	}
}

func TestSerializeKeepsEventOrder(t *testing.T) {
	doc := NewDocument("")
	doc = doc.AddEvent(Event{Start: 5000, End: 6000, Style: "Default", Text: "second in time"})
	doc = doc.AddEvent(Event{Start: 1000, End: 2000, Style: "Default", Text: "first in time"})

	out := Serialize(doc)
	if strings.Index(out, "second in time") > strings.Index(out, "first in time") {
		t.Error("events should be written in insertion order, not by time")
	}
}

func TestSerializeDeterministic(t *testing.T) {
	doc := Parse(sampleScript)
	if Serialize(doc) != Serialize(doc) {
		t.Error("Serialize should be deterministic")
	}
}

func TestParseSerializeIdempotent(t *testing.T) {
	inputs := map[string]string{
		"sample":   sampleScript,
		"empty":    "",
		"fragment": `Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,Hello {\i1}world{\i0}`,
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			first := Parse(in)
			second := Parse(Serialize(first))

			if !reflect.DeepEqual(withoutIDs(first), withoutIDs(second)) {
				t.Errorf("parse(serialize(d)) != d\nfirst:  %+v\nsecond: %+v", first, second)
			}
			if Serialize(first) != Serialize(second) {
				t.Error("second serialization differs from the first")
			}
		})
	}
}

func withoutIDs(d Document) Document {
	d = d.clone()
	for i := range d.Events {
		d.Events[i].ID = ""
	}
	return d
}

func TestExportSRT(t *testing.T) {
	doc := Parse(`Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,Hello {\i1}world{\i0}`)

	want := "1\n00:00:01,000 --> 00:00:03,500\nHello world\n\n"
	if got := ExportSRT(doc); got != want {
		t.Errorf("ExportSRT() = %q, want %q", got, want)
	}
}

func TestExportSRTNumbering(t *testing.T) {
	doc := NewDocument("")
	doc = doc.AddEvent(Event{Layer: 5, Start: 0, End: 1000, Text: `one\Ntwo`})
	doc = doc.AddEvent(Event{Layer: 2, Start: 61001, End: 3723045, Text: `three\nfour`})

	want := "1\n00:00:00,000 --> 00:00:01,000\none\ntwo\n\n" +
		"2\n00:01:01,001 --> 01:02:03,045\nthree\nfour\n\n"
	if got := ExportSRT(doc); got != want {
		t.Errorf("ExportSRT() = %q, want %q", got, want)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`{\an8}top`, "top"},
		{`a{\b1}b{\b0}c`, "abc"},
		{`{\pos(1,2)}{\fad(100,200)}x`, "x"},
		{`line\Nbreak`, "line\nbreak"},
		{`soft\nbreak`, "soft\nbreak"},
		{`<i>html</i> stays`, "<i>html</i> stays"},
		{`\h hard space stays`, `\h hard space stays`},
		{`unclosed {tag`, `unclosed {tag`},
	}

	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100.0"},
		{0, "0.0"},
		{2.5, "2.5"},
		{-1.25, "-1.25"},
		{95.123, "95.123"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSerializeEscapesLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"lf", "line one\nline two", `line one\Nline two`},
		{"crlf", "line one\r\nline two", `line one\Nline two`},
		{"cr", "line one\rline two", `line one\Nline two`},
		{"existing hard break", `line one\Nline two`, `line one\Nline two`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument("x").AddEvent(NewEvent(1000, 2000, "", tt.text))
			got := Parse(Serialize(doc))

			if len(got.Events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(got.Events))
			}
			if got.Events[0].Text != tt.want {
				t.Errorf("Text = %q, want %q", got.Events[0].Text, tt.want)
			}
		})
	}
}

func TestSerializeKeepsFieldPositions(t *testing.T) {
	style := DefaultStyle()
	style.Name = "A,B"
	style.FontName = "Font,Bold"

	doc := NewDocument("multi\nline").AddStyle(style)
	doc = doc.AddEvent(Event{
		Start:  1000,
		End:    2000,
		Style:  "A,B",
		Name:   "Actor,Two",
		Effect: "Banner;1,x",
		Text:   "hi, there",
	})

	got := Parse(Serialize(doc))

	if got.Script.Title != "multi line" {
		t.Errorf("Title = %q, want %q", got.Script.Title, "multi line")
	}
	if len(got.Styles) != 2 || got.Styles[1].Name != "A;B" || got.Styles[1].FontName != "Font;Bold" {
		t.Fatalf("styles = %+v", got.Styles)
	}
	if got.Styles[1].FontSize != style.FontSize || got.Styles[1].Alignment != style.Alignment {
		t.Errorf("style fields shifted: %+v", got.Styles[1])
	}

	if len(got.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got.Events))
	}
	e := got.Events[0]
	if e.Style != "A;B" || e.Name != "Actor;Two" || e.Effect != "Banner;1;x" {
		t.Errorf("style/name/effect = %q/%q/%q", e.Style, e.Name, e.Effect)
	}
	if e.Text != "hi, there" {
		t.Errorf("Text = %q, want %q", e.Text, "hi, there")
	}
	if _, ok := got.StyleByName(e.Style); !ok {
		t.Errorf("event style %q no longer resolves", e.Style)
	}
}
