package cli

import (
	"testing"

	"github.com/mgpai22/fansub/internal/subtitle"
	"github.com/spf13/pflag"
)

func TestApplyEventFlags(t *testing.T) {
	flags := pflag.NewFlagSet("event", pflag.ContinueOnError)
	addEventFlags(flags)
	if err := flags.Parse([]string{"--end", "0:00:05.00", "--text", "changed", "--layer", "2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	ev := subtitle.Event{ID: "x", Start: 1000, End: 2000, Style: "Sign", Text: "old"}
	got, err := applyEventFlags(flags, ev)
	if err != nil {
		t.Fatalf("applyEventFlags error: %v", err)
	}

	if got.Start != 1000 || got.End != 5000 {
		t.Errorf("timing = %d-%d, want 1000-5000", got.Start, got.End)
	}
	if got.Text != "changed" || got.Layer != 2 {
		t.Errorf("text/layer = %q/%d", got.Text, got.Layer)
	}
	if got.Style != "Sign" {
		t.Errorf("unchanged style flag overwrote style: %q", got.Style)
	}
	if got.ID != "x" {
		t.Errorf("ID changed to %q", got.ID)
	}
}

func TestApplyEventFlagsInvalidTime(t *testing.T) {
	flags := pflag.NewFlagSet("event", pflag.ContinueOnError)
	addEventFlags(flags)
	if err := flags.Parse([]string{"--start", "later"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	if _, err := applyEventFlags(flags, subtitle.Event{}); err == nil {
		t.Error("expected error for invalid start")
	}
}

func TestApplyStyleFlags(t *testing.T) {
	flags := styleSetCmd.Flags()
	t.Cleanup(func() {
		flags.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	if err := flags.Parse([]string{"--size", "48", "--primary", "&H0000FFFF", "--bold", "--outline", "3.5"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	base := subtitle.DefaultStyle()
	got := applyStyleFlags(flags, base)

	if got.FontSize != 48 || !got.Bold || got.Outline != 3.5 {
		t.Errorf("size/bold/outline = %d/%v/%v", got.FontSize, got.Bold, got.Outline)
	}
	if c := subtitle.FormatASSColor(got.PrimaryColor); c != "&H0000FFFF" {
		t.Errorf("primary = %s, want &H0000FFFF", c)
	}
	if got.FontName != base.FontName || got.Alignment != base.Alignment || got.ScaleX != base.ScaleX {
		t.Errorf("unchanged fields were modified: %+v", got)
	}
}
