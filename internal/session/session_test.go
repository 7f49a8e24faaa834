package session

import (
	"sync"
	"testing"

	"github.com/mgpai22/fansub/internal/subtitle"
)

func TestAddEventAtPlayhead(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument("Test"))
	ed.SetPlayhead(12000)

	ev := ed.AddEventAtPlayhead("", "")
	if ev.Start != 12000 || ev.End != 15000 {
		t.Errorf("event = %d-%d, want 12000-15000", ev.Start, ev.End)
	}
	if ev.Text != "New subtitle" || ev.Style != subtitle.DefaultStyleName {
		t.Errorf("event = %+v", ev)
	}

	selected, ok := ed.SelectedEvent()
	if !ok || selected.ID != ev.ID {
		t.Errorf("new event should be selected, got %+v %v", selected, ok)
	}
	if len(ed.Document().Events) != 1 {
		t.Errorf("expected 1 event, got %d", len(ed.Document().Events))
	}
}

func TestWithEventDuration(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument(""), WithEventDuration(1500))
	ev := ed.AddEventAtPlayhead("x", "Default")
	if ev.Duration() != 1500 {
		t.Errorf("Duration() = %d, want 1500", ev.Duration())
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument(""))
	first := ed.AddEventAtPlayhead("one", "")
	second := ed.AddEventAtPlayhead("two", "")

	ed.DeleteEvent(first.ID)
	if got, ok := ed.SelectedEvent(); !ok || got.ID != second.ID {
		t.Error("deleting an unselected event must keep the selection")
	}

	ed.DeleteEvent(second.ID)
	if _, ok := ed.SelectedEvent(); ok {
		t.Error("selection should be cleared after deleting the selected event")
	}

	// deleting again is harmless
	ed.DeleteEvent(second.ID)
	if len(ed.Document().Events) != 0 {
		t.Errorf("expected no events, got %d", len(ed.Document().Events))
	}
}

func TestShiftSelected(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument(""))
	ed.SetPlayhead(1000)
	a := ed.AddEventAtPlayhead("a", "")
	ed.SetPlayhead(5000)
	b := ed.AddEventAtPlayhead("b", "")

	ed.SelectEvent(a.ID)
	ed.ShiftSelected(-2000)

	doc := ed.Document()
	if got, _ := doc.EventByID(a.ID); got.Start != 0 || got.End != 2000 {
		t.Errorf("a = %d-%d, want 0-2000", got.Start, got.End)
	}
	if got, _ := doc.EventByID(b.ID); got.Start != 5000 {
		t.Errorf("b should not move, start = %d", got.Start)
	}

	ed.SelectEvent("")
	ed.ShiftSelected(100000)
	if !equalTimes(ed.Document(), doc) {
		t.Error("ShiftSelected without selection should be a no-op")
	}
}

func equalTimes(a, b subtitle.Document) bool {
	if len(a.Events) != len(b.Events) {
		return false
	}
	for i := range a.Events {
		if a.Events[i].Start != b.Events[i].Start || a.Events[i].End != b.Events[i].End {
			return false
		}
	}
	return true
}

func TestActiveEventsAndStyleSelection(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument(""))
	ed.SetPlayhead(1000)
	ed.AddEventAtPlayhead("a", "")

	ed.SetPlayhead(2500)
	if got := ed.ActiveEvents(); len(got) != 1 {
		t.Errorf("expected 1 active event, got %d", len(got))
	}
	ed.SetPlayhead(-5)
	if ed.Playhead() != 0 {
		t.Errorf("Playhead() = %d, want 0", ed.Playhead())
	}

	ed.SelectStyle("Default")
	s, ok := ed.SelectedStyle()
	if !ok {
		t.Fatal("expected Default style to be selected")
	}
	s.FontSize = 64
	ed.UpdateStyle(s)
	if got, _ := ed.SelectedStyle(); got.FontSize != 64 {
		t.Errorf("FontSize = %d, want 64", got.FontSize)
	}
}

func TestListenersAndLoad(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument(""))

	var calls int
	var last subtitle.Document
	ed.OnChange(func(doc subtitle.Document) {
		calls++
		last = doc
	})

	ev := ed.AddEventAtPlayhead("a", "")
	ed.UpdateEvent(subtitle.Event{ID: ev.ID, Start: 0, End: 10, Style: "Default", Text: "b"})
	ed.ShiftAll(5)
	ed.ApplyTexts([]string{"c"})

	if calls != 4 {
		t.Errorf("listener called %d times, want 4", calls)
	}
	if last.Events[0].Text != "c" || last.Events[0].Start != 5 {
		t.Errorf("last document = %+v", last.Events[0])
	}

	ed.SelectEvent(ev.ID)
	ed.Load(subtitle.NewDocument("Other"))
	if _, ok := ed.SelectedEvent(); ok {
		t.Error("Load should clear the selection")
	}
	if last.Script.Title != "Other" {
		t.Errorf("listener saw title %q", last.Script.Title)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument(""))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ed.AddEventAtPlayhead("x", "")
				_ = ed.Document()
				_ = ed.ActiveEvents()
			}
		}()
	}
	wg.Wait()

	if got := len(ed.Document().Events); got != 400 {
		t.Errorf("expected 400 events, got %d", got)
	}
}

func TestListenersSeeCommitOrder(t *testing.T) {
	ed := NewEditor(subtitle.NewDocument(""))

	var counts []int
	ed.OnChange(func(doc subtitle.Document) {
		counts = append(counts, len(doc.Events))
	})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				ed.AddEventAtPlayhead("x", "")
			}
		}()
	}
	wg.Wait()

	if len(counts) != 200 {
		t.Fatalf("listener called %d times, want 200", len(counts))
	}
	for i, n := range counts {
		if n != i+1 {
			t.Fatalf("notification %d carried %d events, want %d", i, n, i+1)
		}
	}
}
