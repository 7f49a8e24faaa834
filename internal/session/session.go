// Package session holds the single current Document of an editing session
// together with the UI state around it (playhead, selection).
//
// Documents are values: every change builds a new Document through the
// subtitle mutation methods and swaps it in under the lock, so a reader
// never sees a half-applied edit.
package session

import (
	"slices"
	"sync"

	"github.com/mgpai22/fansub/internal/logging"
	"github.com/mgpai22/fansub/internal/subtitle"
)

// default length of events created at the playhead
const DefaultEventDuration int64 = 3000

// called with the new document after every change. listeners run in
// commit order, one at a time, and must not change the editor.
type Listener func(doc subtitle.Document)

type Editor struct {
	mu            sync.RWMutex
	notifyMu      sync.Mutex
	doc           subtitle.Document
	playhead      int64
	selectedEvent string
	selectedStyle string
	eventDuration int64
	listeners     []Listener
	logger        *logging.Logger
}

type Option func(*Editor)

func WithLogger(logger *logging.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// length in ms of events added with AddEventAtPlayhead
func WithEventDuration(ms int64) Option {
	return func(e *Editor) {
		if ms > 0 {
			e.eventDuration = ms
		}
	}
}

func NewEditor(doc subtitle.Document, opts ...Option) *Editor {
	e := &Editor{
		doc:           doc,
		eventDuration: DefaultEventDuration,
		logger:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Document() subtitle.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// registers l for change notifications
func (e *Editor) OnChange(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// replaces the whole document and clears the selection
func (e *Editor) Load(doc subtitle.Document) {
	e.logger.Debugw("Document loaded",
		"styles", len(doc.Styles),
		"events", len(doc.Events),
	)

	e.mu.Lock()
	e.selectedEvent = ""
	e.selectedStyle = ""
	e.publish(doc)
}

// applies fn to the current document and stores the result
func (e *Editor) Apply(fn func(subtitle.Document) subtitle.Document) subtitle.Document {
	e.mu.Lock()
	doc := fn(e.doc)
	e.publish(doc)
	return doc
}

// stores doc and runs the listeners. must be called with mu held; it is
// released here. notifyMu is taken before mu is released so that
// notifications follow commit order.
func (e *Editor) publish(doc subtitle.Document) {
	e.doc = doc
	listeners := slices.Clone(e.listeners)

	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	for _, l := range listeners {
		l(doc)
	}
}

func (e *Editor) SetPlayhead(ms int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playhead = max(ms, 0)
}

func (e *Editor) Playhead() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playhead
}

// empty id clears the selection
func (e *Editor) SelectEvent(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedEvent = id
}

func (e *Editor) SelectedEvent() (subtitle.Event, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.selectedEvent == "" {
		return subtitle.Event{}, false
	}
	return e.doc.EventByID(e.selectedEvent)
}

func (e *Editor) SelectStyle(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedStyle = name
}

func (e *Editor) SelectedStyle() (subtitle.Style, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.selectedStyle == "" {
		return subtitle.Style{}, false
	}
	return e.doc.StyleByName(e.selectedStyle)
}

// events active at the playhead
func (e *Editor) ActiveEvents() []subtitle.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.ActiveAt(e.playhead)
}

// adds an event starting at the playhead and selects it
func (e *Editor) AddEventAtPlayhead(text, style string) subtitle.Event {
	if text == "" {
		text = "New subtitle"
	}

	e.mu.Lock()
	ev := subtitle.NewEvent(e.playhead, e.playhead+e.eventDuration, style, text)
	e.selectedEvent = ev.ID
	e.publish(e.doc.AddEvent(ev))

	e.logger.Debugw("Event added", "id", ev.ID, "start", ev.Start, "end", ev.End)
	return ev
}

// replaces the event with the same id
func (e *Editor) UpdateEvent(ev subtitle.Event) {
	e.Apply(func(d subtitle.Document) subtitle.Document {
		return d.UpdateEvent(ev.ID, ev)
	})
}

// removes the event and drops the selection if it pointed at it
func (e *Editor) DeleteEvent(id string) {
	e.mu.Lock()
	if e.selectedEvent == id {
		e.selectedEvent = ""
	}
	e.publish(e.doc.DeleteEvent(id))
}

func (e *Editor) UpdateStyle(s subtitle.Style) {
	e.Apply(func(d subtitle.Document) subtitle.Document {
		return d.UpdateStyle(s.Name, s)
	})
}

func (e *Editor) ShiftAll(offsetMs int64) {
	e.Apply(func(d subtitle.Document) subtitle.Document {
		return d.ShiftTiming(offsetMs)
	})
}

// shifts only the selected event; no-op without a selection
func (e *Editor) ShiftSelected(offsetMs int64) {
	e.mu.Lock()
	id := e.selectedEvent
	if id == "" {
		e.mu.Unlock()
		return
	}
	e.publish(e.doc.ShiftEvents([]string{id}, offsetMs))
}

// writes externally processed texts back by position
func (e *Editor) ApplyTexts(texts []string) {
	e.Apply(func(d subtitle.Document) subtitle.Document {
		return d.ApplyTexts(texts)
	})
}
