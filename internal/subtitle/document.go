package subtitle

import "slices"

// Mutations never modify the receiver. Each returns a Document whose
// slices are fresh copies, and a missing id or name is a no-op.

// appends to the end of the event list. an empty ID is filled in.
func (d Document) AddEvent(e Event) Document {
	if e.ID == "" {
		e.ID = newID()
	}
	out := d.clone()
	out.Events = append(out.Events, e)
	return out
}

// replaces the event with the given id
func (d Document) UpdateEvent(id string, e Event) Document {
	idx := d.EventIndex(id)
	if idx < 0 {
		return d
	}
	if e.ID == "" {
		e.ID = id
	}
	out := d.clone()
	out.Events[idx] = e
	return out
}

func (d Document) DeleteEvent(id string) Document {
	idx := d.EventIndex(id)
	if idx < 0 {
		return d
	}
	out := d.clone()
	out.Events = slices.Delete(out.Events, idx, idx+1)
	return out
}

// adds offsetMs to every event, flooring both bounds at 0
func (d Document) ShiftTiming(offsetMs int64) Document {
	out := d.clone()
	for i := range out.Events {
		out.Events[i] = shiftEvent(out.Events[i], offsetMs)
	}
	return out
}

// like ShiftTiming but only for the listed ids
func (d Document) ShiftEvents(ids []string, offsetMs int64) Document {
	out := d.clone()
	for i, e := range out.Events {
		if slices.Contains(ids, e.ID) {
			out.Events[i] = shiftEvent(e, offsetMs)
		}
	}
	return out
}

func shiftEvent(e Event, offsetMs int64) Event {
	e.Start = max(e.Start+offsetMs, 0)
	e.End = max(e.End+offsetMs, 0)
	return e
}

// replaces every style called name. duplicates are all replaced.
func (d Document) UpdateStyle(name string, s Style) Document {
	if !slices.ContainsFunc(d.Styles, func(st Style) bool { return st.Name == name }) {
		return d
	}
	out := d.clone()
	for i := range out.Styles {
		if out.Styles[i].Name == name {
			out.Styles[i] = s
		}
	}
	return out
}

// appends a style without checking for an existing name
func (d Document) AddStyle(s Style) Document {
	out := d.clone()
	out.Styles = append(out.Styles, s)
	return out
}

// UpdateStyle when the name exists, AddStyle otherwise
func (d Document) PutStyle(s Style) Document {
	if _, ok := d.StyleByName(s.Name); ok {
		return d.UpdateStyle(s.Name, s)
	}
	return d.AddStyle(s)
}

// event bodies in display order, for external text processing
func (d Document) Texts() []string {
	texts := make([]string, len(d.Events))
	for i, e := range d.Events {
		texts[i] = e.Text
	}
	return texts
}

// writes texts back by position. empty entries keep the current text,
// entries past the end of the event list are ignored.
func (d Document) ApplyTexts(texts []string) Document {
	out := d.clone()
	for i := range out.Events {
		if i < len(texts) && texts[i] != "" {
			out.Events[i].Text = texts[i]
		}
	}
	return out
}

func (d Document) EventIndex(id string) int {
	return slices.IndexFunc(d.Events, func(e Event) bool { return e.ID == id })
}

func (d Document) EventByID(id string) (Event, bool) {
	idx := d.EventIndex(id)
	if idx < 0 {
		return Event{}, false
	}
	return d.Events[idx], true
}

// first style with the given name
func (d Document) StyleByName(name string) (Style, bool) {
	idx := slices.IndexFunc(d.Styles, func(s Style) bool { return s.Name == name })
	if idx < 0 {
		return Style{}, false
	}
	return d.Styles[idx], true
}

// events active at ms, in display order
func (d Document) ActiveAt(ms int64) []Event {
	var active []Event
	for _, e := range d.Events {
		if e.IsActiveAt(ms) {
			active = append(active, e)
		}
	}
	return active
}

// style list used for output; never empty
func (d Document) effectiveStyles() []Style {
	if len(d.Styles) == 0 {
		return []Style{DefaultStyle()}
	}
	return d.Styles
}

func (d Document) clone() Document {
	return Document{
		Script: d.Script,
		Styles: slices.Clone(d.Styles),
		Events: slices.Clone(d.Events),
	}
}
