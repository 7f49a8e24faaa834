package subtitle

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// non-fatal finding about a document
type Issue struct {
	Kind    string // "style" or "event"
	Ref     string // style name or 1-based event number
	Field   string
	Message string
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s %s: %s", i.Kind, i.Ref, i.Message)
	}
	return fmt.Sprintf("%s %s: %s %s", i.Kind, i.Ref, i.Field, i.Message)
}

// reports problems the parser tolerates: bad style geometry, events that
// end before they start, dangling style references and duplicate names.
func Lint(d Document) []Issue {
	var issues []Issue

	seen := make(map[string]bool)
	for _, s := range d.Styles {
		issues = append(issues, collect("style", s.Name, validateStyle(s))...)
		if seen[s.Name] {
			issues = append(issues, Issue{
				Kind: "style", Ref: s.Name, Message: "duplicate style name",
			})
		}
		seen[s.Name] = true
	}

	for i, e := range d.Events {
		ref := fmt.Sprintf("#%d", i+1)
		issues = append(issues, collect("event", ref, validateEvent(e))...)
		if !seen[e.Style] {
			issues = append(issues, Issue{
				Kind: "event", Ref: ref, Field: "Style",
				Message: fmt.Sprintf("references unknown style %q", e.Style),
			})
		}
	}

	return issues
}

// comma-separated fields are written with ";" in place of ","
var singleField = validation.By(func(v any) error {
	if s, _ := v.(string); strings.ContainsAny(s, ",\r\n") {
		return errors.New("contains a comma or line break")
	}
	return nil
})

func validateStyle(s Style) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, singleField),
		validation.Field(&s.FontName, validation.Required, singleField),
		validation.Field(&s.FontSize, validation.Required, validation.Min(1)),
		validation.Field(&s.Alignment, validation.Required, validation.Min(1), validation.Max(9)),
		validation.Field(&s.BorderStyle, validation.In(1, 3)),
		validation.Field(&s.ScaleX, validation.Min(0.0)),
		validation.Field(&s.ScaleY, validation.Min(0.0)),
		validation.Field(&s.Outline, validation.Min(0.0)),
		validation.Field(&s.Shadow, validation.Min(0.0)),
	)
}

func validateEvent(e Event) error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Start, validation.Min(int64(0))),
		validation.Field(&e.Style, singleField),
		validation.Field(&e.Name, singleField),
		validation.Field(&e.Effect, singleField),
		validation.Field(&e.End, validation.By(func(any) error {
			if e.End < e.Start {
				return errors.New("ends before it starts")
			}
			return nil
		})),
	)
}

func collect(kind, ref string, err error) []Issue {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []Issue{{Kind: kind, Ref: ref, Message: err.Error()}}
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	issues := make([]Issue, 0, len(fields))
	for _, f := range fields {
		issues = append(issues, Issue{
			Kind: kind, Ref: ref, Field: f, Message: errs[f].Error(),
		})
	}
	return issues
}
