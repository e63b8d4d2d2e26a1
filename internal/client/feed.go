package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	"clubhub/internal/dto"
)

const (
	previewWords = 30
	dateLayout   = "Mon, 02 Jan 2006 15:04"
)

// Feed is the last fetched event list plus the per-event expanded state.
// Indexes are 1-based as shown to the user.
type Feed struct {
	events   []dto.EventView
	expanded map[string]bool
	loc      *time.Location
}

func NewFeed(loc *time.Location) *Feed {
	if loc == nil {
		loc = time.Local
	}
	return &Feed{expanded: make(map[string]bool), loc: loc}
}

// Replace swaps in a fresh list. Expanded state survives for events that
// are still present.
func (f *Feed) Replace(events []dto.EventView) {
	keep := make(map[string]bool, len(f.expanded))
	for _, e := range events {
		if f.expanded[e.ID] {
			keep[e.ID] = true
		}
	}
	f.events = events
	f.expanded = keep
}

func (f *Feed) Len() int { return len(f.events) }

func (f *Feed) Expand(n int) error   { return f.set(n, true) }
func (f *Feed) Collapse(n int) error { return f.set(n, false) }

func (f *Feed) set(n int, v bool) error {
	if n < 1 || n > len(f.events) {
		return fmt.Errorf("no event #%d (feed has %d)", n, len(f.events))
	}
	id := f.events[n-1].ID
	if v {
		f.expanded[id] = true
	} else {
		delete(f.expanded, id)
	}
	return nil
}

func (f *Feed) Render(w io.Writer) {
	if len(f.events) == 0 {
		fmt.Fprintln(w, "No events yet.")
		return
	}
	for i, e := range f.events {
		fmt.Fprintf(w, "#%d  %s  [%s]\n", i+1, e.Title, e.Category)
		fmt.Fprintf(w, "    When:  %s\n", FormatDate(e.DateTime, f.loc))
		fmt.Fprintf(w, "    Where: %s\n", e.Venue)
		if len(e.Tags) > 0 {
			fmt.Fprintf(w, "    Tags:  %s\n", strings.Join(e.Tags, ", "))
		}
		if e.Poster != nil {
			fmt.Fprintf(w, "    Poster: %s\n", *e.Poster)
		}
		text, truncated := Preview(e.Description, previewWords)
		if f.expanded[e.ID] {
			text = e.Description
			truncated = false
		}
		if text != "" {
			fmt.Fprintf(w, "    %s\n", text)
		}
		if truncated {
			fmt.Fprintf(w, "    (expand %d to read more)\n", i+1)
		}
		if f.expanded[e.ID] {
			renderDetails(w, e)
		}
		if e.RegistrationLink != "" {
			fmt.Fprintf(w, "    Register: %s\n", e.RegistrationLink)
		}
		fmt.Fprintln(w)
	}
}

func renderDetails(w io.Writer, e dto.EventView) {
	if e.MaxParticipants != nil {
		fmt.Fprintf(w, "    Max participants: %d\n", *e.MaxParticipants)
	}
	if len(e.Requirements) > 0 {
		fmt.Fprintf(w, "    Requirements: %s\n", strings.Join(e.Requirements, "; "))
	}
	if c := e.ContactInfo; c != nil {
		parts := make([]string, 0, 2)
		if c.Email != "" {
			parts = append(parts, c.Email)
		}
		if c.Phone != "" {
			parts = append(parts, c.Phone)
		}
		fmt.Fprintf(w, "    Contact: %s\n", strings.Join(parts, ", "))
	}
}

// Preview returns the first n words of s and whether anything was cut.
func Preview(s string, n int) (string, bool) {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " "), false
	}
	return strings.Join(words[:n], " ") + "...", true
}

func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "TBA"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(dateLayout)
}
