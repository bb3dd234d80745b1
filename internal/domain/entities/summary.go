package entities

import "strings"

const (
	// DefaultOwner is used for action items without a named owner
	DefaultOwner = "Unassigned"
	// DefaultDueDate is used for action items without a due date
	DefaultDueDate = "No due date"
	// NoTranscriptMessage is the summary stored when a meeting has no transcript
	NoTranscriptMessage = "No transcript provided."
)

// SummaryRecord is the canonical structured summary of a meeting.
// Every field is always present; Normalize guarantees empty slices instead of nil.
type SummaryRecord struct {
	Summary     string       `json:"summary"`
	KeyPoints   []string     `json:"key_points"`
	Decisions   []string     `json:"decisions"`
	ActionItems []ActionItem `json:"action_items"`
	Agenda      []AgendaItem `json:"agenda"`
}

// ActionItem is a task extracted from the meeting
type ActionItem struct {
	Task    string `json:"task"`
	Owner   string `json:"owner"`
	DueDate string `json:"due_date"`
}

// AgendaItem is one topic of the agenda breakdown
type AgendaItem struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// NoTranscriptSummary returns the placeholder record used when there is nothing to summarize
func NoTranscriptSummary() SummaryRecord {
	rec := SummaryRecord{Summary: NoTranscriptMessage}
	rec.Normalize()
	return rec
}

// Normalize enforces the record invariants in place: trimmed strings, no nil slices,
// blank key points and decisions dropped, action item owner / due date defaulted.
// Action and agenda items are kept even when their task or topic is missing.
func (r *SummaryRecord) Normalize() {
	r.Summary = strings.TrimSpace(r.Summary)
	r.KeyPoints = compactStrings(r.KeyPoints)
	r.Decisions = compactStrings(r.Decisions)

	items := make([]ActionItem, 0, len(r.ActionItems))
	for _, it := range r.ActionItems {
		it.Task = strings.TrimSpace(it.Task)
		it.Owner = strings.TrimSpace(it.Owner)
		if it.Owner == "" {
			it.Owner = DefaultOwner
		}
		it.DueDate = strings.TrimSpace(it.DueDate)
		if it.DueDate == "" {
			it.DueDate = DefaultDueDate
		}
		items = append(items, it)
	}
	r.ActionItems = items

	agenda := make([]AgendaItem, 0, len(r.Agenda))
	for _, a := range r.Agenda {
		a.Topic = strings.TrimSpace(a.Topic)
		a.Summary = strings.TrimSpace(a.Summary)
		agenda = append(agenda, a)
	}
	r.Agenda = agenda
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
